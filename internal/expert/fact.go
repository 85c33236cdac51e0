package expert

import (
	"fmt"
	"math"
)

// Field names one of the project attributes a rule can inspect.
type Field string

const (
	FieldSize           Field = "size"
	FieldComplexity     Field = "complexity"
	FieldDeadline       Field = "deadline"
	FieldTeamExperience Field = "team_experience"
	FieldRisk           Field = "risk"
)

// Fields lists every known field in canonical order.
var Fields = []Field{FieldSize, FieldComplexity, FieldDeadline, FieldTeamExperience, FieldRisk}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	_, ok := fieldIndex(f)
	return ok
}

func fieldIndex(f Field) (int, bool) {
	for i, known := range Fields {
		if known == f {
			return i, true
		}
	}
	return 0, false
}

// ProjectAttributes is the input fact. A field is either absent or holds a
// string; the empty string is a value, not absence.
type ProjectAttributes struct {
	values  [5]string
	present [5]bool
}

// NewProjectAttributes builds a fact from the given field values. Fields not
// in the map are absent.
func NewProjectAttributes(values map[Field]string) (ProjectAttributes, error) {
	var pa ProjectAttributes
	for f, v := range values {
		idx, ok := fieldIndex(f)
		if !ok {
			return ProjectAttributes{}, fmt.Errorf("%w: unknown field %q", ErrInvalidFact, f)
		}
		pa.values[idx] = v
		pa.present[idx] = true
	}
	return pa, nil
}

// AttributesFromAny builds a fact from loosely typed input such as decoded
// JSON. nil values are absent; any non-string value is rejected.
func AttributesFromAny(values map[string]any) (ProjectAttributes, error) {
	typed := make(map[Field]string, len(values))
	for k, raw := range values {
		if raw == nil {
			if !Field(k).Valid() {
				return ProjectAttributes{}, fmt.Errorf("%w: unknown field %q", ErrInvalidFact, k)
			}
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return ProjectAttributes{}, fmt.Errorf("%w: field %q must be a string, got %T", ErrInvalidFact, k, raw)
		}
		typed[Field(k)] = s
	}
	return NewProjectAttributes(typed)
}

// Get returns the value of f and whether it is present.
func (pa ProjectAttributes) Get(f Field) (string, bool) {
	idx, ok := fieldIndex(f)
	if !ok || !pa.present[idx] {
		return "", false
	}
	return pa.values[idx], true
}

// Missing lists absent fields in canonical order.
func (pa ProjectAttributes) Missing() []Field {
	var out []Field
	for i, f := range Fields {
		if !pa.present[i] {
			out = append(out, f)
		}
	}
	return out
}

// Map returns the present fields keyed by name.
func (pa ProjectAttributes) Map() map[string]string {
	out := make(map[string]string, len(Fields))
	for i, f := range Fields {
		if pa.present[i] {
			out[string(f)] = pa.values[i]
		}
	}
	return out
}

// Alternative is a secondary approach suggested alongside a recommendation.
type Alternative struct {
	Approach    string
	Confidence  float64
	Explanation string
}

// Recommendation is the result produced by a fired rule.
type Recommendation struct {
	Approach     string
	Confidence   float64
	Explanation  string
	Alternatives []Alternative
}

const (
	noneApproach    = "None"
	noneExplanation = "Insufficient data to provide a recommendation."
)

// NewRecommendation validates and builds a Recommendation.
func NewRecommendation(approach string, confidence float64, explanation string, alts ...Alternative) (Recommendation, error) {
	if approach == "" {
		return Recommendation{}, fmt.Errorf("%w: approach is required", ErrInvalidRecommendation)
	}
	if !validConfidence(confidence) {
		return Recommendation{}, fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidRecommendation, confidence)
	}
	for _, alt := range alts {
		if alt.Approach == "" {
			return Recommendation{}, fmt.Errorf("%w: alternative approach is required", ErrInvalidRecommendation)
		}
		if !validConfidence(alt.Confidence) {
			return Recommendation{}, fmt.Errorf("%w: alternative %q confidence %v outside [0,1]", ErrInvalidRecommendation, alt.Approach, alt.Confidence)
		}
	}
	return Recommendation{
		Approach:     approach,
		Confidence:   confidence,
		Explanation:  explanation,
		Alternatives: append([]Alternative{}, alts...),
	}, nil
}

// NoRecommendation returns the fallback produced when nothing else applies.
func NoRecommendation() Recommendation {
	return Recommendation{
		Approach:     noneApproach,
		Confidence:   0,
		Explanation:  noneExplanation,
		Alternatives: []Alternative{},
	}
}

// IsNone reports whether r is the fallback recommendation.
func (r Recommendation) IsNone() bool {
	return r.Approach == noneApproach && r.Confidence == 0
}

func validConfidence(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
