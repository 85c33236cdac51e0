package consultations

import (
	"fmt"
	"strings"
	"time"

	"methodology-advisor/internal/expert"
)

// AlternativeResponse is the wire form of expert.Alternative.
type AlternativeResponse struct {
	Approach    string `json:"approach"`
	Confidence  string `json:"confidence"`
	Explanation string `json:"explanation"`
}

// RecommendationResponse is the wire form of expert.Recommendation with
// confidences rendered as percentages.
type RecommendationResponse struct {
	Approach     string                `json:"approach"`
	Confidence   string                `json:"confidence"`
	Explanation  string                `json:"explanation"`
	Alternatives []AlternativeResponse `json:"alternatives"`
}

// ConsultationResponse is returned by the v1 recommendation and history routes.
type ConsultationResponse struct {
	ConsultationID  string                   `json:"consultationId"`
	Input           map[string]*string       `json:"input"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	FiredRules      []string                 `json:"firedRules"`
	MissingFields   []string                 `json:"missingFields"`
	Message         string                   `json:"message,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// ParseAttributes normalizes a decoded JSON body into a fact. Values are
// trimmed, inner whitespace collapsed and lowercased; blank strings count as
// absent. Unknown keys are ignored and non-string values are rejected.
func ParseAttributes(raw map[string]any) (expert.ProjectAttributes, error) {
	normalized := make(map[string]any, len(expert.Fields))
	for _, f := range expert.Fields {
		v, ok := raw[string(f)]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			normalized[string(f)] = v
			continue
		}
		s = normalizeValue(s)
		if s == "" {
			continue
		}
		normalized[string(f)] = s
	}
	return expert.AttributesFromAny(normalized)
}

func normalizeValue(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// FormatConfidence renders a [0,1] confidence as a percentage, e.g. "85.00%".
func FormatConfidence(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// MissingMessage asks the caller for the absent fields, or returns "" when
// every field was supplied.
func MissingMessage(missing []expert.Field) string {
	if len(missing) == 0 {
		return ""
	}
	names := make([]string, 0, len(missing))
	for _, f := range missing {
		names = append(names, string(f))
	}
	return "Please provide: " + strings.Join(names, ", ")
}

// NewRecommendationResponses formats recs for the wire.
func NewRecommendationResponses(recs []expert.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		alts := make([]AlternativeResponse, 0, len(rec.Alternatives))
		for _, a := range rec.Alternatives {
			alts = append(alts, AlternativeResponse{
				Approach:    a.Approach,
				Confidence:  FormatConfidence(a.Confidence),
				Explanation: a.Explanation,
			})
		}
		out = append(out, RecommendationResponse{
			Approach:     rec.Approach,
			Confidence:   FormatConfidence(rec.Confidence),
			Explanation:  rec.Explanation,
			Alternatives: alts,
		})
	}
	return out
}

// NewConsultationResponse formats c for the wire.
func NewConsultationResponse(c Consultation) ConsultationResponse {
	input := make(map[string]*string, len(expert.Fields))
	for _, f := range expert.Fields {
		if v, ok := c.Fact.Get(f); ok {
			v := v
			input[string(f)] = &v
		} else {
			input[string(f)] = nil
		}
	}
	missing := c.Fact.Missing()
	missingNames := make([]string, 0, len(missing))
	for _, f := range missing {
		missingNames = append(missingNames, string(f))
	}
	fired := c.FiredRules
	if fired == nil {
		fired = []string{}
	}
	return ConsultationResponse{
		ConsultationID:  c.ID,
		Input:           input,
		Recommendations: NewRecommendationResponses(c.Recommendations),
		FiredRules:      fired,
		MissingFields:   missingNames,
		Message:         MissingMessage(missing),
		CreatedAt:       c.CreatedAt,
	}
}
