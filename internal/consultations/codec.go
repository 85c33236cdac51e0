package consultations

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"methodology-advisor/internal/expert"
)

type storedAlternative struct {
	Approach    string  `json:"approach"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

type storedRecommendation struct {
	Approach     string              `json:"approach"`
	Confidence   float64             `json:"confidence"`
	Explanation  string              `json:"explanation"`
	Alternatives []storedAlternative `json:"alternatives"`
}

// row is the column form of a Consultation shared by the SQL repos.
type row struct {
	ID              string
	Fields          [5]sql.NullString
	Recommendations string
	TopApproach     string
	MatchCount      int
	FiredRules      string
	RequestID       sql.NullString
	CreatedAt       time.Time
}

func toRow(c Consultation) (row, error) {
	stored := make([]storedRecommendation, 0, len(c.Recommendations))
	for _, rec := range c.Recommendations {
		alts := make([]storedAlternative, 0, len(rec.Alternatives))
		for _, a := range rec.Alternatives {
			alts = append(alts, storedAlternative(a))
		}
		stored = append(stored, storedRecommendation{
			Approach:     rec.Approach,
			Confidence:   rec.Confidence,
			Explanation:  rec.Explanation,
			Alternatives: alts,
		})
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return row{}, fmt.Errorf("encode recommendations: %w", err)
	}

	r := row{
		ID:              c.ID,
		Recommendations: string(payload),
		TopApproach:     c.TopApproach(),
		MatchCount:      c.MatchCount(),
		FiredRules:      strings.Join(c.FiredRules, ","),
		CreatedAt:       c.CreatedAt.UTC(),
	}
	for i, f := range expert.Fields {
		if v, ok := c.Fact.Get(f); ok {
			r.Fields[i] = sql.NullString{String: v, Valid: true}
		}
	}
	if c.RequestID != "" {
		r.RequestID = sql.NullString{String: c.RequestID, Valid: true}
	}
	return r, nil
}

func (r row) args() []any {
	return []any{
		r.ID,
		r.Fields[0],
		r.Fields[1],
		r.Fields[2],
		r.Fields[3],
		r.Fields[4],
		r.Recommendations,
		r.TopApproach,
		r.MatchCount,
		r.FiredRules,
		r.RequestID,
		r.CreatedAt,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// selectColumns must stay in the order scanRow reads them.
const selectColumns = `id, size, complexity, deadline, team_experience, risk, recommendations, fired_rules, request_id, created_at`

func scanRow(s scanner) (Consultation, error) {
	var r row
	if err := s.Scan(
		&r.ID,
		&r.Fields[0],
		&r.Fields[1],
		&r.Fields[2],
		&r.Fields[3],
		&r.Fields[4],
		&r.Recommendations,
		&r.FiredRules,
		&r.RequestID,
		&r.CreatedAt,
	); err != nil {
		return Consultation{}, err
	}
	return fromRow(r)
}

func fromRow(r row) (Consultation, error) {
	values := make(map[expert.Field]string, len(expert.Fields))
	for i, f := range expert.Fields {
		if r.Fields[i].Valid {
			values[f] = r.Fields[i].String
		}
	}
	fact, err := expert.NewProjectAttributes(values)
	if err != nil {
		return Consultation{}, err
	}

	var stored []storedRecommendation
	if err := json.Unmarshal([]byte(r.Recommendations), &stored); err != nil {
		return Consultation{}, fmt.Errorf("decode recommendations: %w", err)
	}
	recs := make([]expert.Recommendation, 0, len(stored))
	for _, s := range stored {
		alts := make([]expert.Alternative, 0, len(s.Alternatives))
		for _, a := range s.Alternatives {
			alts = append(alts, expert.Alternative(a))
		}
		recs = append(recs, expert.Recommendation{
			Approach:     s.Approach,
			Confidence:   s.Confidence,
			Explanation:  s.Explanation,
			Alternatives: alts,
		})
	}

	var fired []string
	if r.FiredRules != "" {
		fired = strings.Split(r.FiredRules, ",")
	}

	return Consultation{
		ID:              r.ID,
		Fact:            fact,
		Recommendations: recs,
		FiredRules:      fired,
		RequestID:       r.RequestID.String,
		CreatedAt:       r.CreatedAt.UTC(),
	}, nil
}
