package consultations

import (
	"time"

	"methodology-advisor/internal/expert"
)

// Consultation is one recommendation request and the engine's answer.
type Consultation struct {
	ID              string
	Fact            expert.ProjectAttributes
	Recommendations []expert.Recommendation
	FiredRules      []string
	RequestID       string
	CreatedAt       time.Time
}

// TopApproach returns the approach of the first recommendation.
func (c Consultation) TopApproach() string {
	if len(c.Recommendations) == 0 {
		return ""
	}
	return c.Recommendations[0].Approach
}

// MatchCount returns how many rules fired.
func (c Consultation) MatchCount() int {
	return len(c.FiredRules)
}

// RuleSummary describes one rule of the active catalog.
type RuleSummary struct {
	Name     string `json:"name"`
	Pattern  string `json:"pattern"`
	Approach string `json:"approach"`
}
