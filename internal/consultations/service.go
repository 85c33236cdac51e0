package consultations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"methodology-advisor/internal/expert"
	"methodology-advisor/internal/shared/metrics"
	"methodology-advisor/internal/shared/telemetry"
)

// Service runs inference and records consultations.
type Service struct {
	Rules *expert.RuleSet
	// Repo may be nil, in which case history is disabled.
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(rules *expert.RuleSet, repo Repo) *Service {
	return &Service{Rules: rules, Repo: repo, Now: time.Now}
}

// Recommend runs the engine for fact and stores the result in history. A
// storage failure is logged and does not fail the request.
func (s *Service) Recommend(ctx context.Context, fact expert.ProjectAttributes, requestID string) Consultation {
	start := time.Now()
	recs := expert.Infer(s.Rules, fact)
	fired := expert.Fired(s.Rules, fact)
	elapsed := metrics.SinceMillis(start)

	// A lone "None" answer is a miss whether it came from the catch-all
	// rule or the engine fallback, so it counts no matches.
	noMatch := len(recs) == 1 && recs[0].IsNone()
	if noMatch {
		fired = []string{}
	}

	metrics.IncInference()
	metrics.ObserveInferenceDurationMs(elapsed)
	for _, name := range fired {
		metrics.IncRuleFired(name)
	}
	if noMatch {
		metrics.IncInferenceNoMatch()
	}

	c := Consultation{
		ID:              uuid.NewString(),
		Fact:            fact,
		Recommendations: recs,
		FiredRules:      fired,
		RequestID:       requestID,
		CreatedAt:       s.now().UTC(),
	}

	telemetry.Debug("inference.complete", map[string]any{
		"request_id":      requestID,
		"consultation_id": c.ID,
		"fired_rules":     fired,
		"top_approach":    c.TopApproach(),
		"duration_ms":     elapsed,
	})

	if s.Repo == nil {
		return c
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		metrics.IncHistoryFailed()
		telemetry.Error("consultation.save_failed", map[string]any{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"error":           err,
		})
		return c
	}
	metrics.IncHistorySaved()
	return c
}

// Get returns a stored consultation.
func (s *Service) Get(ctx context.Context, id string) (Consultation, error) {
	if s.Repo == nil {
		return Consultation{}, ErrHistoryDisabled
	}
	if id == "" {
		return Consultation{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns stored consultations newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Consultation, error) {
	if s.Repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.Repo.List(ctx, limit, offset)
}

// RuleSummaries describes the active rule catalog in order.
func (s *Service) RuleSummaries() []RuleSummary {
	rules := s.Rules.All()
	out := make([]RuleSummary, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleSummary{
			Name:     r.Name,
			Pattern:  r.Pattern.String(),
			Approach: r.Produce(expert.ProjectAttributes{}).Approach,
		})
	}
	return out
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
