package consultations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"methodology-advisor/internal/expert"
)

func sampleConsultation(t *testing.T) Consultation {
	t.Helper()
	fact, err := expert.NewProjectAttributes(map[expert.Field]string{
		expert.FieldSize:           "small",
		expert.FieldComplexity:     "low",
		expert.FieldDeadline:       "flexible",
		expert.FieldTeamExperience: "high",
	})
	if err != nil {
		t.Fatalf("NewProjectAttributes: %v", err)
	}
	rs := expert.MustBuildRuleSet()
	return Consultation{
		ID:              "consultation-1",
		Fact:            fact,
		Recommendations: expert.Infer(rs, fact),
		FiredRules:      expert.Fired(rs, fact),
		RequestID:       "req-1",
		CreatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPGRepoCreateWritesAllColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	c := sampleConsultation(t)

	mock.ExpectExec("INSERT INTO consultations").
		WithArgs(
			c.ID,
			"small",
			"low",
			"flexible",
			"high",
			nil,              // risk
			sqlmock.AnyArg(), // recommendations
			"Agile",
			2,
			"agile,hybrid",
			"req-1",
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "size", "complexity", "deadline", "team_experience", "risk",
		"recommendations", "fired_rules", "request_id", "created_at",
	}).AddRow(
		"consultation-1", "large", "high", "strict", "low", "high",
		`[{"approach":"Waterfall","confidence":0.85,"explanation":"w","alternatives":[{"approach":"Hybrid","confidence":0.6,"explanation":"h"}]}]`,
		"waterfall,risk_management_low_experience", nil, created,
	)
	mock.ExpectQuery("SELECT (.+) FROM consultations").
		WithArgs("consultation-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), "consultation-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TopApproach() != "Waterfall" {
		t.Fatalf("unexpected top approach: %q", got.TopApproach())
	}
	if len(got.Recommendations[0].Alternatives) != 1 || got.Recommendations[0].Alternatives[0].Confidence != 0.6 {
		t.Fatalf("unexpected alternatives: %+v", got.Recommendations[0].Alternatives)
	}
	if got.MatchCount() != 2 {
		t.Fatalf("unexpected match count: %d", got.MatchCount())
	}
	if v, ok := got.Fact.Get(expert.FieldRisk); !ok || v != "high" {
		t.Fatalf("unexpected risk: %q %v", v, ok)
	}
	if got.RequestID != "" {
		t.Fatalf("expected empty request id, got %q", got.RequestID)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM consultations").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{
		"id", "size", "complexity", "deadline", "team_experience", "risk",
		"recommendations", "fired_rules", "request_id", "created_at",
	}).AddRow(
		"c-2", nil, nil, nil, nil, nil,
		`[{"approach":"None","confidence":0,"explanation":"Insufficient data to provide a recommendation.","alternatives":[]}]`,
		"", "req-2", time.Now().UTC(),
	)
	mock.ExpectQuery("SELECT (.+) FROM consultations").
		WithArgs(maxPageLimit, 5).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	items, err := repo.List(context.Background(), 500, 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].Recommendations[0].IsNone() {
		t.Fatalf("expected fallback recommendation, got %+v", items[0].Recommendations[0])
	}
	if len(items[0].FiredRules) != 0 {
		t.Fatalf("expected no fired rules, got %v", items[0].FiredRules)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
