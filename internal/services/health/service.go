package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Status is the health payload served at /api/v1/health.
type Status struct {
	OK       bool   `json:"ok"`
	Rules    int    `json:"rules"`
	Storage  string `json:"storage"`
	Database string `json:"database,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB      *sql.DB
	Rules   int
	Storage string
}

// NewService constructs a new health service. db may be nil when history is
// kept in memory or disabled.
func NewService(db *sql.DB, rules int, storage string) *Service {
	return &Service{DB: db, Rules: rules, Storage: storage}
}

// Status reports whether the rule catalog is loaded and the database, if
// any, answers a ping.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: s.Rules > 0, Rules: s.Rules, Storage: s.Storage}
	if s.DB == nil {
		return st
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		st.OK = false
		st.Database = "unreachable"
		return st
	}
	st.Database = "ok"
	return st
}
