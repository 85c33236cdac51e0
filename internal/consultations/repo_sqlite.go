package consultations

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteRepo implements Repo on a local SQLite file.
type SQLiteRepo struct {
	DB *sql.DB
}

// Create inserts a consultation.
func (r *SQLiteRepo) Create(ctx context.Context, c Consultation) error {
	const query = `
INSERT INTO consultations (
    id, size, complexity, deadline, team_experience, risk,
    recommendations, top_approach, match_count, fired_rules, request_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	rw, err := toRow(c)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, rw.args()...)
	return err
}

// GetByID fetches a consultation by ID.
func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Consultation, error) {
	const query = `SELECT ` + selectColumns + ` FROM consultations WHERE id = ? LIMIT 1`
	c, err := scanRow(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Consultation{}, ErrNotFound
		}
		return Consultation{}, err
	}
	return c, nil
}

// List lists consultations ordered newest-first.
func (r *SQLiteRepo) List(ctx context.Context, limit, offset int) ([]Consultation, error) {
	limit, offset = clampPage(limit, offset)
	const query = `SELECT ` + selectColumns + ` FROM consultations ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Consultation{}
	for rows.Next() {
		c, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ Repo = (*SQLiteRepo)(nil)
