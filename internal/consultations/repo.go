package consultations

import "context"

// Repo persists consultations.
type Repo interface {
	Create(ctx context.Context, c Consultation) error
	GetByID(ctx context.Context, id string) (Consultation, error)
	List(ctx context.Context, limit, offset int) ([]Consultation, error)
}
