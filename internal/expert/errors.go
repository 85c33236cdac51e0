package expert

import "errors"

var (
	// ErrMalformedPattern is returned when a rule pattern cannot be compiled.
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrInvalidFact is returned when project attributes cannot be constructed.
	ErrInvalidFact = errors.New("invalid fact")
	// ErrInvalidRecommendation is returned when a recommendation breaks its invariants.
	ErrInvalidRecommendation = errors.New("invalid recommendation")
)
