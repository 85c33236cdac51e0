package consultations

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrHistoryDisabled = errors.New("consultation history disabled")
)
