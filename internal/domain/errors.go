package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrJobFinalized    = errors.New("job already finalized")
	ErrDuplicateJob    = errors.New("duplicate job")
	ErrProviderFailure = errors.New("provider failure")
	ErrInvalidPayload  = errors.New("invalid model payload")
)
