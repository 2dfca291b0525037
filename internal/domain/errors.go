package domain

import "errors"

// Failure classes surfaced across the service boundary. Callers match
// them with errors.Is; the api layer maps them to HTTP statuses.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("booking conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)
