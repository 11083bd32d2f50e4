package principal

import "errors"

var (
	// ErrPrincipalNotFound is returned when no principal matches the lookup
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrHandleTaken is returned when the handle is already registered
	ErrHandleTaken = errors.New("handle already registered")
)
