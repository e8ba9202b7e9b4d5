package shared

import (
	"errors"
	"fmt"
)

// Error kinds. Domain packages wrap one of these so the HTTP layer can map
// a failure to a status without knowing every package's sentinels.
var (
	// ErrNotFound marks a missing referenced entity.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrBusinessRule marks a request that is well formed but breaks a domain rule.
	ErrBusinessRule = errors.New("business rule violation")
	// ErrConflict marks a request that collides with current state.
	ErrConflict = errors.New("conflict")
)

// ErrIdempotencyConflict indicates a duplicate key.
var ErrIdempotencyConflict = fmt.Errorf("idempotent request already processed: %w", ErrConflict)

// Validationf builds a validation error with a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
