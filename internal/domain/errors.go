package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrInvalidDifficulty is returned for a difficulty outside easy, medium and hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidActivityType is returned for an unknown XP activity type.
	ErrInvalidActivityType = errors.New("invalid activity type")

	// ErrInvalidCriterion is returned for an unknown achievement criterion type.
	ErrInvalidCriterion = errors.New("invalid achievement criterion")

	// ErrDataIntegrity signals that persisted state contradicts an invariant,
	// for example a total_xp that no longer matches the activity log.
	// It is never recoverable by the caller.
	ErrDataIntegrity = errors.New("data integrity violation")
)

// ValidationError describes a single invalid field. It unwraps to a sentinel
// (usually ErrValidation) so callers can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("%v: %s %s", e.Err, e.Field, e.Message)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError. A nil sentinel defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrValidation)
}
