package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrSessionNotFound, ErrAchievementNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or violates a database constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConcurrency is returned when a transaction lost a race against a concurrent
	// one (serialization failure, deadlock or lock timeout). The operation may be retried.
	ErrConcurrency = errors.New("concurrent modification")

	// ErrTransactionFailed is returned when a database transaction fails to commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrVocabularyItemNotFound indicates the word is not in the user's vocabulary.
	ErrVocabularyItemNotFound = fmt.Errorf("%w: vocabulary item", ErrNotFound)

	// ErrSessionNotFound indicates the practice session does not exist for the user.
	ErrSessionNotFound = fmt.Errorf("%w: practice session", ErrNotFound)

	// ErrUserXPNotFound indicates the user has no ledger row yet.
	ErrUserXPNotFound = fmt.Errorf("%w: user xp", ErrNotFound)

	// ErrAchievementNotFound indicates the achievement key is not in the catalog.
	ErrAchievementNotFound = fmt.Errorf("%w: achievement", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// Entity-specific errors wrap ErrNotFound, so a single check covers them all.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConcurrencyError reports whether err signals a retryable transaction conflict.
func IsConcurrencyError(err error) bool {
	return errors.Is(err, ErrConcurrency)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user_xp", "practice_session")
	Operation string // The operation that failed (e.g., "create", "apply_outcome")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
