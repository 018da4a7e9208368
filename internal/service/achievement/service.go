// Package achievement evaluates the achievement catalog against user
// statistics, unlocks satisfied achievements and reports progress.
package achievement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// Service is the achievement engine.
type Service interface {
	// CheckAndUnlock unlocks every active achievement whose criterion the user
	// currently meets and credits its XP reward. Achievement XP may satisfy
	// further XP or level criteria, so evaluation repeats until a round
	// unlocks nothing new. Only achievements unlocked by this call are returned.
	//
	// Each unlock and its reward commit together. Calling this concurrently
	// for one user never unlocks or rewards an achievement twice.
	CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]domain.UnlockedAchievement, error)

	// Progress reports the user's progress toward one achievement. It is a
	// pure read and keeps reporting after the achievement was unlocked.
	//
	// Returns ErrAchievementNotFound for an unknown or inactive key.
	Progress(ctx context.Context, userID uuid.UUID, key string) (*domain.AchievementProgress, error)

	// ListProgress reports progress for every active achievement.
	ListProgress(ctx context.Context, userID uuid.UUID) ([]domain.AchievementProgress, error)
}

// Common error types for the achievement service
var (
	// ErrAchievementNotFound indicates no active achievement has the given key.
	ErrAchievementNotFound = errors.New("achievement not found")
)

// ServiceError wraps errors from the achievement service with additional context.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewCheckError returns a new ServiceError for the check operation.
func NewCheckError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "check", Message: message, Err: err}
}

// NewProgressError returns a new ServiceError for the progress operation.
func NewProgressError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "progress", Message: message, Err: err}
}
