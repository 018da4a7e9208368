// Package progression implements the XP ledger: awards with level-up
// bonuses, ledger verification, XP summaries and the leaderboard.
package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// Service is the progression ledger.
type Service interface {
	// Award credits amount XP of a user-facing activity type in its own
	// transaction. System activity types are rejected. After commit the
	// leaderboard cache is invalidated and an xp.awarded event is emitted.
	//
	// Returns:
	//   - (*domain.AwardResult, nil) on success
	//   - (nil, *domain.ValidationError) for an invalid amount or activity type
	//   - (nil, error wrapping domain.ErrDataIntegrity) when the ledger no longer adds up
	Award(
		ctx context.Context,
		userID uuid.UUID,
		activityType domain.ActivityType,
		amount int,
		description string,
	) (*domain.AwardResult, error)

	// AwardTx performs the award inside the caller's transaction. System
	// activity types are allowed. The caller is responsible for calling
	// InvalidateLeaderboard once the transaction commits.
	//
	// Concurrent awards for one user serialize on the user_xp row lock.
	AwardTx(
		ctx context.Context,
		tx *sql.Tx,
		userID uuid.UUID,
		activityType domain.ActivityType,
		amount int,
		description string,
	) (*domain.AwardResult, error)

	// AwardVocabularyAdded credits the XP for count newly added words inside
	// the caller's transaction. A count of zero awards nothing and returns nil.
	AwardVocabularyAdded(ctx context.Context, tx *sql.Tx, userID uuid.UUID, count int) (*domain.AwardResult, error)

	// SessionXP returns the XP earned by a completed practice session.
	SessionXP(correct, total int) int

	// Info returns the user's ledger row, level progress and recent activity.
	// Users without a ledger row get a level-1 view with zero XP.
	Info(ctx context.Context, userID uuid.UUID) (*domain.XPInfo, error)

	// Top returns the ranked leaderboard. A limit of 0 selects the default.
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// InvalidateLeaderboard drops cached leaderboard snapshots. Failures are
	// logged and never returned.
	InvalidateLeaderboard(ctx context.Context)
}

// LeaderboardCache stores ranked leaderboard snapshots.
type LeaderboardCache interface {
	// Get returns the snapshot for limit and the generation it was looked up
	// under; ok is false on a miss.
	Get(ctx context.Context, limit int) (entries []domain.LeaderboardEntry, generation int64, ok bool, err error)
	// Set stores the snapshot for limit under the generation a prior Get returned.
	Set(ctx context.Context, generation int64, limit int, entries []domain.LeaderboardEntry) error
	// Invalidate makes every stored snapshot unreachable.
	Invalidate(ctx context.Context) error
}

// Leaderboard and summary limits.
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
	RecentActivityLimit     = 10
)

// Common error types for the progression service
var (
	// ErrInvalidAmount indicates an award amount outside 1..max_award_amount.
	ErrInvalidAmount = errors.New("invalid xp amount")

	// ErrSystemActivityType indicates a manual award used a type reserved for the system.
	ErrSystemActivityType = errors.New("activity type is reserved for system awards")

	// ErrInvalidLimit indicates a leaderboard limit outside 0..MaxLeaderboardLimit.
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)

// ServiceError wraps errors from the progression service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "award", "top")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
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

// NewAwardError returns a new ServiceError for the award operation.
func NewAwardError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "award", Message: message, Err: err}
}

// NewInfoError returns a new ServiceError for the info operation.
func NewInfoError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "info", Message: message, Err: err}
}

// NewTopError returns a new ServiceError for the top operation.
func NewTopError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "top", Message: message, Err: err}
}
