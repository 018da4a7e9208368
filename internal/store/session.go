package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// PracticeSessionStore defines the interface for practice sessions and their results.
type PracticeSessionStore interface {
	// Create saves a new session.
	Create(ctx context.Context, session *domain.PracticeSession) error

	// GetForShare retrieves the user's session with a shared row lock (SELECT ... FOR SHARE).
	// Concurrent result submissions may hold the lock together, but completion waits.
	// Returns ErrSessionNotFound if the session does not exist or belongs to another user.
	GetForShare(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error)

	// GetForUpdate retrieves the user's session with an exclusive row lock.
	// Returns ErrSessionNotFound if the session does not exist or belongs to another user.
	GetForUpdate(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error)

	// AddResult appends an immutable practice result.
	AddResult(ctx context.Context, result *domain.PracticeResult) error

	// CountResults recomputes the totals of a session from its results.
	CountResults(ctx context.Context, sessionID uuid.UUID) (total int, correct int, err error)

	// Complete writes the final counters, duration and completion time.
	// Returns ErrSessionNotFound if no incomplete session matched.
	Complete(ctx context.Context, session *domain.PracticeSession) error

	// WithTx returns a new PracticeSessionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PracticeSessionStore
}
