package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// MasteryStore defines the interface for per-(user, word) mastery persistence.
type MasteryStore interface {
	// EnsureRecords creates mastery records at level 0 for the given words.
	// Existing records are left untouched. Returns the number of records created.
	EnsureRecords(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (int, error)

	// ApplyOutcome records one practice outcome as a single atomic statement:
	// times_practiced and times_correct are incremented in place and mastery_level
	// is moved by delta and clamped to [0, 100]. A missing record is created first.
	// Concurrent calls for the same word never lose updates.
	ApplyOutcome(
		ctx context.Context,
		userID, wordID uuid.UUID,
		correct bool,
		at time.Time,
		delta domain.MasteryDelta,
	) (*domain.MasteryRecord, error)

	// CountMastered returns how many of the user's records are at minLevel or above.
	CountMastered(ctx context.Context, userID uuid.UUID, minLevel int) (int, error)

	// WithTx returns a new MasteryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MasteryStore
}
