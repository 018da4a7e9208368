package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// VocabularyStore gives read access to the vocabulary catalog.
// The catalog is written by another component; this interface never mutates it.
type VocabularyStore interface {
	// GetOwned retrieves a vocabulary item that belongs to the user.
	// Returns ErrVocabularyItemNotFound if the item does not exist or belongs to someone else.
	GetOwned(ctx context.Context, userID, wordID uuid.UUID) (*domain.VocabularyItem, error)

	// FilterOwned returns the subset of wordIDs owned by the user, in no particular order.
	FilterOwned(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]uuid.UUID, error)

	// ListPracticeCandidates returns owned items whose mastery level (0 when no record
	// exists) is below threshold, ordered by last_practiced ascending with never-practiced
	// items first, then by mastery level ascending. At most limit rows are returned.
	ListPracticeCandidates(
		ctx context.Context,
		userID uuid.UUID,
		threshold int,
		difficulty *domain.Difficulty,
		limit int,
	) ([]domain.PracticeCandidate, error)

	// ListByUser returns every item the user owns. It is the pool distractors are drawn from.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error)

	// WithTx returns a new VocabularyStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) VocabularyStore
}

// SettingsStore reads the optional per-user practice settings.
type SettingsStore interface {
	// Get returns the user's settings, or (nil, nil) when the user has none.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}
