package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// AchievementStore defines the interface for the achievement catalog and unlocks.
type AchievementStore interface {
	// ListActive returns every active catalog entry ordered by category, target and key.
	ListActive(ctx context.Context) ([]domain.Achievement, error)

	// GetByKey returns an active achievement by its key.
	// Returns ErrAchievementNotFound if no active entry has that key.
	GetByKey(ctx context.Context, key string) (*domain.Achievement, error)

	// ListUnlocked returns the user's unlocks keyed by achievement ID.
	ListUnlocked(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]domain.UserAchievement, error)

	// Unlock inserts the unlock with INSERT ... ON CONFLICT DO NOTHING against the
	// unique (user_id, achievement_id) constraint. inserted is false when the user
	// already held the achievement; in that case nothing was written.
	Unlock(ctx context.Context, ua *domain.UserAchievement) (inserted bool, err error)

	// WithTx returns a new AchievementStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AchievementStore
}

// StatsStore computes the statistics achievement criteria are evaluated against.
type StatsStore interface {
	// Snapshot returns live counts for the user. now anchors the streak calculation.
	Snapshot(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.UserStats, error)

	// WithTx returns a new StatsStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StatsStore
}
