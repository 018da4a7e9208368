package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// XPStore defines the interface for the progression ledger.
type XPStore interface {
	// GetForUpdate returns the user's ledger row under an exclusive row lock,
	// creating a level-1 row first if the user has none. Must run in a transaction.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserXP, error)

	// Get returns the user's ledger row without locking.
	// Returns ErrUserXPNotFound if the user has not earned XP yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserXP, error)

	// Update writes current_xp, total_xp and current_level.
	// Returns ErrUserXPNotFound if the row does not exist.
	Update(ctx context.Context, xp *domain.UserXP) error

	// AppendActivity inserts a ledger entry.
	AppendActivity(ctx context.Context, activity *domain.XPActivity) error

	// SumActivities returns the sum of xp_earned over the user's entries.
	SumActivities(ctx context.Context, userID uuid.UUID) (int, error)

	// RecentActivities returns the user's newest entries, newest first.
	RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]domain.XPActivity, error)

	// Top returns up to limit ledger rows ordered by total_xp descending.
	// Ties are returned in a stable order (created_at, then user_id). Ranks are not set.
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// WithTx returns a new XPStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) XPStore
}
