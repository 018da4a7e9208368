package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/store"
)

// PostgresAchievementStore implements the store.AchievementStore interface
// over the achievements catalog and the user_achievements table.
type PostgresAchievementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAchievementStore creates a new PostgreSQL implementation of the AchievementStore interface.
func NewPostgresAchievementStore(db store.DBTX, logger *slog.Logger) *PostgresAchievementStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAchievementStore{
		db:     db,
		logger: logger.With(slog.String("component", "achievement_store")),
	}
}

// Ensure PostgresAchievementStore implements store.AchievementStore interface
var _ store.AchievementStore = (*PostgresAchievementStore)(nil)

const achievementColumns = `id, key, name, description, category, criterion_type,
		criterion_target, xp_reward, is_active, created_at`

func scanAchievement(row rowScanner) (*domain.Achievement, error) {
	var a domain.Achievement
	var criterion string
	if err := row.Scan(
		&a.ID,
		&a.Key,
		&a.Name,
		&a.Description,
		&a.Category,
		&criterion,
		&a.Target,
		&a.XPReward,
		&a.IsActive,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.CriterionType = domain.CriterionType(criterion)
	return &a, nil
}

// ListActive implements store.AchievementStore.ListActive.
func (s *PostgresAchievementStore) ListActive(ctx context.Context) ([]domain.Achievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + achievementColumns + `
		FROM achievements
		WHERE is_active
		ORDER BY category ASC, criterion_target ASC, key ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list achievements", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var achievements []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return achievements, nil
}

// GetByKey implements store.AchievementStore.GetByKey.
func (s *PostgresAchievementStore) GetByKey(ctx context.Context, key string) (*domain.Achievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + achievementColumns + `
		FROM achievements
		WHERE key = $1 AND is_active`

	a, err := scanAchievement(s.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("achievement not found", slog.String("key", key))
			return nil, store.ErrAchievementNotFound
		}
		log.Error("failed to get achievement",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return nil, MapError(err)
	}
	return a, nil
}

// ListUnlocked implements store.AchievementStore.ListUnlocked.
func (s *PostgresAchievementStore) ListUnlocked(
	ctx context.Context,
	userID uuid.UUID,
) (map[uuid.UUID]domain.UserAchievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to list unlocked achievements",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	unlocked := make(map[uuid.UUID]domain.UserAchievement)
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user achievement: %w", err)
		}
		unlocked[ua.AchievementID] = ua
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return unlocked, nil
}

// Unlock implements store.AchievementStore.Unlock.
func (s *PostgresAchievementStore) Unlock(ctx context.Context, ua *domain.UserAchievement) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		ua.ID,
		ua.UserID,
		ua.AchievementID,
		ua.UnlockedAt,
	)
	if err != nil {
		log.Error("failed to unlock achievement",
			slog.String("error", err.Error()),
			slog.String("user_id", ua.UserID.String()),
			slog.String("achievement_id", ua.AchievementID.String()))
		return false, MapError(err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, MapError(err)
	}
	if inserted == 0 {
		log.Debug("achievement already unlocked",
			slog.String("user_id", ua.UserID.String()),
			slog.String("achievement_id", ua.AchievementID.String()))
		return false, nil
	}
	return true, nil
}

// WithTx implements store.AchievementStore.WithTx.
func (s *PostgresAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return &PostgresAchievementStore{db: tx, logger: s.logger}
}
