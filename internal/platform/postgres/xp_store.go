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

// PostgresXPStore implements store.XPStore over the user_xp and
// xp_activities tables.
type PostgresXPStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresXPStore creates a new PostgreSQL implementation of the XPStore interface.
func NewPostgresXPStore(db store.DBTX, logger *slog.Logger) *PostgresXPStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresXPStore{
		db:     db,
		logger: logger.With(slog.String("component", "xp_store")),
	}
}

// Ensure PostgresXPStore implements store.XPStore interface
var _ store.XPStore = (*PostgresXPStore)(nil)

const userXPColumns = `user_id, current_xp, total_xp, current_level, created_at, updated_at`

func scanUserXP(row rowScanner) (*domain.UserXP, error) {
	var x domain.UserXP
	if err := row.Scan(
		&x.UserID,
		&x.CurrentXP,
		&x.TotalXP,
		&x.CurrentLevel,
		&x.CreatedAt,
		&x.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &x, nil
}

// GetForUpdate implements store.XPStore.GetForUpdate.
func (s *PostgresXPStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserXP, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_xp (user_id, current_xp, total_xp, current_level, created_at, updated_at)
		VALUES ($1, 0, 0, 1, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		log.Error("failed to initialize user xp",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	query := `SELECT ` + userXPColumns + ` FROM user_xp WHERE user_id = $1 FOR UPDATE`
	xp, err := scanUserXP(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserXPNotFound
		}
		log.Error("failed to lock user xp",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	return xp, nil
}

// Get implements store.XPStore.Get.
func (s *PostgresXPStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserXP, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userXPColumns + ` FROM user_xp WHERE user_id = $1`
	xp, err := scanUserXP(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserXPNotFound
		}
		log.Error("failed to get user xp",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	return xp, nil
}

// Update implements store.XPStore.Update.
func (s *PostgresXPStore) Update(ctx context.Context, xp *domain.UserXP) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := xp.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE user_xp
		SET current_xp = $1, total_xp = $2, current_level = $3, updated_at = $4
		WHERE user_id = $5`,
		xp.CurrentXP,
		xp.TotalXP,
		xp.CurrentLevel,
		xp.UpdatedAt,
		xp.UserID,
	)
	if err != nil {
		log.Error("failed to update user xp",
			slog.String("error", err.Error()),
			slog.String("user_id", xp.UserID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserXPNotFound)
}

// AppendActivity implements store.XPStore.AppendActivity.
func (s *PostgresXPStore) AppendActivity(ctx context.Context, activity *domain.XPActivity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO xp_activities (id, user_id, activity_type, xp_earned, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		activity.ID,
		activity.UserID,
		string(activity.ActivityType),
		activity.XPEarned,
		activity.Description,
		activity.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append xp activity",
			slog.String("error", err.Error()),
			slog.String("user_id", activity.UserID.String()),
			slog.String("activity_type", string(activity.ActivityType)))
		return MapError(err)
	}
	return nil
}

// SumActivities implements store.XPStore.SumActivities.
func (s *PostgresXPStore) SumActivities(ctx context.Context, userID uuid.UUID) (int, error) {
	var sum int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(xp_earned), 0) FROM xp_activities WHERE user_id = $1`,
		userID,
	).Scan(&sum)
	if err != nil {
		return 0, MapError(err)
	}
	return sum, nil
}

// RecentActivities implements store.XPStore.RecentActivities.
func (s *PostgresXPStore) RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]domain.XPActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, activity_type, xp_earned, description, created_at
		FROM xp_activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		log.Error("failed to list xp activities",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	activities := make([]domain.XPActivity, 0, limit)
	for rows.Next() {
		var a domain.XPActivity
		var activityType string
		if err := rows.Scan(&a.ID, &a.UserID, &activityType, &a.XPEarned, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan xp activity: %w", err)
		}
		a.ActivityType = domain.ActivityType(activityType)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return activities, nil
}

// Top implements store.XPStore.Top.
func (s *PostgresXPStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, total_xp, current_level
		FROM user_xp
		ORDER BY total_xp DESC, created_at ASC, user_id ASC
		LIMIT $1`, limit)
	if err != nil {
		log.Error("failed to query leaderboard", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.TotalXP, &e.Level); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return entries, nil
}

// WithTx implements store.XPStore.WithTx.
func (s *PostgresXPStore) WithTx(tx *sql.Tx) store.XPStore {
	return &PostgresXPStore{db: tx, logger: s.logger}
}
