package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/store"
)

// PostgresStatsStore implements store.StatsStore by aggregating the
// vocabulary, practice and ledger tables. Mastered words are counted through
// the mastery store.
type PostgresStatsStore struct {
	db      store.DBTX
	mastery store.MasteryStore
	logger  *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the StatsStore interface.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStatsStore{
		db:      db,
		mastery: NewPostgresMasteryStore(db, logger),
		logger:  logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

const statsQuery = `
	SELECT
		(SELECT COUNT(*) FROM vocabulary_items WHERE user_id = $1),
		(SELECT COUNT(*) FROM practice_sessions WHERE user_id = $1 AND completed_at IS NOT NULL),
		(SELECT COUNT(*) FROM practice_sessions
			WHERE user_id = $1 AND completed_at IS NOT NULL
			AND total_questions > 0 AND correct_answers = total_questions),
		(SELECT COUNT(*) FROM practice_results WHERE user_id = $1 AND was_correct),
		COALESCE((SELECT total_xp FROM user_xp WHERE user_id = $1), 0),
		COALESCE((SELECT current_level FROM user_xp WHERE user_id = $1), 1)`

const streakQuery = `
	SELECT DISTINCT date_trunc('day', completed_at AT TIME ZONE 'UTC') AS day
	FROM practice_sessions
	WHERE user_id = $1 AND completed_at IS NOT NULL AND completed_at <= $2
	ORDER BY day DESC`

// Snapshot implements store.StatsStore.Snapshot.
func (s *PostgresStatsStore) Snapshot(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.UserStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats := &domain.UserStats{UserID: userID}
	err := s.db.QueryRowContext(ctx, statsQuery, userID).Scan(
		&stats.VocabularyCount,
		&stats.CompletedSessions,
		&stats.PerfectSessions,
		&stats.CorrectAnswers,
		&stats.TotalXP,
		&stats.Level,
	)
	if err != nil {
		log.Error("failed to load user statistics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	stats.WordsMastered, err = s.mastery.CountMastered(ctx, userID, domain.MaxMasteryLevel)
	if err != nil {
		log.Error("failed to count mastered words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	days, err := s.practiceDays(ctx, userID, now)
	if err != nil {
		log.Error("failed to load practice days",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	stats.StreakDays = domain.CurrentStreak(days, now)

	return stats, nil
}

func (s *PostgresStatsStore) practiceDays(ctx context.Context, userID uuid.UUID, now time.Time) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, streakQuery, userID, now.UTC())
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan practice day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return days, nil
}

// WithTx implements store.StatsStore.WithTx.
func (s *PostgresStatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return &PostgresStatsStore{db: tx, mastery: s.mastery.WithTx(tx), logger: s.logger}
}
