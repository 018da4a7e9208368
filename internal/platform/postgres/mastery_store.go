package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/store"
)

// PostgresMasteryStore implements the store.MasteryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMasteryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMasteryStore creates a new PostgreSQL implementation of the MasteryStore interface.
func NewPostgresMasteryStore(db store.DBTX, logger *slog.Logger) *PostgresMasteryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMasteryStore{
		db:     db,
		logger: logger.With(slog.String("component", "mastery_store")),
	}
}

// Ensure PostgresMasteryStore implements store.MasteryStore interface
var _ store.MasteryStore = (*PostgresMasteryStore)(nil)

const masteryReturning = `RETURNING user_id, word_id, times_practiced, times_correct,
		last_practiced, mastery_level, created_at, updated_at`

func scanMasteryRecord(row rowScanner) (*domain.MasteryRecord, error) {
	var r domain.MasteryRecord
	var lastPracticed sql.NullTime
	if err := row.Scan(
		&r.UserID,
		&r.WordID,
		&r.TimesPracticed,
		&r.TimesCorrect,
		&lastPracticed,
		&r.MasteryLevel,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastPracticed.Valid {
		t := lastPracticed.Time
		r.LastPracticed = &t
	}
	return &r, nil
}

// EnsureRecords implements store.MasteryStore.EnsureRecords.
// Only words present in the user's vocabulary get a record.
func (s *PostgresMasteryStore) EnsureRecords(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids := dedupe(wordIDs)
	if len(ids) == 0 {
		return 0, nil
	}

	in, idArgs := uuidPlaceholders(2, ids)
	query := `
		INSERT INTO mastery_records (user_id, word_id, created_at, updated_at)
		SELECT v.user_id, v.id, NOW(), NOW()
		FROM vocabulary_items v
		WHERE v.user_id = $1 AND v.id IN (` + in + `)
		ON CONFLICT (user_id, word_id) DO NOTHING`
	args := append([]any{userID}, idArgs...)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to ensure mastery records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("word_count", len(ids)))
		return 0, MapError(err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, MapError(err)
	}

	log.Debug("ensured mastery records",
		slog.String("user_id", userID.String()),
		slog.Int64("created", created))
	return int(created), nil
}

// ApplyOutcome implements store.MasteryStore.ApplyOutcome.
// The read-modify-write happens inside one upsert so concurrent outcomes for
// the same word serialize on the row lock instead of overwriting each other.
func (s *PostgresMasteryStore) ApplyOutcome(
	ctx context.Context,
	userID, wordID uuid.UUID,
	correct bool,
	at time.Time,
	delta domain.MasteryDelta,
) (*domain.MasteryRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	correctInc := 0
	step := -delta.IncorrectPenalty
	if correct {
		correctInc = 1
		step = delta.CorrectGain
	}
	initialLevel := delta.NextMasteryLevel(domain.MinMasteryLevel, correct)

	query := `
		INSERT INTO mastery_records (
			user_id, word_id, times_practiced, times_correct,
			last_practiced, mastery_level, created_at, updated_at
		)
		VALUES ($1, $2, 1, $3, $4, $5, $4, $4)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			times_practiced = mastery_records.times_practiced + 1,
			times_correct = mastery_records.times_correct + EXCLUDED.times_correct,
			last_practiced = EXCLUDED.last_practiced,
			mastery_level = LEAST(100, GREATEST(0, mastery_records.mastery_level + $6)),
			updated_at = EXCLUDED.updated_at
		` + masteryReturning

	record, err := scanMasteryRecord(s.db.QueryRowContext(
		ctx,
		query,
		userID,
		wordID,
		correctInc,
		at.UTC(),
		initialLevel,
		step,
	))
	if err != nil {
		log.Error("failed to apply practice outcome",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID.String()),
			slog.Bool("correct", correct))
		return nil, MapError(err)
	}

	log.Debug("applied practice outcome",
		slog.String("word_id", wordID.String()),
		slog.Bool("correct", correct),
		slog.Int("mastery_level", record.MasteryLevel))
	return record, nil
}

// CountMastered implements store.MasteryStore.CountMastered.
func (s *PostgresMasteryStore) CountMastered(ctx context.Context, userID uuid.UUID, minLevel int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM mastery_records WHERE user_id = $1 AND mastery_level >= $2`,
		userID, minLevel,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// WithTx implements store.MasteryStore.WithTx.
func (s *PostgresMasteryStore) WithTx(tx *sql.Tx) store.MasteryStore {
	return &PostgresMasteryStore{db: tx, logger: s.logger}
}
