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

// PostgresVocabularyStore implements store.VocabularyStore against the
// vocabulary_items table. It only ever reads.
type PostgresVocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabularyStore creates a new PostgreSQL implementation of the VocabularyStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresVocabularyStore(db store.DBTX, logger *slog.Logger) *PostgresVocabularyStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

// Ensure PostgresVocabularyStore implements store.VocabularyStore interface
var _ store.VocabularyStore = (*PostgresVocabularyStore)(nil)

const vocabularyColumns = `v.id, v.user_id, v.word, v.translation, v.category, v.difficulty, v.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVocabularyItem(row rowScanner, extra ...any) (*domain.VocabularyItem, error) {
	var item domain.VocabularyItem
	var difficulty string
	dest := []any{
		&item.ID,
		&item.UserID,
		&item.Word,
		&item.Translation,
		&item.Category,
		&difficulty,
		&item.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	item.Difficulty = domain.Difficulty(difficulty)
	return &item, nil
}

// GetOwned implements store.VocabularyStore.GetOwned.
func (s *PostgresVocabularyStore) GetOwned(ctx context.Context, userID, wordID uuid.UUID) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + vocabularyColumns + `
		FROM vocabulary_items v
		WHERE v.id = $1 AND v.user_id = $2`

	item, err := scanVocabularyItem(s.db.QueryRowContext(ctx, query, wordID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocabulary item not found",
				slog.String("word_id", wordID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrVocabularyItemNotFound
		}
		log.Error("failed to get vocabulary item",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return nil, MapError(err)
	}
	return item, nil
}

// FilterOwned implements store.VocabularyStore.FilterOwned.
func (s *PostgresVocabularyStore) FilterOwned(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids := dedupe(wordIDs)
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	in, idArgs := uuidPlaceholders(2, ids)
	query := `SELECT id FROM vocabulary_items WHERE user_id = $1 AND id IN (` + in + `)`
	args := append([]any{userID}, idArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to filter owned vocabulary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	owned := make([]uuid.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary id: %w", err)
		}
		owned = append(owned, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return owned, nil
}

// ListPracticeCandidates implements store.VocabularyStore.ListPracticeCandidates.
// Items without a mastery record count as level 0 and never practiced.
func (s *PostgresVocabularyStore) ListPracticeCandidates(
	ctx context.Context,
	userID uuid.UUID,
	threshold int,
	difficulty *domain.Difficulty,
	limit int,
) ([]domain.PracticeCandidate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	args := []any{userID, threshold}
	query := `SELECT ` + vocabularyColumns + `, COALESCE(m.mastery_level, 0), m.last_practiced
		FROM vocabulary_items v
		LEFT JOIN mastery_records m ON m.word_id = v.id AND m.user_id = v.user_id
		WHERE v.user_id = $1 AND COALESCE(m.mastery_level, 0) < $2`
	if difficulty != nil {
		args = append(args, string(*difficulty))
		query += fmt.Sprintf(" AND v.difficulty = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(`
		ORDER BY m.last_practiced ASC NULLS FIRST, COALESCE(m.mastery_level, 0) ASC, v.created_at ASC, v.id ASC
		LIMIT $%d`, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list practice candidates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	candidates := make([]domain.PracticeCandidate, 0, limit)
	for rows.Next() {
		var level int
		var lastPracticed sql.NullTime
		item, err := scanVocabularyItem(rows, &level, &lastPracticed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan practice candidate: %w", err)
		}
		c := domain.PracticeCandidate{Item: *item, MasteryLevel: level}
		if lastPracticed.Valid {
			t := lastPracticed.Time
			c.LastPracticed = &t
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed practice candidates",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(candidates)))
	return candidates, nil
}

// ListByUser implements store.VocabularyStore.ListByUser.
func (s *PostgresVocabularyStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + vocabularyColumns + `
		FROM vocabulary_items v
		WHERE v.user_id = $1
		ORDER BY v.created_at ASC, v.id ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list vocabulary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.VocabularyItem
	for rows.Next() {
		item, err := scanVocabularyItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return items, nil
}

// WithTx implements store.VocabularyStore.WithTx.
func (s *PostgresVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &PostgresVocabularyStore{db: tx, logger: s.logger}
}

// PostgresSettingsStore implements store.SettingsStore.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the SettingsStore interface.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get.
func (s *PostgresSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT mastery_threshold, practice_round_size FROM user_settings WHERE user_id = $1`

	var threshold, roundSize sql.NullInt32
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&threshold, &roundSize)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to get user settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	settings := &domain.UserSettings{UserID: userID}
	if threshold.Valid {
		v := int(threshold.Int32)
		settings.MasteryThreshold = &v
	}
	if roundSize.Valid {
		v := int(roundSize.Int32)
		settings.PracticeRoundSize = &v
	}
	return settings, nil
}
