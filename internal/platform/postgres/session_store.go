package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/store"
)

// PostgresPracticeSessionStore implements store.PracticeSessionStore.
type PostgresPracticeSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPracticeSessionStore creates a new PostgreSQL implementation of the PracticeSessionStore interface.
func NewPostgresPracticeSessionStore(db store.DBTX, logger *slog.Logger) *PostgresPracticeSessionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPracticeSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "practice_session_store")),
	}
}

// Ensure PostgresPracticeSessionStore implements store.PracticeSessionStore interface
var _ store.PracticeSessionStore = (*PostgresPracticeSessionStore)(nil)

// Create implements store.PracticeSessionStore.Create.
func (s *PostgresPracticeSessionStore) Create(ctx context.Context, session *domain.PracticeSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("practice session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO practice_sessions (
			id, user_id, started_at, completed_at,
			total_questions, correct_answers, duration_seconds
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.StartedAt,
		session.CompletedAt,
		session.TotalQuestions,
		session.CorrectAnswers,
		session.DurationSeconds,
	)
	if err != nil {
		log.Error("failed to create practice session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return MapError(err)
	}

	log.Info("practice session created",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()))
	return nil
}

func (s *PostgresPracticeSessionStore) getLocked(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	lock string,
) (*domain.PracticeSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, started_at, completed_at,
			total_questions, correct_answers, duration_seconds
		FROM practice_sessions
		WHERE id = $1 AND user_id = $2
		` + lock

	var session domain.PracticeSession
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, sessionID, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.StartedAt,
		&completedAt,
		&session.TotalQuestions,
		&session.CorrectAnswers,
		&session.DurationSeconds,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("practice session not found",
				slog.String("session_id", sessionID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get practice session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, MapError(err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		session.CompletedAt = &t
	}
	return &session, nil
}

// GetForShare implements store.PracticeSessionStore.GetForShare.
func (s *PostgresPracticeSessionStore) GetForShare(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	return s.getLocked(ctx, userID, sessionID, "FOR SHARE")
}

// GetForUpdate implements store.PracticeSessionStore.GetForUpdate.
func (s *PostgresPracticeSessionStore) GetForUpdate(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	return s.getLocked(ctx, userID, sessionID, "FOR UPDATE")
}

// AddResult implements store.PracticeSessionStore.AddResult.
func (s *PostgresPracticeSessionStore) AddResult(ctx context.Context, result *domain.PracticeResult) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := result.Validate(); err != nil {
		log.Warn("practice result validation failed",
			slog.String("error", err.Error()),
			slog.String("session_id", result.SessionID.String()))
		return err
	}

	query := `
		INSERT INTO practice_results (
			id, session_id, user_id, word_id, was_correct, response_time_seconds, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		result.ID,
		result.SessionID,
		result.UserID,
		result.WordID,
		result.WasCorrect,
		result.ResponseTimeSeconds,
		result.CreatedAt,
	)
	if err != nil {
		log.Error("failed to add practice result",
			slog.String("error", err.Error()),
			slog.String("session_id", result.SessionID.String()),
			slog.String("word_id", result.WordID.String()))
		return MapError(err)
	}
	return nil
}

// CountResults implements store.PracticeSessionStore.CountResults.
func (s *PostgresPracticeSessionStore) CountResults(ctx context.Context, sessionID uuid.UUID) (int, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE was_correct)
		FROM practice_results
		WHERE session_id = $1`

	var total, correct int
	if err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&total, &correct); err != nil {
		log.Error("failed to count practice results",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return 0, 0, MapError(err)
	}
	return total, correct, nil
}

// Complete implements store.PracticeSessionStore.Complete.
func (s *PostgresPracticeSessionStore) Complete(ctx context.Context, session *domain.PracticeSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE practice_sessions
		SET completed_at = $1, total_questions = $2, correct_answers = $3, duration_seconds = $4
		WHERE id = $5 AND user_id = $6 AND completed_at IS NULL`

	result, err := s.db.ExecContext(
		ctx,
		query,
		session.CompletedAt,
		session.TotalQuestions,
		session.CorrectAnswers,
		session.DurationSeconds,
		session.ID,
		session.UserID,
	)
	if err != nil {
		log.Error("failed to complete practice session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrSessionNotFound); err != nil {
		return err
	}

	log.Info("practice session completed",
		slog.String("session_id", session.ID.String()),
		slog.Int("total_questions", session.TotalQuestions),
		slog.Int("correct_answers", session.CorrectAnswers))
	return nil
}

// WithTx implements store.PracticeSessionStore.WithTx.
func (s *PostgresPracticeSessionStore) WithTx(tx *sql.Tx) store.PracticeSessionStore {
	return &PostgresPracticeSessionStore{db: tx, logger: s.logger}
}
