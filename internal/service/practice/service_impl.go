package practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/events"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/service/progression"
	"github.com/phrazzld/lexi-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface
type serviceImpl struct {
	txManager     store.TxManager
	vocabStore    store.VocabularyStore
	settingsStore store.SettingsStore
	masteryStore  store.MasteryStore
	sessionStore  store.PracticeSessionStore
	progression   progression.Service
	emitter       events.EventEmitter
	opts          Options
	rnd           *lockedRand
	now           func() time.Time
	logger        *slog.Logger
}

// Deps groups the collaborators of the practice service.
type Deps struct {
	TxManager    store.TxManager
	Vocabulary   store.VocabularyStore
	Settings     store.SettingsStore
	Mastery      store.MasteryStore
	Sessions     store.PracticeSessionStore
	Progression  progression.Service
	Emitter      events.EventEmitter
	RandomSource rand.Source
	Logger       *slog.Logger
}

// NewService creates the practice service. Emitter, RandomSource and Logger
// are optional; the rest are required.
func NewService(deps Deps, opts Options) Service {
	if deps.TxManager == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("txManager cannot be nil")
	}
	if deps.Vocabulary == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("vocabulary store cannot be nil")
	}
	if deps.Settings == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("settings store cannot be nil")
	}
	if deps.Mastery == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("mastery store cannot be nil")
	}
	if deps.Sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session store cannot be nil")
	}
	if deps.Progression == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progression service cannot be nil")
	}

	emitter := deps.Emitter
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		txManager:     deps.TxManager,
		vocabStore:    deps.Vocabulary,
		settingsStore: deps.Settings,
		masteryStore:  deps.Mastery,
		sessionStore:  deps.Sessions,
		progression:   deps.Progression,
		emitter:       emitter,
		opts:          opts.withDefaults(),
		rnd:           newLockedRand(deps.RandomSource),
		now:           func() time.Time { return time.Now().UTC() },
		logger:        log.With(slog.String("component", "practice_service")),
	}
}

// SelectWords implements Service.SelectWords.
func (s *serviceImpl) SelectWords(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	difficulty string,
) ([]domain.PracticeQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}
	if limit < 0 || limit > s.opts.MaxRoundSize {
		return nil, domain.NewValidationError(
			"limit",
			fmt.Sprintf("must be between 0 and %d", s.opts.MaxRoundSize),
			ErrInvalidLimit,
		)
	}
	diff, err := domain.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsStore.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load practice settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewSelectWordsError("failed to load settings", err)
	}
	if limit == 0 {
		limit = min(settings.RoundSizeOr(s.opts.DefaultRoundSize), s.opts.MaxRoundSize)
	}
	threshold := settings.ThresholdOr(s.opts.MasteryThreshold)

	candidates, err := s.vocabStore.ListPracticeCandidates(ctx, userID, threshold, diff, limit)
	if err != nil {
		log.Error("failed to list practice candidates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewSelectWordsError("failed to list practice candidates", err)
	}
	if len(candidates) == 0 {
		return []domain.PracticeQuestion{}, nil
	}

	pool, err := s.vocabStore.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load distractor pool",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewSelectWordsError("failed to load vocabulary", err)
	}

	questions := make([]domain.PracticeQuestion, 0, len(candidates))
	for _, c := range candidates {
		questions = append(questions, buildQuestion(c, pool, s.opts.DistractorCount, s.rnd))
	}

	log.Debug("practice words selected",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(questions)),
		slog.Int("threshold", threshold))

	return questions, nil
}

// StartSession implements Service.StartSession.
func (s *serviceImpl) StartSession(ctx context.Context, userID uuid.UUID) (*domain.PracticeSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := domain.NewPracticeSession(userID)
	if err != nil {
		return nil, domain.NewValidationError("user_id", err.Error(), domain.ErrInvalidID)
	}
	session.StartedAt = s.now()

	if err := s.sessionStore.Create(ctx, session); err != nil {
		log.Error("failed to create practice session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewStartSessionError("failed to create session", err)
	}

	log.Info("practice session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()))
	return session, nil
}

// SubmitResult implements Service.SubmitResult.
func (s *serviceImpl) SubmitResult(
	ctx context.Context,
	userID uuid.UUID,
	input SubmitResultInput,
) (*SubmitResultOutput, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}
	if input.SessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "cannot be empty", domain.ErrInvalidID)
	}
	if input.WordID == uuid.Nil {
		return nil, domain.NewValidationError("word_id", "cannot be empty", domain.ErrInvalidID)
	}
	if input.ResponseTime != nil && *input.ResponseTime < 0 {
		return nil, domain.NewValidationError("response_time", "cannot be negative", ErrInvalidResponseTime)
	}

	var out *SubmitResultOutput
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		sessions := s.sessionStore.WithTx(tx)

		session, err := sessions.GetForShare(ctx, userID, input.SessionID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}
		if session.IsCompleted() {
			return ErrSessionCompleted
		}

		if _, err := s.vocabStore.WithTx(tx).GetOwned(ctx, userID, input.WordID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrWordNotOwned
			}
			return fmt.Errorf("failed to load word: %w", err)
		}

		now := s.now()
		record, err := s.masteryStore.WithTx(tx).ApplyOutcome(ctx, userID, input.WordID, input.WasCorrect, now, s.opts.Delta)
		if err != nil {
			return fmt.Errorf("failed to update mastery: %w", err)
		}

		result, err := domain.NewPracticeResult(session.ID, userID, input.WordID, input.WasCorrect, input.ResponseTime)
		if err != nil {
			return domain.NewValidationError("result", err.Error(), nil)
		}
		result.CreatedAt = now
		if err := sessions.AddResult(ctx, result); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}

		out = &SubmitResultOutput{Result: result, Mastery: record}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionCompleted) ||
			errors.Is(err, ErrWordNotOwned) || domain.IsValidationError(err) {
			log.Debug("practice result rejected",
				slog.String("user_id", userID.String()),
				slog.String("session_id", input.SessionID.String()),
				slog.String("reason", err.Error()))
			return nil, err
		}
		log.Error("failed to submit practice result",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("session_id", input.SessionID.String()))
		return nil, NewSubmitResultError("failed to submit result", err)
	}

	log.Debug("practice result recorded",
		slog.String("user_id", userID.String()),
		slog.String("word_id", input.WordID.String()),
		slog.Bool("correct", input.WasCorrect),
		slog.Int("mastery_level", out.Mastery.MasteryLevel))

	return out, nil
}

// CompleteSession implements Service.CompleteSession.
func (s *serviceImpl) CompleteSession(
	ctx context.Context,
	userID uuid.UUID,
	input CompleteSessionInput,
) (*SessionSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}
	if input.SessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "cannot be empty", domain.ErrInvalidID)
	}
	if input.DurationSeconds < 0 {
		return nil, domain.NewValidationError("duration", "cannot be negative", ErrInvalidDuration)
	}

	var summary *SessionSummary
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		sessions := s.sessionStore.WithTx(tx)

		session, err := sessions.GetForUpdate(ctx, userID, input.SessionID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}
		if session.IsCompleted() {
			return ErrSessionCompleted
		}

		total, correct, err := sessions.CountResults(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("failed to count results: %w", err)
		}

		completedAt := s.now()
		session.TotalQuestions = total
		session.CorrectAnswers = correct
		session.DurationSeconds = input.DurationSeconds
		session.CompletedAt = &completedAt

		if err := sessions.Complete(ctx, session); err != nil {
			if store.IsNotFoundError(err) {
				return ErrSessionCompleted
			}
			return fmt.Errorf("failed to complete session: %w", err)
		}

		xp := s.progression.SessionXP(correct, total)
		award, err := s.progression.AwardTx(
			ctx, tx, userID, domain.ActivityPracticeSession, xp,
			fmt.Sprintf("Practice session: %d/%d correct", correct, total),
		)
		if err != nil {
			return err
		}

		summary = &SessionSummary{
			SessionID:      session.ID,
			TotalQuestions: total,
			CorrectAnswers: correct,
			Accuracy:       domain.Accuracy(correct, total),
			XPEarned:       xp,
			Award:          award,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionCompleted) ||
			domain.IsValidationError(err) {
			return nil, err
		}
		log.Error("failed to complete practice session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("session_id", input.SessionID.String()))
		return nil, NewCompleteSessionError("failed to complete session", err)
	}

	s.progression.InvalidateLeaderboard(ctx)
	s.emit(ctx, events.TypeSessionCompleted, userID, events.SessionCompletedPayload{
		SessionID:      summary.SessionID,
		TotalQuestions: summary.TotalQuestions,
		CorrectAnswers: summary.CorrectAnswers,
		XPAwarded:      summary.XPEarned,
	})

	log.Info("practice session completed",
		slog.String("user_id", userID.String()),
		slog.String("session_id", summary.SessionID.String()),
		slog.Int("total_questions", summary.TotalQuestions),
		slog.Int("correct_answers", summary.CorrectAnswers),
		slog.Int("xp", summary.XPEarned))

	return summary, nil
}

// RegisterVocabulary implements Service.RegisterVocabulary.
func (s *serviceImpl) RegisterVocabulary(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) (*RegistrationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}
	ids, err := normalizeWordIDs(wordIDs)
	if err != nil {
		return nil, err
	}

	result := &RegistrationResult{Registered: len(ids)}
	err = s.txManager.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		owned, err := s.vocabStore.WithTx(tx).FilterOwned(ctx, userID, ids)
		if err != nil {
			return fmt.Errorf("failed to check word ownership: %w", err)
		}
		if len(owned) != len(ids) {
			return ErrWordNotOwned
		}

		created, err := s.masteryStore.WithTx(tx).EnsureRecords(ctx, userID, ids)
		if err != nil {
			return fmt.Errorf("failed to create mastery records: %w", err)
		}

		award, err := s.progression.AwardVocabularyAdded(ctx, tx, userID, created)
		if err != nil {
			return err
		}

		result.Created = created
		result.Award = award
		result.XPAwarded = 0
		if award != nil {
			result.XPAwarded = award.XPAwarded
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWordNotOwned) || domain.IsValidationError(err) {
			return nil, err
		}
		log.Error("failed to register vocabulary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("words", len(ids)))
		return nil, NewRegisterVocabularyError("failed to register vocabulary", err)
	}

	if result.Award != nil {
		s.progression.InvalidateLeaderboard(ctx)
		s.emit(ctx, events.TypeXPAwarded, userID, events.XPAwardedPayload{
			ActivityType: string(domain.ActivityVocabularyAdded),
			Amount:       result.Award.XPAwarded,
			Bonus:        result.Award.Bonus,
			TotalXP:      result.Award.TotalXP,
			LevelUp:      result.Award.LevelUp,
		})
	}

	log.Info("vocabulary registered",
		slog.String("user_id", userID.String()),
		slog.Int("registered", result.Registered),
		slog.Int("created", result.Created),
		slog.Int("xp", result.XPAwarded))

	return result, nil
}

// normalizeWordIDs rejects nil IDs and drops duplicates, keeping the first occurrence.
func normalizeWordIDs(wordIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(wordIDs) == 0 || len(wordIDs) > MaxRegistrationBatch {
		return nil, domain.NewValidationError(
			"word_ids",
			fmt.Sprintf("must contain between 1 and %d ids", MaxRegistrationBatch),
			ErrInvalidWordList,
		)
	}
	seen := make(map[uuid.UUID]struct{}, len(wordIDs))
	ids := make([]uuid.UUID, 0, len(wordIDs))
	for _, id := range wordIDs {
		if id == uuid.Nil {
			return nil, domain.NewValidationError("word_ids", "cannot contain an empty id", domain.ErrInvalidID)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *serviceImpl) emit(ctx context.Context, eventType string, userID uuid.UUID, payload any) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewProgressEvent(eventType, userID, payload)
	if err != nil {
		log.Error("failed to build event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handling failed",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("user_id", userID.String()))
	}
}
