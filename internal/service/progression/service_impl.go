package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	levels "github.com/phrazzld/lexi-api/internal/domain/progression"
	"github.com/phrazzld/lexi-api/internal/events"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// Options tunes the award policy.
type Options struct {
	// MaxAwardAmount caps a single manual award. Zero means 1000.
	MaxAwardAmount int
	// VerifyLedger checks total_xp against the activity sum after every award.
	VerifyLedger bool
}

type serviceImpl struct {
	txManager store.TxManager
	xpStore   store.XPStore
	calc      levels.Calculator
	cache     LeaderboardCache
	emitter   events.EventEmitter
	opts      Options
	now       func() time.Time
	logger    *slog.Logger
}

// NewService creates the progression service. cache and emitter may be nil.
func NewService(
	txManager store.TxManager,
	xpStore store.XPStore,
	calc levels.Calculator,
	cache LeaderboardCache,
	emitter events.EventEmitter,
	opts Options,
	logger *slog.Logger,
) Service {
	if txManager == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("txManager cannot be nil")
	}
	if xpStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("xpStore cannot be nil")
	}
	if calc == nil {
		calc = levels.NewDefaultCalculator()
	}
	if cache == nil {
		cache = noopCache{}
	}
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	if opts.MaxAwardAmount <= 0 {
		opts.MaxAwardAmount = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		txManager: txManager,
		xpStore:   xpStore,
		calc:      calc,
		cache:     cache,
		emitter:   emitter,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.With(slog.String("component", "progression_service")),
	}
}

func (s *serviceImpl) validateAward(userID uuid.UUID, activityType domain.ActivityType, amount int) error {
	if userID == uuid.Nil {
		return domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}
	if !activityType.IsValid() {
		return domain.NewValidationError("activity_type", "is not a known activity", domain.ErrInvalidActivityType)
	}
	if amount <= 0 {
		return domain.NewValidationError("amount", "must be greater than 0", ErrInvalidAmount)
	}
	return nil
}

// Award implements Service.Award.
func (s *serviceImpl) Award(
	ctx context.Context,
	userID uuid.UUID,
	activityType domain.ActivityType,
	amount int,
	description string,
) (*domain.AwardResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if activityType.IsSystemGenerated() {
		log.Warn("manual award with system activity type",
			slog.String("user_id", userID.String()),
			slog.String("activity_type", string(activityType)))
		return nil, domain.NewValidationError("activity_type", "cannot be awarded manually", ErrSystemActivityType)
	}
	if err := s.validateAward(userID, activityType, amount); err != nil {
		return nil, err
	}
	if amount > s.opts.MaxAwardAmount {
		return nil, domain.NewValidationError(
			"amount",
			fmt.Sprintf("must be between 1 and %d", s.opts.MaxAwardAmount),
			ErrInvalidAmount,
		)
	}

	var result *domain.AwardResult
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		r, err := s.AwardTx(ctx, tx, userID, activityType, amount, description)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		if domain.IsValidationError(err) {
			return nil, err
		}
		if errors.Is(err, domain.ErrDataIntegrity) {
			return nil, NewAwardError("ledger integrity check failed", err)
		}
		log.Error("failed to award xp",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("activity_type", string(activityType)))
		return nil, NewAwardError("failed to award xp", err)
	}

	s.InvalidateLeaderboard(ctx)
	s.emitAwarded(ctx, userID, activityType, result)

	return result, nil
}

// AwardTx implements Service.AwardTx.
func (s *serviceImpl) AwardTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	activityType domain.ActivityType,
	amount int,
	description string,
) (*domain.AwardResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateAward(userID, activityType, amount); err != nil {
		return nil, err
	}

	xpStore := s.xpStore.WithTx(tx)

	ledger, err := xpStore.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock xp ledger: %w", err)
	}

	oldLevel := ledger.CurrentLevel
	if err := s.appendActivity(ctx, xpStore, userID, activityType, amount, description); err != nil {
		return nil, err
	}

	total := ledger.TotalXP + amount
	level := s.calc.LevelFor(total)

	// A bonus-induced level change is reported but pays no further bonus.
	bonus := s.calc.LevelUpBonus(oldLevel, level)
	if bonus > 0 {
		desc := fmt.Sprintf("Reached level %d", level)
		if err := s.appendActivity(ctx, xpStore, userID, domain.ActivityLevelUpBonus, bonus, desc); err != nil {
			return nil, err
		}
		total += bonus
		level = s.calc.LevelFor(total)
	}

	progress := s.calc.Progress(total)
	ledger.TotalXP = total
	ledger.CurrentLevel = level
	ledger.CurrentXP = progress.CurrentXP
	ledger.UpdatedAt = s.now()

	if err := xpStore.Update(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to update xp ledger: %w", err)
	}

	if s.opts.VerifyLedger {
		sum, err := xpStore.SumActivities(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify xp ledger: %w", err)
		}
		if sum != total {
			log.Error("xp ledger diverged from activity log",
				slog.String("user_id", userID.String()),
				slog.Int("total_xp", total),
				slog.Int("activity_sum", sum))
			return nil, fmt.Errorf("%w: total_xp %d does not match activity sum %d",
				domain.ErrDataIntegrity, total, sum)
		}
	}

	result := &domain.AwardResult{
		Success:   true,
		XPAwarded: amount,
		OldLevel:  oldLevel,
		NewLevel:  level,
		LevelUp:   level > oldLevel,
		Bonus:     bonus,
		TotalXP:   total,
	}

	log.Info("xp awarded",
		slog.String("user_id", userID.String()),
		slog.String("activity_type", string(activityType)),
		slog.Int("amount", amount),
		slog.Int("bonus", bonus),
		slog.Int("total_xp", total),
		slog.Int("level", level))

	return result, nil
}

func (s *serviceImpl) appendActivity(
	ctx context.Context,
	xpStore store.XPStore,
	userID uuid.UUID,
	activityType domain.ActivityType,
	amount int,
	description string,
) error {
	activity, err := domain.NewXPActivity(userID, activityType, amount, description)
	if err != nil {
		return domain.NewValidationError("activity", err.Error(), nil)
	}
	activity.CreatedAt = s.now()
	if err := xpStore.AppendActivity(ctx, activity); err != nil {
		return fmt.Errorf("failed to append xp activity: %w", err)
	}
	return nil
}

// AwardVocabularyAdded implements Service.AwardVocabularyAdded.
func (s *serviceImpl) AwardVocabularyAdded(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	count int,
) (*domain.AwardResult, error) {
	amount := s.calc.VocabularyXP(count)
	if amount <= 0 {
		return nil, nil
	}
	desc := fmt.Sprintf("Added %d word", count)
	if count != 1 {
		desc += "s"
	}
	return s.AwardTx(ctx, tx, userID, domain.ActivityVocabularyAdded, amount, desc)
}

// SessionXP implements Service.SessionXP.
func (s *serviceImpl) SessionXP(correct, total int) int {
	return s.calc.SessionXP(correct, total)
}

// Info implements Service.Info.
func (s *serviceImpl) Info(ctx context.Context, userID uuid.UUID) (*domain.XPInfo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ledger, err := s.xpStore.Get(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to load xp ledger",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, NewInfoError("failed to load xp ledger", err)
		}
		ledger = domain.NewUserXP(userID)
	}

	activities, err := s.xpStore.RecentActivities(ctx, userID, RecentActivityLimit)
	if err != nil {
		log.Error("failed to load recent xp activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewInfoError("failed to load recent activity", err)
	}
	if activities == nil {
		activities = []domain.XPActivity{}
	}

	return &domain.XPInfo{
		UserXP:           *ledger,
		LevelProgress:    s.calc.Progress(ledger.TotalXP),
		RecentActivities: activities,
	}, nil
}

// Top implements Service.Top.
func (s *serviceImpl) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 0 || limit > MaxLeaderboardLimit {
		return nil, domain.NewValidationError(
			"limit",
			fmt.Sprintf("must be between 1 and %d", MaxLeaderboardLimit),
			ErrInvalidLimit,
		)
	}
	if limit == 0 {
		limit = DefaultLeaderboardLimit
	}

	cached, gen, ok, cacheErr := s.cache.Get(ctx, limit)
	if cacheErr != nil {
		log.Warn("leaderboard cache read failed", slog.String("error", cacheErr.Error()))
	} else if ok {
		return cached, nil
	}

	rows, err := s.xpStore.Top(ctx, limit)
	if err != nil {
		log.Error("failed to load leaderboard", slog.String("error", err.Error()))
		return nil, NewTopError("failed to load leaderboard", err)
	}
	ranked := domain.RankEntries(rows)

	// Without a known generation the snapshot could land under a newer one.
	if cacheErr == nil {
		if err := s.cache.Set(ctx, gen, limit, ranked); err != nil {
			log.Warn("leaderboard cache write failed", slog.String("error", err.Error()))
		}
	}
	return ranked, nil
}

// InvalidateLeaderboard implements Service.InvalidateLeaderboard.
func (s *serviceImpl) InvalidateLeaderboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Warn("leaderboard cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (s *serviceImpl) emitAwarded(
	ctx context.Context,
	userID uuid.UUID,
	activityType domain.ActivityType,
	result *domain.AwardResult,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewProgressEvent(events.TypeXPAwarded, userID, events.XPAwardedPayload{
		ActivityType: string(activityType),
		Amount:       result.XPAwarded,
		Bonus:        result.Bonus,
		TotalXP:      result.TotalXP,
		LevelUp:      result.LevelUp,
	})
	if err != nil {
		log.Error("failed to build xp awarded event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("xp awarded event handling failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, int) ([]domain.LeaderboardEntry, int64, bool, error) {
	return nil, 0, false, nil
}

func (noopCache) Set(context.Context, int64, int, []domain.LeaderboardEntry) error { return nil }

func (noopCache) Invalidate(context.Context) error { return nil }
