package achievement

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/service/progression"
	"github.com/phrazzld/lexi-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	txManager        store.TxManager
	achievementStore store.AchievementStore
	statsStore       store.StatsStore
	progression      progression.Service
	now              func() time.Time
	logger           *slog.Logger
}

// NewService creates the achievement engine.
func NewService(
	txManager store.TxManager,
	achievementStore store.AchievementStore,
	statsStore store.StatsStore,
	progressionService progression.Service,
	logger *slog.Logger,
) Service {
	if txManager == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("txManager cannot be nil")
	}
	if achievementStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("achievementStore cannot be nil")
	}
	if statsStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("statsStore cannot be nil")
	}
	if progressionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressionService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		txManager:        txManager,
		achievementStore: achievementStore,
		statsStore:       statsStore,
		progression:      progressionService,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger.With(slog.String("component", "achievement_service")),
	}
}

// CheckAndUnlock implements Service.CheckAndUnlock.
func (s *serviceImpl) CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]domain.UnlockedAchievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}

	catalog, err := s.achievementStore.ListActive(ctx)
	if err != nil {
		log.Error("failed to load achievement catalog", slog.String("error", err.Error()))
		return nil, NewCheckError("failed to load achievements", err)
	}
	held, err := s.achievementStore.ListUnlocked(ctx, userID)
	if err != nil {
		log.Error("failed to load unlocked achievements",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewCheckError("failed to load unlocked achievements", err)
	}

	settled := make(map[uuid.UUID]bool, len(catalog))
	for id := range held {
		settled[id] = true
	}

	unlocked := []domain.UnlockedAchievement{}
	xpAwarded := false

	// Every round that continues has unlocked at least one entry.
	for round := 0; round < len(catalog); round++ {
		stats, err := s.statsStore.Snapshot(ctx, userID, s.now())
		if err != nil {
			log.Error("failed to compute user statistics",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, NewCheckError("failed to compute statistics", err)
		}

		again := false
		for _, a := range catalog {
			if settled[a.ID] || !a.IsSatisfied(*stats) {
				continue
			}

			u, err := s.unlock(ctx, userID, a)
			if err != nil {
				log.Error("failed to unlock achievement",
					slog.String("error", err.Error()),
					slog.String("user_id", userID.String()),
					slog.String("achievement", a.Key))
				if xpAwarded {
					s.progression.InvalidateLeaderboard(ctx)
				}
				return nil, NewCheckError(fmt.Sprintf("failed to unlock %s", a.Key), err)
			}
			settled[a.ID] = true
			if u == nil {
				continue
			}

			unlocked = append(unlocked, *u)
			log.Info("achievement unlocked",
				slog.String("user_id", userID.String()),
				slog.String("achievement", a.Key),
				slog.Int("xp_reward", a.XPReward))
			if u.Award != nil {
				xpAwarded = true
				again = true
			}
		}
		if !again {
			break
		}
	}

	if xpAwarded {
		s.progression.InvalidateLeaderboard(ctx)
	}
	return unlocked, nil
}

// unlock inserts the unlock and credits its reward in one transaction.
// It returns nil when another caller already holds the unlock.
func (s *serviceImpl) unlock(
	ctx context.Context,
	userID uuid.UUID,
	a domain.Achievement,
) (*domain.UnlockedAchievement, error) {
	var result *domain.UnlockedAchievement
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		result = nil

		ua, err := domain.NewUserAchievement(userID, a.ID)
		if err != nil {
			return domain.NewValidationError("achievement", err.Error(), nil)
		}
		ua.UnlockedAt = s.now()

		inserted, err := s.achievementStore.WithTx(tx).Unlock(ctx, ua)
		if err != nil {
			return fmt.Errorf("failed to insert unlock: %w", err)
		}
		if !inserted {
			return nil
		}

		var award *domain.AwardResult
		if a.XPReward > 0 {
			award, err = s.progression.AwardTx(
				ctx, tx, userID, domain.ActivityAchievementUnlocked, a.XPReward,
				fmt.Sprintf("Achievement unlocked: %s", a.Name),
			)
			if err != nil {
				return err
			}
		}

		result = &domain.UnlockedAchievement{
			Achievement: a,
			UnlockedAt:  ua.UnlockedAt,
			Award:       award,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Progress implements Service.Progress.
func (s *serviceImpl) Progress(ctx context.Context, userID uuid.UUID, key string) (*domain.AchievementProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}
	if key == "" {
		return nil, domain.NewValidationError("key", "cannot be empty", nil)
	}

	a, err := s.achievementStore.GetByKey(ctx, key)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrAchievementNotFound
		}
		log.Error("failed to load achievement",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return nil, NewProgressError("failed to load achievement", err)
	}

	stats, held, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	var unlock *domain.UserAchievement
	if ua, ok := held[a.ID]; ok {
		unlock = &ua
	}
	p := domain.BuildProgress(*a, *stats, unlock)
	return &p, nil
}

// ListProgress implements Service.ListProgress.
func (s *serviceImpl) ListProgress(ctx context.Context, userID uuid.UUID) ([]domain.AchievementProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrInvalidID)
	}

	catalog, err := s.achievementStore.ListActive(ctx)
	if err != nil {
		log.Error("failed to load achievement catalog", slog.String("error", err.Error()))
		return nil, NewProgressError("failed to load achievements", err)
	}

	stats, held, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := make([]domain.AchievementProgress, 0, len(catalog))
	for _, a := range catalog {
		var unlock *domain.UserAchievement
		if ua, ok := held[a.ID]; ok {
			unlock = &ua
		}
		progress = append(progress, domain.BuildProgress(a, *stats, unlock))
	}
	return progress, nil
}

func (s *serviceImpl) snapshot(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserStats, map[uuid.UUID]domain.UserAchievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats, err := s.statsStore.Snapshot(ctx, userID, s.now())
	if err != nil {
		log.Error("failed to compute user statistics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, nil, NewProgressError("failed to compute statistics", err)
	}
	held, err := s.achievementStore.ListUnlocked(ctx, userID)
	if err != nil {
		log.Error("failed to load unlocked achievements",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, nil, NewProgressError("failed to load unlocked achievements", err)
	}
	return stats, held, nil
}
