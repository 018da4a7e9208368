package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/lexi-api/internal/config"
	"github.com/phrazzld/lexi-api/internal/domain"
	levels "github.com/phrazzld/lexi-api/internal/domain/progression"
	"github.com/phrazzld/lexi-api/internal/events"
	"github.com/phrazzld/lexi-api/internal/platform/postgres"
	"github.com/phrazzld/lexi-api/internal/platform/redis"
	"github.com/phrazzld/lexi-api/internal/redact"
	"github.com/phrazzld/lexi-api/internal/service/achievement"
	"github.com/phrazzld/lexi-api/internal/service/auth"
	"github.com/phrazzld/lexi-api/internal/service/practice"
	"github.com/phrazzld/lexi-api/internal/service/progression"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	jwtService         auth.JWTService
	progressionService progression.Service
	practiceService    practice.Service
	achievementService achievement.Service

	eventEmitter *events.InMemoryEventEmitter
}

// newApplication wires stores, services and the event emitter on top of an
// established database connection. The Redis leaderboard cache is used when
// a Redis URL is configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	txManager := postgres.NewTxManager(db, logger, cfg.Database.TxMaxRetries, cfg.Database.TxRetryBase)
	vocabularyStore := postgres.NewPostgresVocabularyStore(db, logger)
	settingsStore := postgres.NewPostgresSettingsStore(db, logger)
	masteryStore := postgres.NewPostgresMasteryStore(db, logger)
	sessionStore := postgres.NewPostgresPracticeSessionStore(db, logger)
	xpStore := postgres.NewPostgresXPStore(db, logger)
	achievementStore := postgres.NewPostgresAchievementStore(db, logger)
	statsStore := postgres.NewPostgresStatsStore(db, logger)

	var cache progression.LeaderboardCache
	if cfg.Redis.URL != "" {
		app.redis, err = redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		leaderboardCache, err := redis.NewLeaderboardCache(app.redis, cfg.Redis.LeaderboardTTL, logger)
		if err != nil {
			_ = app.redis.Close()
			return nil, fmt.Errorf("failed to create leaderboard cache: %w", err)
		}
		cache = leaderboardCache
		logger.Info("leaderboard cache enabled", slog.String("redis_url", redact.URL(cfg.Redis.URL)))
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	calc := levels.NewCalculatorWithParams(levels.NewParams(levels.ParamsConfig{
		BaseXP:               cfg.Progression.BaseXP,
		LevelIncrement:       cfg.Progression.LevelIncrement,
		LevelUpBonusPerLevel: cfg.Progression.LevelUpBonusPerLevel,
	}))

	app.progressionService = progression.NewService(
		txManager,
		xpStore,
		calc,
		cache,
		app.eventEmitter,
		progression.Options{
			MaxAwardAmount: cfg.Progression.MaxAwardAmount,
			VerifyLedger:   cfg.Progression.VerifyLedger,
		},
		logger,
	)

	app.practiceService = practice.NewService(practice.Deps{
		TxManager:   txManager,
		Vocabulary:  vocabularyStore,
		Settings:    settingsStore,
		Mastery:     masteryStore,
		Sessions:    sessionStore,
		Progression: app.progressionService,
		Emitter:     app.eventEmitter,
		Logger:      logger,
	}, practice.Options{
		DefaultRoundSize: cfg.Practice.DefaultRoundSize,
		MaxRoundSize:     cfg.Practice.MaxRoundSize,
		MasteryThreshold: cfg.Practice.MasteryThreshold,
		DistractorCount:  cfg.Practice.DistractorCount,
		Delta: domain.MasteryDelta{
			CorrectGain:      cfg.Mastery.CorrectDelta,
			IncorrectPenalty: cfg.Mastery.IncorrectPenalty,
		},
	})

	app.achievementService = achievement.NewService(
		txManager,
		achievementStore,
		statsStore,
		app.progressionService,
		logger,
	)

	// Achievements are re-checked whenever a session completes or XP is awarded.
	app.eventEmitter.RegisterHandler(achievement.NewEventHandler(app.achievementService, logger))

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a termination signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database pool and the Redis client.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", redact.Error(err)))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", redact.Error(err)))
		}
	}
	app.logger.Info("application shutdown completed")
}
