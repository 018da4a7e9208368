package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth" validate:"required"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Practice    PracticeConfig    `mapstructure:"practice" validate:"required"`
	Mastery     MasteryConfig     `mapstructure:"mastery" validate:"required"`
	Progression ProgressionConfig `mapstructure:"progression" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// Transactions failing with serialization or deadlock errors are retried
	// up to TxMaxRetries times with exponential backoff starting at TxRetryBase.
	TxMaxRetries int           `mapstructure:"tx_max_retries" validate:"gte=0,lte=10"`
	TxRetryBase  time.Duration `mapstructure:"tx_retry_base" validate:"gt=0"`
}

// AuthConfig contains the settings needed to verify access tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// RedisConfig configures the optional leaderboard cache. An empty URL disables it.
type RedisConfig struct {
	URL            string        `mapstructure:"url" validate:"omitempty,url"`
	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl" validate:"gte=0"`
}

// PracticeConfig holds the practice round defaults. Users may override
// the threshold and round size through their settings.
type PracticeConfig struct {
	DefaultRoundSize int `mapstructure:"default_round_size" validate:"gte=1,ltefield=MaxRoundSize"`
	MaxRoundSize     int `mapstructure:"max_round_size" validate:"gte=1,lte=200"`
	MasteryThreshold int `mapstructure:"mastery_threshold" validate:"gte=1,lte=100"`
	DistractorCount  int `mapstructure:"distractor_count" validate:"gte=1,lte=10"`
}

// MasteryConfig holds the score deltas applied per practice outcome.
type MasteryConfig struct {
	CorrectDelta     int `mapstructure:"correct_delta" validate:"gte=1,lte=100"`
	IncorrectPenalty int `mapstructure:"incorrect_penalty" validate:"gte=1,lte=100"`
}

// ProgressionConfig holds the XP ledger policy.
type ProgressionConfig struct {
	BaseXP               int  `mapstructure:"base_xp" validate:"gt=0"`
	LevelIncrement       int  `mapstructure:"level_increment" validate:"gte=0"`
	LevelUpBonusPerLevel int  `mapstructure:"level_up_bonus_per_level" validate:"gte=1"`
	MaxAwardAmount       int  `mapstructure:"max_award_amount" validate:"gt=0"`
	VerifyLedger         bool `mapstructure:"verify_ledger"`
}
