package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. LEXI_SERVER_PORT.
const EnvPrefix = "LEXI"

// ConfigFileEnv names the environment variable pointing at an explicit config file.
const ConfigFileEnv = "LEXI_CONFIG_FILE"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadAuth loads and validates only the auth section, for commands that
// issue tokens without touching the database.
func LoadAuth() (*AuthConfig, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	// Unmarshal the whole tree: nested keys only pick up environment
	// overrides when resolved one by one.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg.Auth); err != nil {
		return nil, fmt.Errorf("auth config validation failed: %w", err)
	}

	return &cfg.Auth, nil
}

// newViper reads the optional config file and binds LEXI_* environment
// variables over the defaults.
func newViper() (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.tx_max_retries", 3)
	v.SetDefault("database.tx_retry_base", 25*time.Millisecond)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.leaderboard_ttl", 5*time.Minute)

	v.SetDefault("practice.default_round_size", 10)
	v.SetDefault("practice.max_round_size", 50)
	v.SetDefault("practice.mastery_threshold", 80)
	v.SetDefault("practice.distractor_count", 3)

	v.SetDefault("mastery.correct_delta", 10)
	v.SetDefault("mastery.incorrect_penalty", 5)

	v.SetDefault("progression.base_xp", 100)
	v.SetDefault("progression.level_increment", 50)
	v.SetDefault("progression.level_up_bonus_per_level", 50)
	v.SetDefault("progression.max_award_amount", 1000)
	v.SetDefault("progression.verify_ledger", true)
}
