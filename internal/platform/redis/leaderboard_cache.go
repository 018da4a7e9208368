// Package redis caches computed leaderboard snapshots in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces every key written by the cache.
	DefaultKeyPrefix = "lexi:leaderboard:"

	generationKey = "generation"
)

// ErrNilClient is returned when a cache is built without a client.
var ErrNilClient = errors.New("leaderboard_cache: redis client is nil")

// LeaderboardCache stores ranked leaderboard snapshots keyed by limit.
// Snapshots live under a generation number; Invalidate bumps the generation
// so stale snapshots are never read again and simply expire.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewClient parses a redis:// URL and verifies the server answers a PING.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewLeaderboardCache creates a cache whose snapshots expire after ttl.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) (*LeaderboardCache, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LeaderboardCache{
		client: client,
		ttl:    ttl,
		prefix: DefaultKeyPrefix,
		logger: logger.With(slog.String("component", "leaderboard_cache")),
	}, nil
}

func (c *LeaderboardCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.prefix+generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *LeaderboardCache) snapshotKey(gen int64, limit int) string {
	return fmt.Sprintf("%s%d:%d", c.prefix, gen, limit)
}

// Get returns the cached snapshot for limit and the generation it looked in.
// ok is false on a miss; the generation is still returned so the caller can
// store what it computes under the generation it observed.
func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, int64, bool, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, fmt.Errorf("read leaderboard generation: %w", err)
	}

	raw, err := c.client.Get(ctx, c.snapshotKey(gen, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug("leaderboard cache miss", slog.Int("limit", limit), slog.Int64("generation", gen))
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("read leaderboard snapshot: %w", err)
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, gen, false, fmt.Errorf("decode leaderboard snapshot: %w", err)
	}
	return entries, gen, true, nil
}

// Set stores a snapshot for limit under gen, which must be the generation
// returned by the Get that missed. If an invalidation happened in between,
// the snapshot lands under a generation that is no longer read.
func (c *LeaderboardCache) Set(ctx context.Context, gen int64, limit int, entries []domain.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.snapshotKey(gen, limit), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write leaderboard snapshot: %w", err)
	}
	return nil
}

// Invalidate makes every existing snapshot unreachable.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.prefix+generationKey).Err(); err != nil {
		return fmt.Errorf("bump leaderboard generation: %w", err)
	}
	return nil
}
