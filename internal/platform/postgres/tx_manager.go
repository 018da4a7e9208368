package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/sethvargo/go-retry"
)

// TxManager runs transactions against PostgreSQL and transparently retries
// those that fail with a serialization failure, deadlock or lock timeout.
type TxManager struct {
	db         *sql.DB
	logger     *slog.Logger
	maxRetries uint64
	baseDelay  time.Duration
}

// Ensure TxManager implements store.TxManager interface
var _ store.TxManager = (*TxManager)(nil)

// NewTxManager creates a TxManager. maxRetries is the number of additional
// attempts after the first; baseDelay seeds the exponential backoff.
func NewTxManager(db *sql.DB, logger *slog.Logger, maxRetries int, baseDelay time.Duration) *TxManager {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil for TxManager")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 25 * time.Millisecond
	}
	return &TxManager{
		db:         db,
		logger:     logger.With(slog.String("component", "tx_manager")),
		maxRetries: uint64(maxRetries),
		baseDelay:  baseDelay,
	}
}

// RunInTx implements store.TxManager.
func (m *TxManager) RunInTx(ctx context.Context, fn store.TxFn) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	backoff := retry.WithMaxRetries(m.maxRetries, retry.WithJitterPercent(20, retry.NewExponential(m.baseDelay)))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := store.RunInTransaction(ctx, m.db, nil, MapError, fn)
		if err != nil && IsConcurrencyFailure(err) {
			log.Warn("transaction conflict, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return err
	})
}

// DB returns the underlying connection pool.
func (m *TxManager) DB() *sql.DB {
	return m.db
}
