package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexi-api/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
// The transaction is committed if the function returns nil, or rolled back if it returns an error.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxManager runs functions inside a database transaction. Services depend on
// this interface so they can compose several stores (via WithTx) atomically.
type TxManager interface {
	// RunInTx executes fn in a transaction. Implementations may re-run fn when
	// the transaction fails with ErrConcurrency, so fn must not have side
	// effects outside the transaction.
	RunInTx(ctx context.Context, fn TxFn) error
}

// RunInTransaction executes fn within a single database transaction.
// It rolls back on error or panic (re-panicking afterwards) and commits otherwise.
// mapErr translates driver errors from BEGIN and COMMIT into store errors; it may be nil.
func RunInTransaction(ctx context.Context, db *sql.DB, opts *sql.TxOptions, mapErr func(error) error, fn TxFn) (err error) {
	log := logger.FromContext(ctx)
	if mapErr == nil {
		mapErr = func(e error) error { return e }
	}

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", mapErr(err))
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic", slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		log.Debug("rolled back transaction due to error", slog.String("error", err.Error()))
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, mapErr(err))
	}

	return nil
}
