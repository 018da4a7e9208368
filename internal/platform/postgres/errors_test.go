package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lexi-api/internal/platform/postgres"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "user_xp",
		ColumnName:     "total_xp",
		ConstraintName: "user_xp_total_xp_check",
	}
}

type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", newPgError("23505"), store.ErrDuplicate},
		{"foreign key violation", newPgError("23503"), store.ErrInvalidEntity},
		{"check violation", newPgError("23514"), store.ErrInvalidEntity},
		{"not null violation", newPgError("23502"), store.ErrInvalidEntity},
		{"serialization failure", newPgError("40001"), store.ErrConcurrency},
		{"deadlock", newPgError("40P01"), store.ErrConcurrency},
		{"lock timeout", newPgError("55P03"), store.ErrConcurrency},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := postgres.MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.target)
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unknown passes through", func(t *testing.T) {
		t.Parallel()
		err := errors.New("connection refused")
		assert.Equal(t, err, postgres.MapError(err))
	})

	t.Run("wrapped pg error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("exec: %w", newPgError("40001"))
		assert.ErrorIs(t, postgres.MapError(err), store.ErrConcurrency)
	})
}

func TestIsConcurrencyFailure(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsConcurrencyFailure(newPgError("40001")))
	assert.True(t, postgres.IsConcurrencyFailure(newPgError("40P01")))
	assert.True(t, postgres.IsConcurrencyFailure(fmt.Errorf("%w: retry", store.ErrConcurrency)))
	assert.False(t, postgres.IsConcurrencyFailure(newPgError("23505")))
	assert.False(t, postgres.IsConcurrencyFailure(errors.New("boom")))
	assert.False(t, postgres.IsConcurrencyFailure(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("insert: %w", newPgError("23505"))))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.False(t, postgres.IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   sql.Result
		notFound error
		wantErr  error
		wantNil  bool
	}{
		{name: "one row", result: mockResult{rowsAffected: 1}, wantNil: true},
		{name: "no rows default", result: mockResult{}, wantErr: store.ErrNotFound},
		{name: "no rows specific", result: mockResult{}, notFound: store.ErrSessionNotFound, wantErr: store.ErrSessionNotFound},
		{name: "rows affected error", result: mockResult{err: errors.New("driver")}},
		{name: "nil result"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := postgres.CheckRowsAffected(tc.result, tc.notFound)
			switch {
			case tc.wantNil:
				assert.NoError(t, err)
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}
