package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTxManager_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewTxManager(nil, nil, 3, time.Millisecond) })
}

func TestTxManager_RetriesSerializationFailure(t *testing.T) {
	db, mock := newMockDB(t)
	m := NewTxManager(db, nil, 3, time.Millisecond)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := m.RunInTx(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		attempts++
		if attempts == 1 {
			return MapError(&pgconn.PgError{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTxManager_GivesUpAfterMaxRetries(t *testing.T) {
	db, mock := newMockDB(t)
	m := NewTxManager(db, nil, 2, time.Millisecond)

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := m.RunInTx(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		attempts++
		return &pgconn.PgError{Code: "40P01"}
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.True(t, IsConcurrencyFailure(err))
}

func TestTxManager_DoesNotRetryOtherErrors(t *testing.T) {
	db, mock := newMockDB(t)
	m := NewTxManager(db, nil, 3, time.Millisecond)

	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := m.RunInTx(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		attempts++
		return store.ErrSessionNotFound
	})

	assert.True(t, errors.Is(err, store.ErrSessionNotFound))
	assert.Equal(t, 1, attempts)
}
