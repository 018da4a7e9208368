package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var masteryRowColumns = []string{
	"user_id", "word_id", "times_practiced", "times_correct",
	"last_practiced", "mastery_level", "created_at", "updated_at",
}

func TestNewPostgresMasteryStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresMasteryStore(nil, nil) })
}

func TestPostgresMasteryStore_ApplyOutcome(t *testing.T) {
	userID, wordID := uuid.New(), uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		correct      bool
		wantInc      int
		wantInitial  int
		wantStep     int
		returnedLvl  int
		returnedCorr int
	}{
		{name: "correct", correct: true, wantInc: 1, wantInitial: 10, wantStep: 10, returnedLvl: 60, returnedCorr: 4},
		{name: "incorrect", correct: false, wantInc: 0, wantInitial: 0, wantStep: -5, returnedLvl: 45, returnedCorr: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresMasteryStore(db, nil)

			rows := sqlmock.NewRows(masteryRowColumns).
				AddRow(userID.String(), wordID.String(), 6, tc.returnedCorr, at, tc.returnedLvl, at, at)
			mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id, word_id) DO UPDATE SET")).
				WithArgs(userID, wordID, tc.wantInc, at, tc.wantInitial, tc.wantStep).
				WillReturnRows(rows)

			record, err := s.ApplyOutcome(context.Background(), userID, wordID, tc.correct, at, domain.DefaultMasteryDelta())
			require.NoError(t, err)
			assert.Equal(t, tc.returnedLvl, record.MasteryLevel)
			assert.Equal(t, tc.returnedCorr, record.TimesCorrect)
			require.NotNil(t, record.LastPracticed)
			assert.True(t, at.Equal(*record.LastPracticed))
		})
	}
}

func TestPostgresMasteryStore_ApplyOutcome_UsesClampingSQL(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMasteryStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("mastery_level = LEAST(100, GREATEST(0, mastery_records.mastery_level + $6))")).
		WillReturnRows(sqlmock.NewRows(masteryRowColumns).
			AddRow(uuid.NewString(), uuid.NewString(), 1, 1, time.Now(), 100, time.Now(), time.Now()))

	_, err := s.ApplyOutcome(context.Background(), uuid.New(), uuid.New(), true, time.Now(), domain.DefaultMasteryDelta())
	assert.NoError(t, err)
}

func TestPostgresMasteryStore_ApplyOutcome_MapsSerializationFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMasteryStore(db, nil)

	mock.ExpectQuery("INSERT INTO mastery_records").
		WillReturnError(&pgconn.PgError{Code: "40001"})

	_, err := s.ApplyOutcome(context.Background(), uuid.New(), uuid.New(), false, time.Now(), domain.DefaultMasteryDelta())
	assert.ErrorIs(t, err, store.ErrConcurrency)
}

func TestPostgresMasteryStore_EnsureRecords(t *testing.T) {
	userID := uuid.New()
	w1, w2 := uuid.New(), uuid.New()

	t.Run("inserts owned words and reports created count", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresMasteryStore(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("WHERE v.user_id = $1 AND v.id IN ($2, $3)")).
			WithArgs(userID, w1, w2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := s.EnsureRecords(context.Background(), userID, []uuid.UUID{w1, w2, w1, uuid.Nil})
		require.NoError(t, err)
		assert.Equal(t, 1, created)
	})

	t.Run("empty input does not hit the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresMasteryStore(db, nil)

		created, err := s.EnsureRecords(context.Background(), userID, nil)
		require.NoError(t, err)
		assert.Zero(t, created)
	})
}

func TestPostgresMasteryStore_CountMastered(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresMasteryStore(db, nil)
	userID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID, 100).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.CountMastered(context.Background(), userID, 100)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
