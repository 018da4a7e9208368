package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var achievementRowColumns = []string{
	"id", "key", "name", "description", "category", "criterion_type",
	"criterion_target", "xp_reward", "is_active", "created_at",
}

func TestPostgresAchievementStore_ListActive(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAchievementStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery("WHERE is_active").
		WillReturnRows(sqlmock.NewRows(achievementRowColumns).
			AddRow(uuid.NewString(), "first_practice", "Warm Up", "", "practice", "practice_sessions", 1, 10, true, now).
			AddRow(uuid.NewString(), "level_5", "Level 5", "", "progression", "level_reached", 5, 100, true, now))

	achievements, err := s.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, achievements, 2)
	assert.Equal(t, domain.CriterionPracticeSessions, achievements[0].CriterionType)
	assert.Equal(t, 5, achievements[1].Target)
}

func TestPostgresAchievementStore_GetByKey_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAchievementStore(db, nil)

	mock.ExpectQuery("FROM achievements").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(achievementRowColumns))

	_, err := s.GetByKey(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrAchievementNotFound)
}

func TestPostgresAchievementStore_ListUnlocked(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAchievementStore(db, nil)
	userID, achievementID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("FROM user_achievements").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "achievement_id", "unlocked_at"}).
			AddRow(uuid.NewString(), userID.String(), achievementID.String(), now))

	unlocked, err := s.ListUnlocked(context.Background(), userID)
	require.NoError(t, err)
	require.Contains(t, unlocked, achievementID)
	assert.True(t, now.Equal(unlocked[achievementID].UnlockedAt))
}

func TestPostgresAchievementStore_Unlock(t *testing.T) {
	ua, err := domain.NewUserAchievement(uuid.New(), uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "first unlock inserts", affected: 1, want: true},
		{name: "repeat unlock is ignored", affected: 0, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresAchievementStore(db, nil)

			mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, achievement_id) DO NOTHING")).
				WithArgs(ua.ID, ua.UserID, ua.AchievementID, ua.UnlockedAt).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			inserted, err := s.Unlock(context.Background(), ua)
			require.NoError(t, err)
			assert.Equal(t, tc.want, inserted)
		})
	}
}
