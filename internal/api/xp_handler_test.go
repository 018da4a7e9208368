package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/api/shared"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/mocks"
	"github.com/phrazzld/lexi-api/internal/service/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newXPHandler() (*XPHandler, *mocks.MockProgressionService) {
	svc := &mocks.MockProgressionService{}
	return NewXPHandler(svc, nil), svc
}

func TestXPHandler_Award(t *testing.T) {
	userID := uuid.New()

	t.Run("level up", func(t *testing.T) {
		h, svc := newXPHandler()
		svc.On("Award", mock.Anything, userID, domain.ActivityDailyGoal, 100, "daily goal").
			Return(&domain.AwardResult{
				Success:   true,
				XPAwarded: 100,
				OldLevel:  1,
				NewLevel:  2,
				LevelUp:   true,
				Bonus:     100,
				TotalXP:   200,
			}, nil)

		body := `{"activity_type":"daily_goal","amount":100,"description":"daily goal"}`
		rec := httptest.NewRecorder()
		h.Award(rec, newAuthedRequest(http.MethodPost, "/api/xp/award", body, userID))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t,
			`{"success":true,"xp_awarded":100,"old_level":1,"new_level":2,"level_up":true,"bonus":100,"total_xp":200}`,
			rec.Body.String())
	})

	t.Run("missing amount", func(t *testing.T) {
		h, svc := newXPHandler()

		rec := httptest.NewRecorder()
		h.Award(rec, newAuthedRequest(http.MethodPost, "/api/xp/award", `{"activity_type":"daily_goal"}`, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid amount: required field", decodeBody[shared.ErrorResponse](t, rec).Error)
		assert.Empty(t, svc.Calls)
	})

	t.Run("system activity type rejected", func(t *testing.T) {
		h, svc := newXPHandler()
		svc.On("Award", mock.Anything, userID, domain.ActivityLevelUpBonus, 50, "").
			Return(nil, domain.NewValidationError("activity_type", "cannot be awarded manually", progression.ErrSystemActivityType))

		rec := httptest.NewRecorder()
		h.Award(rec, newAuthedRequest(http.MethodPost, "/api/xp/award", `{"activity_type":"level_up_bonus","amount":50}`, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid activity_type: cannot be awarded manually", decodeBody[shared.ErrorResponse](t, rec).Error)
	})

	t.Run("integrity failure", func(t *testing.T) {
		h, svc := newXPHandler()
		svc.On("Award", mock.Anything, userID, domain.ActivityDailyGoal, 10, "").
			Return(nil, progression.NewAwardError("ledger check failed", domain.ErrDataIntegrity))

		rec := httptest.NewRecorder()
		h.Award(rec, newAuthedRequest(http.MethodPost, "/api/xp/award", `{"activity_type":"daily_goal","amount":10}`, userID))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to award XP", decodeBody[shared.ErrorResponse](t, rec).Error)
	})
}

func TestXPHandler_GetInfo(t *testing.T) {
	userID := uuid.New()
	h, svc := newXPHandler()
	svc.On("Info", mock.Anything, userID).Return(&domain.XPInfo{
		UserXP:           domain.UserXP{UserID: userID, CurrentXP: 20, TotalXP: 120, CurrentLevel: 1},
		LevelProgress:    domain.LevelProgress{CurrentLevel: 1, CurrentXP: 20, XPForNextLevel: 100, XPToNextLevel: 80, ProgressPercentage: 20},
		RecentActivities: []domain.XPActivity{},
	}, nil)

	rec := httptest.NewRecorder()
	h.GetInfo(rec, newAuthedRequest(http.MethodGet, "/api/xp", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Contains(t, resp, "user_xp")
	assert.Contains(t, resp, "recent_activities")
	progress := resp["level_progress"].(map[string]any)
	assert.Equal(t, float64(80), progress["xp_to_next_level"])
}

func TestXPHandler_GetLeaderboard(t *testing.T) {
	userID := uuid.New()

	t.Run("ranked entries", func(t *testing.T) {
		h, svc := newXPHandler()
		entries := []domain.LeaderboardEntry{
			{UserID: uuid.New(), TotalXP: 900, Level: 4, Rank: 1},
			{UserID: userID, TotalXP: 900, Level: 4, Rank: 1},
			{UserID: uuid.New(), TotalXP: 10, Level: 1, Rank: 3},
		}
		svc.On("Top", mock.Anything, 3).Return(entries, nil)

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newAuthedRequest(http.MethodGet, "/api/xp/leaderboard?limit=3", "", userID))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[LeaderboardResponse](t, rec)
		assert.Equal(t, entries, resp.Entries)
	})

	t.Run("empty board", func(t *testing.T) {
		h, svc := newXPHandler()
		svc.On("Top", mock.Anything, 0).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newAuthedRequest(http.MethodGet, "/api/xp/leaderboard", "", userID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"entries":[]}`, rec.Body.String())
	})

	t.Run("limit out of range", func(t *testing.T) {
		h, svc := newXPHandler()
		svc.On("Top", mock.Anything, 1000).
			Return(nil, domain.NewValidationError("limit", "must be between 0 and 100", progression.ErrInvalidLimit))

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newAuthedRequest(http.MethodGet, "/api/xp/leaderboard?limit=1000", "", userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		h, svc := newXPHandler()
		svc.On("Top", mock.Anything, 0).Return(nil, progression.NewTopError("query failed", errors.New("timeout")))

		rec := httptest.NewRecorder()
		h.GetLeaderboard(rec, newAuthedRequest(http.MethodGet, "/api/xp/leaderboard", "", userID))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to load leaderboard", decodeBody[shared.ErrorResponse](t, rec).Error)
	})
}
