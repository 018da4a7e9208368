package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lexi-api/internal/api/shared"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/service/achievement"
)

// AchievementHandler handles achievement requests.
type AchievementHandler struct {
	achievementService achievement.Service
	logger             *slog.Logger
}

// NewAchievementHandler creates a new AchievementHandler
func NewAchievementHandler(achievementService achievement.Service, logger *slog.Logger) *AchievementHandler {
	if achievementService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("achievementService cannot be nil for AchievementHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementHandler{
		achievementService: achievementService,
		logger:             logger.With(slog.String("component", "achievement_handler")),
	}
}

// Check handles POST /api/achievements/check
func (h *AchievementHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	unlocked, err := h.achievementService.CheckAndUnlock(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check achievements")
		return
	}
	if unlocked == nil {
		unlocked = []domain.UnlockedAchievement{}
	}
	for _, u := range unlocked {
		log.Info("achievement unlocked", slog.String("key", u.Achievement.Key))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CheckAchievementsResponse{Unlocked: unlocked})
}

// List handles GET /api/achievements
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	progress, err := h.achievementService.ListProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list achievements")
		return
	}
	if progress == nil {
		progress = []domain.AchievementProgress{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AchievementsResponse{Achievements: progress})
}

// Progress handles GET /api/achievements/{key}/progress
func (h *AchievementHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	key := chi.URLParam(r, "key")
	if key == "" {
		HandleAPIError(w, r, domain.NewValidationError("key", "is required", nil), "")
		return
	}

	progress, err := h.achievementService.Progress(r.Context(), userID, key)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load achievement progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
