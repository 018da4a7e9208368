package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexi-api/internal/api/shared"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/service/progression"
)

// XPHandler handles XP ledger and leaderboard requests.
type XPHandler struct {
	progressionService progression.Service
	logger             *slog.Logger
}

// NewXPHandler creates a new XPHandler
func NewXPHandler(progressionService progression.Service, logger *slog.Logger) *XPHandler {
	if progressionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressionService cannot be nil for XPHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &XPHandler{
		progressionService: progressionService,
		logger:             logger.With(slog.String("component", "xp_handler")),
	}
}

// Award handles POST /api/xp/award
func (h *XPHandler) Award(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req AwardXPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.progressionService.Award(
		r.Context(),
		userID,
		domain.ActivityType(req.ActivityType),
		req.Amount,
		req.Description,
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to award XP")
		return
	}

	log.Info("xp awarded",
		slog.String("activity_type", req.ActivityType),
		slog.Int("xp_awarded", result.XPAwarded),
		slog.Bool("level_up", result.LevelUp))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetInfo handles GET /api/xp
func (h *XPHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	info, err := h.progressionService.Info(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load XP")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

// GetLeaderboard handles GET /api/xp/leaderboard
func (h *XPHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger)); !ok {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.progressionService.Top(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LeaderboardResponse{Entries: entries})
}
