package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/api/shared"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/phrazzld/lexi-api/internal/service/practice"
)

// PracticeHandler handles practice and vocabulary registration requests.
type PracticeHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(practiceService practice.Service, logger *slog.Logger) *PracticeHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for PracticeHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// GetWords handles GET /api/practice/words
func (h *PracticeHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	difficulty := r.URL.Query().Get("difficulty")

	questions, err := h.practiceService.SelectWords(r.Context(), userID, limit, difficulty)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to select practice words")
		return
	}

	log.Debug("selected practice words",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(questions)))
	shared.RespondWithJSON(w, r, http.StatusOK, PracticeWordsResponse{Questions: questions})
}

// StartSession handles POST /api/practice/sessions
func (h *PracticeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	session, err := h.practiceService.StartSession(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start practice session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, StartSessionResponse{
		SessionID: session.ID,
		StartedAt: session.StartedAt,
	})
}

// SubmitResult handles POST /api/practice/submit
func (h *PracticeHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req SubmitResultRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	sessionID, err := parseUUIDField("session_id", req.SessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	wordID, err := parseUUIDField("word_id", req.WordID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out, err := h.practiceService.SubmitResult(r.Context(), userID, practice.SubmitResultInput{
		SessionID:    sessionID,
		WordID:       wordID,
		WasCorrect:   *req.WasCorrect,
		ResponseTime: req.ResponseTime,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record practice result")
		return
	}

	log.Debug("recorded practice result",
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("mastery_level", out.Mastery.MasteryLevel))
	shared.RespondWithJSON(w, r, http.StatusOK, SubmitResultResponse{Success: true, Mastery: out.Mastery})
}

// CompleteSession handles POST /api/practice/complete
func (h *PracticeHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	sessionID, err := parseUUIDField("session_id", req.SessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summary, err := h.practiceService.CompleteSession(r.Context(), userID, practice.CompleteSessionInput{
		SessionID:       sessionID,
		DurationSeconds: req.Duration,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete practice session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompleteSessionResponse{
		SessionID:      summary.SessionID,
		TotalQuestions: summary.TotalQuestions,
		CorrectAnswers: summary.CorrectAnswers,
		Accuracy:       summary.Accuracy,
		XP:             summary.XPEarned,
		Award:          summary.Award,
	})
}

// RegisterVocabulary handles POST /api/vocabulary/registered
func (h *PracticeHandler) RegisterVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req RegisterVocabularyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	wordIDs := make([]uuid.UUID, 0, len(req.WordIDs))
	for _, raw := range req.WordIDs {
		id, err := parseUUIDField("word_ids", raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		wordIDs = append(wordIDs, id)
	}

	result, err := h.practiceService.RegisterVocabulary(r.Context(), userID, wordIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register vocabulary")
		return
	}

	log.Debug("registered vocabulary",
		slog.Int("registered", result.Registered),
		slog.Int("created", result.Created))
	shared.RespondWithJSON(w, r, http.StatusOK, RegisterVocabularyResponse{
		RecordsCreated: result.Created,
		XP:             result.XPAwarded,
	})
}
