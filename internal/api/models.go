package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/domain"
)

// PracticeWordsResponse is the body of GET /api/practice/words.
type PracticeWordsResponse struct {
	Questions []domain.PracticeQuestion `json:"questions"`
}

// StartSessionResponse is the body of POST /api/practice/sessions.
type StartSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

// SubmitResultRequest defines the payload for POST /api/practice/submit.
type SubmitResultRequest struct {
	SessionID    string   `json:"session_id"              validate:"required,uuid"`
	WordID       string   `json:"word_id"                 validate:"required,uuid"`
	WasCorrect   *bool    `json:"was_correct"             validate:"required"`
	ResponseTime *float64 `json:"response_time,omitempty" validate:"omitempty,gte=0"`
}

// SubmitResultResponse is the body returned after an answer was recorded.
type SubmitResultResponse struct {
	Success bool                  `json:"success"`
	Mastery *domain.MasteryRecord `json:"mastery"`
}

// CompleteSessionRequest defines the payload for POST /api/practice/complete.
type CompleteSessionRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Duration  int    `json:"duration"   validate:"gte=0"`
}

// CompleteSessionResponse summarizes a completed session.
type CompleteSessionResponse struct {
	SessionID      uuid.UUID           `json:"session_id"`
	TotalQuestions int                 `json:"total_questions"`
	CorrectAnswers int                 `json:"correct_answers"`
	Accuracy       float64             `json:"accuracy"`
	XP             int                 `json:"xp"`
	Award          *domain.AwardResult `json:"award,omitempty"`
}

// RegisterVocabularyRequest defines the payload for POST /api/vocabulary/registered.
type RegisterVocabularyRequest struct {
	WordIDs []string `json:"word_ids" validate:"required,min=1,max=500,dive,uuid"`
}

// RegisterVocabularyResponse reports the records created and XP credited.
type RegisterVocabularyResponse struct {
	RecordsCreated int `json:"records_created"`
	XP             int `json:"xp"`
}

// AwardXPRequest defines the payload for POST /api/xp/award.
type AwardXPRequest struct {
	ActivityType string `json:"activity_type"         validate:"required"`
	Amount       int    `json:"amount"                validate:"required"`
	Description  string `json:"description,omitempty" validate:"max=500"`
}

// LeaderboardResponse is the body of GET /api/xp/leaderboard.
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// CheckAchievementsResponse lists the achievements unlocked by a check.
type CheckAchievementsResponse struct {
	Unlocked []domain.UnlockedAchievement `json:"unlocked"`
}

// AchievementsResponse is the body of GET /api/achievements.
type AchievementsResponse struct {
	Achievements []domain.AchievementProgress `json:"achievements"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
