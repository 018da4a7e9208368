package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Validation errors for practice entities
var (
	ErrEmptySessionUserID   = errors.New("practice session user ID cannot be empty")
	ErrInvalidSessionCounts = errors.New("correct answers must be between 0 and total questions")
	ErrNegativeDuration     = errors.New("duration cannot be negative")
	ErrNegativeResponseTime = errors.New("response time cannot be negative")
	ErrEmptyResultSessionID = errors.New("practice result session ID cannot be empty")
	ErrEmptyResultWordID    = errors.New("practice result word ID cannot be empty")
)

// PracticeSession groups the answers of one practice round.
// Counters are zero until completion, when they are recomputed from the results.
type PracticeSession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	TotalQuestions  int        `json:"total_questions"`
	CorrectAnswers  int        `json:"correct_answers"`
	DurationSeconds int        `json:"duration_seconds"`
}

// NewPracticeSession starts a session for the user.
func NewPracticeSession(userID uuid.UUID) (*PracticeSession, error) {
	s := &PracticeSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the session invariants.
func (s *PracticeSession) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}
	if s.TotalQuestions < 0 || s.CorrectAnswers < 0 || s.CorrectAnswers > s.TotalQuestions {
		return ErrInvalidSessionCounts
	}
	if s.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// IsCompleted reports whether the session has been closed.
func (s *PracticeSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// IsPerfect reports whether every question of a non-empty session was answered correctly.
func (s *PracticeSession) IsPerfect() bool {
	return s.TotalQuestions > 0 && s.CorrectAnswers == s.TotalQuestions
}

// Accuracy returns the percentage of correct answers rounded to one decimal.
func (s *PracticeSession) Accuracy() float64 {
	return Accuracy(s.CorrectAnswers, s.TotalQuestions)
}

// Accuracy returns 100*correct/total rounded to one decimal, or 0 for an empty total.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*1000/float64(total)) / 10
}

// PracticeResult is one answered question. It is never modified after insert.
type PracticeResult struct {
	ID                  uuid.UUID `json:"id"`
	SessionID           uuid.UUID `json:"session_id"`
	UserID              uuid.UUID `json:"user_id"`
	WordID              uuid.UUID `json:"word_id"`
	WasCorrect          bool      `json:"was_correct"`
	ResponseTimeSeconds *float64  `json:"response_time_seconds,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewPracticeResult builds a validated result.
func NewPracticeResult(
	sessionID, userID, wordID uuid.UUID,
	wasCorrect bool,
	responseTime *float64,
) (*PracticeResult, error) {
	r := &PracticeResult{
		ID:                  uuid.New(),
		SessionID:           sessionID,
		UserID:              userID,
		WordID:              wordID,
		WasCorrect:          wasCorrect,
		ResponseTimeSeconds: responseTime,
		CreatedAt:           time.Now().UTC(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the result invariants.
func (r *PracticeResult) Validate() error {
	if r.SessionID == uuid.Nil {
		return ErrEmptyResultSessionID
	}
	if r.WordID == uuid.Nil {
		return ErrEmptyResultWordID
	}
	if r.ResponseTimeSeconds != nil && *r.ResponseTimeSeconds < 0 {
		return ErrNegativeResponseTime
	}
	return nil
}

// PracticeQuestion is a multiple-choice question for one vocabulary item.
// Options contains the correct translation exactly once, at CorrectIndex.
type PracticeQuestion struct {
	Item         VocabularyItem `json:"item"`
	MasteryLevel int            `json:"mastery_level"`
	Options      []string       `json:"options"`
	CorrectIndex int            `json:"correct_index"`
}

// PracticeCandidate is a vocabulary item joined with its mastery state, as
// returned by the selection query.
type PracticeCandidate struct {
	Item          VocabularyItem
	MasteryLevel  int
	LastPracticed *time.Time
}
