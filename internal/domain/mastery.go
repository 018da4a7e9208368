package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Bounds of the mastery score.
const (
	MinMasteryLevel = 0
	MaxMasteryLevel = 100
)

// Validation errors for MasteryRecord
var (
	ErrEmptyMasteryUserID     = errors.New("mastery record user ID cannot be empty")
	ErrEmptyMasteryWordID     = errors.New("mastery record word ID cannot be empty")
	ErrMasteryLevelOutOfRange = errors.New("mastery level must be between 0 and 100")
	ErrInvalidPracticeCounts  = errors.New("times correct must be between 0 and times practiced")
)

// MasteryRecord tracks how well a user knows one word.
type MasteryRecord struct {
	UserID         uuid.UUID  `json:"user_id"`
	WordID         uuid.UUID  `json:"word_id"`
	TimesPracticed int        `json:"times_practiced"`
	TimesCorrect   int        `json:"times_correct"`
	LastPracticed  *time.Time `json:"last_practiced,omitempty"`
	MasteryLevel   int        `json:"mastery_level"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewMasteryRecord creates a record at mastery 0 for a freshly added word.
func NewMasteryRecord(userID, wordID uuid.UUID) (*MasteryRecord, error) {
	now := time.Now().UTC()
	r := &MasteryRecord{
		UserID:    userID,
		WordID:    wordID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the record invariants.
func (r *MasteryRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyMasteryUserID
	}
	if r.WordID == uuid.Nil {
		return ErrEmptyMasteryWordID
	}
	if r.MasteryLevel < MinMasteryLevel || r.MasteryLevel > MaxMasteryLevel {
		return ErrMasteryLevelOutOfRange
	}
	if r.TimesPracticed < 0 || r.TimesCorrect < 0 || r.TimesCorrect > r.TimesPracticed {
		return ErrInvalidPracticeCounts
	}
	return nil
}

// MasteryDelta holds the score adjustments applied per practice outcome.
type MasteryDelta struct {
	CorrectGain      int
	IncorrectPenalty int
}

// DefaultMasteryDelta returns +10 for a correct answer and -5 for an incorrect one.
func DefaultMasteryDelta() MasteryDelta {
	return MasteryDelta{CorrectGain: 10, IncorrectPenalty: 5}
}

// NextMasteryLevel returns the level after one outcome, clamped to [0, 100].
func (d MasteryDelta) NextMasteryLevel(level int, correct bool) int {
	if correct {
		return min(level+d.CorrectGain, MaxMasteryLevel)
	}
	return max(level-d.IncorrectPenalty, MinMasteryLevel)
}

// ApplyOutcome mutates the record in memory exactly as the store's atomic
// update does in SQL.
func (r *MasteryRecord) ApplyOutcome(correct bool, at time.Time, d MasteryDelta) {
	r.TimesPracticed++
	if correct {
		r.TimesCorrect++
	}
	r.MasteryLevel = d.NextMasteryLevel(r.MasteryLevel, correct)
	t := at.UTC()
	r.LastPracticed = &t
	r.UpdatedAt = t
}

// Accuracy returns the share of correct answers in percent.
func (r *MasteryRecord) Accuracy() float64 {
	if r.TimesPracticed == 0 {
		return 0
	}
	return float64(r.TimesCorrect) * 100 / float64(r.TimesPracticed)
}
