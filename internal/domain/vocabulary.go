package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty is the difficulty label attached to a vocabulary item by the catalog.
type Difficulty string

// Known difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulties.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts a query value into a Difficulty.
// An empty string means "no filter" and yields a nil pointer.
func ParseDifficulty(s string) (*Difficulty, error) {
	if s == "" {
		return nil, nil
	}
	d := Difficulty(s)
	if !d.IsValid() {
		return nil, NewValidationError("difficulty", "must be one of easy, medium, hard", ErrInvalidDifficulty)
	}
	return &d, nil
}

// VocabularyItem is a word owned by a user. The catalog is maintained by another
// component; this engine only reads it.
type VocabularyItem struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Word        string     `json:"word"`
	Translation string     `json:"translation"`
	Category    string     `json:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserSettings holds the optional per-user overrides read by the practice selector.
// Nil fields fall back to configuration defaults.
type UserSettings struct {
	UserID            uuid.UUID
	MasteryThreshold  *int
	PracticeRoundSize *int
}

// ThresholdOr returns the user's mastery threshold or def when unset.
func (s *UserSettings) ThresholdOr(def int) int {
	if s == nil || s.MasteryThreshold == nil || *s.MasteryThreshold <= 0 {
		return def
	}
	return *s.MasteryThreshold
}

// RoundSizeOr returns the user's preferred round size or def when unset.
func (s *UserSettings) RoundSizeOr(def int) int {
	if s == nil || s.PracticeRoundSize == nil || *s.PracticeRoundSize <= 0 {
		return def
	}
	return *s.PracticeRoundSize
}
