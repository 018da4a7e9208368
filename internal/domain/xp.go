package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivityType identifies what earned an XP entry.
type ActivityType string

// Known activity types
const (
	ActivityVocabularyAdded     ActivityType = "vocabulary_added"
	ActivityPracticeSession     ActivityType = "practice_session"
	ActivityAchievementUnlocked ActivityType = "achievement_unlocked"
	ActivityLevelUpBonus        ActivityType = "level_up_bonus"
	ActivityDailyGoal           ActivityType = "daily_goal"
	ActivityStreakBonus         ActivityType = "streak_bonus"
)

// IsValid reports whether t is a known activity type.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityVocabularyAdded, ActivityPracticeSession, ActivityAchievementUnlocked,
		ActivityLevelUpBonus, ActivityDailyGoal, ActivityStreakBonus:
		return true
	}
	return false
}

// IsSystemGenerated reports whether entries of this type are only ever written
// by the engine itself and must not be awarded by clients.
func (t ActivityType) IsSystemGenerated() bool {
	return t == ActivityLevelUpBonus || t == ActivityAchievementUnlocked
}

// Validation errors for ledger entities
var (
	ErrEmptyXPUserID      = errors.New("xp user ID cannot be empty")
	ErrNonPositiveXP      = errors.New("xp earned must be greater than 0")
	ErrInvalidLedgerState = errors.New("xp ledger values are out of range")
)

// UserXP is a user's position in the progression ledger.
type UserXP struct {
	UserID       uuid.UUID `json:"user_id"`
	CurrentXP    int       `json:"current_xp"`
	TotalXP      int       `json:"total_xp"`
	CurrentLevel int       `json:"current_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserXP returns the zero ledger row every user starts from.
func NewUserXP(userID uuid.UUID) *UserXP {
	now := time.Now().UTC()
	return &UserXP{
		UserID:       userID,
		CurrentLevel: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks the ledger row invariants.
func (x *UserXP) Validate() error {
	if x.UserID == uuid.Nil {
		return ErrEmptyXPUserID
	}
	if x.CurrentXP < 0 || x.TotalXP < 0 || x.CurrentLevel < 1 || x.CurrentXP > x.TotalXP {
		return ErrInvalidLedgerState
	}
	return nil
}

// XPActivity is one append-only ledger entry.
type XPActivity struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	ActivityType ActivityType `json:"activity_type"`
	XPEarned     int          `json:"xp_earned"`
	Description  string       `json:"description,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewXPActivity builds a validated ledger entry.
func NewXPActivity(userID uuid.UUID, activityType ActivityType, xp int, description string) (*XPActivity, error) {
	a := &XPActivity{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: activityType,
		XPEarned:     xp,
		Description:  description,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the entry invariants.
func (a *XPActivity) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyXPUserID
	}
	if !a.ActivityType.IsValid() {
		return ErrInvalidActivityType
	}
	if a.XPEarned <= 0 {
		return ErrNonPositiveXP
	}
	return nil
}

// AwardResult reports the outcome of one award call.
// XPAwarded excludes Bonus; TotalXP includes both.
type AwardResult struct {
	Success   bool `json:"success"`
	XPAwarded int  `json:"xp_awarded"`
	OldLevel  int  `json:"old_level"`
	NewLevel  int  `json:"new_level"`
	LevelUp   bool `json:"level_up"`
	Bonus     int  `json:"bonus"`
	TotalXP   int  `json:"total_xp"`
}

// LevelProgress describes where a total sits within the level schedule.
type LevelProgress struct {
	CurrentLevel       int `json:"current_level"`
	CurrentXP          int `json:"current_xp"`
	XPForNextLevel     int `json:"xp_for_next_level"`
	XPToNextLevel      int `json:"xp_to_next_level"`
	ProgressPercentage int `json:"progress_percentage"`
}

// XPInfo is the ledger summary returned to a user.
type XPInfo struct {
	UserXP           UserXP        `json:"user_xp"`
	LevelProgress    LevelProgress `json:"level_progress"`
	RecentActivities []XPActivity  `json:"recent_activities"`
}
