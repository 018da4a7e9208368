package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CriterionType names the user statistic an achievement is measured against.
type CriterionType string

// Known criterion types
const (
	CriterionVocabularyCount  CriterionType = "vocabulary_count"
	CriterionWordsMastered    CriterionType = "words_mastered"
	CriterionPracticeSessions CriterionType = "practice_sessions"
	CriterionPerfectSessions  CriterionType = "perfect_sessions"
	CriterionCorrectAnswers   CriterionType = "correct_answers"
	CriterionStreakDays       CriterionType = "streak_days"
	CriterionTotalXP          CriterionType = "total_xp"
	CriterionLevelReached     CriterionType = "level_reached"
)

// IsValid reports whether c is a known criterion type.
func (c CriterionType) IsValid() bool {
	switch c {
	case CriterionVocabularyCount, CriterionWordsMastered, CriterionPracticeSessions,
		CriterionPerfectSessions, CriterionCorrectAnswers, CriterionStreakDays,
		CriterionTotalXP, CriterionLevelReached:
		return true
	}
	return false
}

// Validation errors for achievements
var (
	ErrEmptyAchievementKey  = errors.New("achievement key cannot be empty")
	ErrNegativeXPReward     = errors.New("achievement xp reward cannot be negative")
	ErrNonPositiveTarget    = errors.New("achievement target must be greater than 0")
	ErrEmptyUnlockUserID    = errors.New("user achievement user ID cannot be empty")
	ErrEmptyUnlockAchieveID = errors.New("user achievement achievement ID cannot be empty")
)

// Achievement is a catalog entry with a typed unlock criterion.
type Achievement struct {
	ID            uuid.UUID     `json:"id"`
	Key           string        `json:"key"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	CriterionType CriterionType `json:"criterion_type"`
	Target        int           `json:"target"`
	XPReward      int           `json:"xp_reward"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Validate checks the catalog entry invariants.
func (a *Achievement) Validate() error {
	if a.Key == "" {
		return ErrEmptyAchievementKey
	}
	if !a.CriterionType.IsValid() {
		return ErrInvalidCriterion
	}
	if a.Target <= 0 {
		return ErrNonPositiveTarget
	}
	if a.XPReward < 0 {
		return ErrNegativeXPReward
	}
	return nil
}

// Current extracts the statistic this achievement measures.
func (a *Achievement) Current(stats UserStats) int {
	switch a.CriterionType {
	case CriterionVocabularyCount:
		return stats.VocabularyCount
	case CriterionWordsMastered:
		return stats.WordsMastered
	case CriterionPracticeSessions:
		return stats.CompletedSessions
	case CriterionPerfectSessions:
		return stats.PerfectSessions
	case CriterionCorrectAnswers:
		return stats.CorrectAnswers
	case CriterionStreakDays:
		return stats.StreakDays
	case CriterionTotalXP:
		return stats.TotalXP
	case CriterionLevelReached:
		return stats.Level
	}
	return 0
}

// IsSatisfied reports whether the statistics meet the target.
// Evaluation has no side effects.
func (a *Achievement) IsSatisfied(stats UserStats) bool {
	return a.CriterionType.IsValid() && a.Current(stats) >= a.Target
}

// ProgressPercentage returns floor(100*current/target) clamped to [0, 100].
// A non-positive target counts as complete.
func ProgressPercentage(current, target int) int {
	if target <= 0 {
		return 100
	}
	if current <= 0 {
		return 0
	}
	if current >= target {
		return 100
	}
	return current * 100 / target
}

// DescribeProgress renders a progress line such as "5 of 10 words added to your vocabulary".
func DescribeProgress(c CriterionType, current, target int) string {
	shown := min(max(current, 0), target)
	switch c {
	case CriterionVocabularyCount:
		return fmt.Sprintf("%d of %d words added to your vocabulary", shown, target)
	case CriterionWordsMastered:
		return fmt.Sprintf("%d of %d words fully mastered", shown, target)
	case CriterionPracticeSessions:
		return fmt.Sprintf("%d of %d practice sessions completed", shown, target)
	case CriterionPerfectSessions:
		return fmt.Sprintf("%d of %d perfect practice sessions", shown, target)
	case CriterionCorrectAnswers:
		return fmt.Sprintf("%d of %d correct answers", shown, target)
	case CriterionStreakDays:
		return fmt.Sprintf("%d of %d days practice streak", shown, target)
	case CriterionTotalXP:
		return fmt.Sprintf("%d of %d XP earned", shown, target)
	case CriterionLevelReached:
		return fmt.Sprintf("level %d of %d reached", shown, target)
	}
	return fmt.Sprintf("%d of %d", shown, target)
}

// UserAchievement records that a user unlocked an achievement. At most one
// exists per (user, achievement).
type UserAchievement struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// NewUserAchievement builds a validated unlock record.
func NewUserAchievement(userID, achievementID uuid.UUID) (*UserAchievement, error) {
	ua := &UserAchievement{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now().UTC(),
	}
	if ua.UserID == uuid.Nil {
		return nil, ErrEmptyUnlockUserID
	}
	if ua.AchievementID == uuid.Nil {
		return nil, ErrEmptyUnlockAchieveID
	}
	return ua, nil
}

// AchievementProgress is the read model returned by progress queries.
type AchievementProgress struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Criterion   CriterionType `json:"criterion_type"`
	Current     int           `json:"current"`
	Target      int           `json:"target"`
	Percentage  int           `json:"percentage"`
	Description string        `json:"description"`
	XPReward    int           `json:"xp_reward"`
	Unlocked    bool          `json:"unlocked"`
	UnlockedAt  *time.Time    `json:"unlocked_at,omitempty"`
}

// BuildProgress evaluates an achievement against a statistics snapshot.
// unlock may be nil for achievements the user has not unlocked yet.
func BuildProgress(a Achievement, stats UserStats, unlock *UserAchievement) AchievementProgress {
	current := a.Current(stats)
	p := AchievementProgress{
		Key:         a.Key,
		Name:        a.Name,
		Category:    a.Category,
		Criterion:   a.CriterionType,
		Current:     current,
		Target:      a.Target,
		Percentage:  ProgressPercentage(current, a.Target),
		Description: DescribeProgress(a.CriterionType, current, a.Target),
		XPReward:    a.XPReward,
	}
	if unlock != nil {
		p.Unlocked = true
		at := unlock.UnlockedAt
		p.UnlockedAt = &at
	}
	return p
}

// UnlockedAchievement is returned for each achievement newly unlocked by a check.
type UnlockedAchievement struct {
	Achievement Achievement  `json:"achievement"`
	UnlockedAt  time.Time    `json:"unlocked_at"`
	Award       *AwardResult `json:"award,omitempty"`
}
