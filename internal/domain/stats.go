package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserStats is a snapshot of the statistics achievement criteria are measured against.
type UserStats struct {
	UserID            uuid.UUID `json:"user_id"`
	VocabularyCount   int       `json:"vocabulary_count"`
	WordsMastered     int       `json:"words_mastered"`
	CompletedSessions int       `json:"completed_sessions"`
	PerfectSessions   int       `json:"perfect_sessions"`
	CorrectAnswers    int       `json:"correct_answers"`
	StreakDays        int       `json:"streak_days"`
	TotalXP           int       `json:"total_xp"`
	Level             int       `json:"level"`
}

// CurrentStreak counts consecutive UTC calendar days with practice, ending
// today or yesterday. days may be in any order and contain duplicates.
func CurrentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		seen[truncateDay(d)] = struct{}{}
	}

	day := truncateDay(now)
	if _, ok := seen[day]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := seen[day]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := seen[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
