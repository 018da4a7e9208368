package domain

import (
	"sort"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	UserID  uuid.UUID `json:"user_id"`
	TotalXP int       `json:"total_xp"`
	Level   int       `json:"level"`
	Rank    int       `json:"rank"`
}

// RankEntries orders entries by TotalXP descending and assigns contiguous
// 1-based ranks by position. Equal totals keep their input order and still
// receive distinct ranks. The input slice is not modified.
func RankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	ranked := make([]LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalXP > ranked[j].TotalXP
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
