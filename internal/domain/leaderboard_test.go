package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRankEntries(t *testing.T) {
	totals := []int{500, 300, 800, 100, 600}
	entries := make([]LeaderboardEntry, len(totals))
	for i, xp := range totals {
		entries[i] = LeaderboardEntry{UserID: uuid.New(), TotalXP: xp}
	}

	ranked := RankEntries(entries)

	gotTotals := make([]int, len(ranked))
	for i, e := range ranked {
		gotTotals[i] = e.TotalXP
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, []int{800, 600, 500, 300, 100}, gotTotals)

	// input untouched
	assert.Equal(t, 500, entries[0].TotalXP)
	assert.Zero(t, entries[0].Rank)
}

func TestRankEntriesTiesKeepInputOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	entries := []LeaderboardEntry{
		{UserID: a, TotalXP: 200},
		{UserID: b, TotalXP: 300},
		{UserID: c, TotalXP: 200},
	}

	ranked := RankEntries(entries)

	assert.Equal(t, b, ranked[0].UserID)
	assert.Equal(t, a, ranked[1].UserID)
	assert.Equal(t, c, ranked[2].UserID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankEntriesEmpty(t *testing.T) {
	assert.Empty(t, RankEntries(nil))
}
