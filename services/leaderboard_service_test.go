package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranks(entries []LeaderboardEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestRankCompetitionStyle(t *testing.T) {
	entries := []ScoredEntry{
		{UserID: 1, DisplayName: "alice", TotalPoints: 100},
		{UserID: 2, DisplayName: "bob", TotalPoints: 100},
		{UserID: 3, DisplayName: "carol", TotalPoints: 50},
	}
	ranked := Rank(entries)
	require.Len(t, ranked, 3)

	// Two tied at 100 both take rank 1; the next score takes rank 3, not 2.
	assert.Equal(t, []int{1, 1, 3}, ranks(ranked))
	assert.Equal(t, uint(3), ranked[2].UserID)
}

func TestRankDistinctScores(t *testing.T) {
	entries := []ScoredEntry{
		{UserID: 1, DisplayName: "alice", TotalPoints: 30},
		{UserID: 2, DisplayName: "bob", TotalPoints: 90},
		{UserID: 3, DisplayName: "carol", TotalPoints: 60},
	}
	ranked := Rank(entries)
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 2, 3}, ranks(ranked))
	assert.Equal(t, uint(2), ranked[0].UserID)
	assert.Equal(t, uint(3), ranked[1].UserID)
	assert.Equal(t, uint(1), ranked[2].UserID)
}

func TestRankAllTied(t *testing.T) {
	entries := []ScoredEntry{
		{UserID: 3, DisplayName: "carol", TotalPoints: 10},
		{UserID: 1, DisplayName: "alice", TotalPoints: 10},
		{UserID: 2, DisplayName: "bob", TotalPoints: 10},
	}
	ranked := Rank(entries)
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 1, 1}, ranks(ranked))

	// Tie groups present alphabetically by display name.
	assert.Equal(t, "alice", ranked[0].DisplayName)
	assert.Equal(t, "bob", ranked[1].DisplayName)
	assert.Equal(t, "carol", ranked[2].DisplayName)
}

func TestRankTieBreakByUserID(t *testing.T) {
	entries := []ScoredEntry{
		{UserID: 9, DisplayName: "sam", TotalPoints: 40},
		{UserID: 4, DisplayName: "sam", TotalPoints: 40},
	}
	ranked := Rank(entries)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint(4), ranked[0].UserID)
	assert.Equal(t, uint(9), ranked[1].UserID)
	assert.Equal(t, []int{1, 1}, ranks(ranked))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank([]ScoredEntry{}))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []ScoredEntry{
		{UserID: 1, DisplayName: "z", TotalPoints: 1},
		{UserID: 2, DisplayName: "a", TotalPoints: 99},
	}
	Rank(entries)
	assert.Equal(t, uint(1), entries[0].UserID, "input order must be preserved")
}

func TestRankLongerBoard(t *testing.T) {
	entries := []ScoredEntry{
		{UserID: 1, DisplayName: "a", TotalPoints: 80},
		{UserID: 2, DisplayName: "b", TotalPoints: 80},
		{UserID: 3, DisplayName: "c", TotalPoints: 80},
		{UserID: 4, DisplayName: "d", TotalPoints: 70},
		{UserID: 5, DisplayName: "e", TotalPoints: 70},
		{UserID: 6, DisplayName: "f", TotalPoints: 10},
	}
	ranked := Rank(entries)
	assert.Equal(t, []int{1, 1, 1, 4, 4, 6}, ranks(ranked))
}
