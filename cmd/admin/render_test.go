package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/standings"
	"github.com/stretchr/testify/assert"
)

func TestRenderLeaderboard(t *testing.T) {
	anon := uuid.New()
	out := renderLeaderboard([]standings.LeaderboardEntry{
		{UserUUID: uuid.New(), Username: "alice", TotalScore: 20, Rank: 1},
		{UserUUID: anon, TotalScore: 10, Rank: 2},
	})
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "🥇")
	assert.Contains(t, out, anon.String())
}

func TestRenderHistory(t *testing.T) {
	out := renderHistory([]standings.ContestRankRecord{
		{ContestID: "spring", Title: "Spring Cup", Rank: 3, TotalScore: 40, Trophy: "🥉"},
	})
	assert.Contains(t, out, "Spring Cup")
	assert.Contains(t, out, "🥉")
}
