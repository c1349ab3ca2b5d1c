package standings_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/standings"
	"github.com/programme-lv/contest/subm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func submAt(user uuid.UUID, problemID string, score int, at time.Time) subm.Subm {
	return subm.Subm{UserUUID: user, ProblemID: problemID, ContestID: "c", Score: score, SubmittedAt: at}
}

func TestRankSumsScoresPerUser(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ranked := standings.Rank([]subm.Subm{
		submAt(a, "p1", 10, t0),
		submAt(b, "p1", 20, t0),
		submAt(a, "p2", 15, t0.Add(time.Minute)),
	})
	require.Len(t, ranked, 2)
	assert.Equal(t, a, ranked[0].UserUUID)
	assert.Equal(t, 25, ranked[0].TotalScore)
	assert.Equal(t, t0.Add(time.Minute), ranked[0].Latest)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, b, ranked[1].UserUUID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankEarlierFinisherWinsTies(t *testing.T) {
	early, late := uuid.New(), uuid.New()
	ranked := standings.Rank([]subm.Subm{
		submAt(late, "p", 50, t0.Add(time.Second)),
		submAt(early, "p", 50, t0),
	})
	assert.Equal(t, early, ranked[0].UserUUID)
	assert.Equal(t, []int{1, 2}, ranksOf(ranked))
}

func TestRankFullTiesShareRank(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ranked := standings.Rank([]subm.Subm{
		submAt(a, "p", 30, t0),
		submAt(b, "p", 20, t0),
		submAt(c, "p", 20, t0),
		submAt(d, "p", 10, t0),
	})
	assert.Equal(t, []int{1, 2, 2, 4}, ranksOf(ranked))
	assert.Equal(t, d, ranked[3].UserUUID)
}

func TestRankIsDeterministic(t *testing.T) {
	var subms []subm.Subm
	for i := 0; i < 30; i++ {
		user := uuid.New()
		// many exact ties on both score and time
		subms = append(subms, submAt(user, "p", (i%3)*10, t0.Add(time.Duration(i%2)*time.Second)))
	}
	want := standings.Rank(subms)

	for range 20 {
		shuffled := append([]subm.Subm(nil), subms...)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, standings.Rank(shuffled))
	}
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, standings.Rank(nil))
}

func TestTrophy(t *testing.T) {
	assert.Equal(t, "🥇", standings.Trophy(1))
	assert.Equal(t, "🥈", standings.Trophy(2))
	assert.Equal(t, "🥉", standings.Trophy(3))
	assert.Equal(t, "", standings.Trophy(4))
	assert.Equal(t, "", standings.Trophy(0))
}

func ranksOf(st []standings.Standing) []int {
	res := make([]int, len(st))
	for i, s := range st {
		res[i] = s.Rank
	}
	return res
}
