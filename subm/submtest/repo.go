// Package submtest checks that a subm.Repo behaves like a store of
// current submissions. Every store implementation runs the same checks.
package submtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/subm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRepoTests runs the store checks against fresh repos built by
// newRepo. Contest and problem ids are random so a shared backend can be
// reused between checks.
func RunRepoTests(t *testing.T, newRepo func(t *testing.T) subm.Repo) {
	t.Run("UpsertReturnsStoredRow", func(t *testing.T) { testUpsertReturnsStoredRow(t, newRepo(t)) })
	t.Run("UpsertIsIdempotent", func(t *testing.T) { testUpsertIsIdempotent(t, newRepo(t)) })
	t.Run("ResubmissionOverwrites", func(t *testing.T) { testResubmissionOverwrites(t, newRepo(t)) })
	t.Run("ConcurrentUpserts", func(t *testing.T) { testConcurrentUpserts(t, newRepo(t)) })
	t.Run("Listing", func(t *testing.T) { testListing(t, newRepo(t)) })
	t.Run("NulBytesSurvive", func(t *testing.T) { testNulBytesSurvive(t, newRepo(t)) })
}

func NewParams(userUUID uuid.UUID, contestID, problemID string, score int) subm.UpsertParams {
	msg := "judge transport error: judge responded with status 502"
	return subm.UpsertParams{
		UserUUID:   userUUID,
		ProblemID:  problemID,
		ContestID:  contestID,
		Language:   "python3.11",
		SourceCode: fmt.Sprintf("print(%d)", score),
		Verdicts: []evalsrvc.TestVerdict{
			{Input: "1", ExpectedOutput: "2", ActualOutput: "2", Outcome: evalsrvc.OutcomeAccepted},
			{Input: "2", ExpectedOutput: "4", Outcome: evalsrvc.OutcomeTransportError, ErrorDetail: &msg, Hidden: true},
		},
		Score:       score,
		SubmittedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func randomID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func testUpsertReturnsStoredRow(t *testing.T, repo subm.Repo) {
	ctx := context.Background()
	p := NewParams(uuid.New(), randomID("contest"), randomID("problem"), 10)

	got, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.UserUUID, got.UserUUID)
	assert.Equal(t, p.ProblemID, got.ProblemID)
	assert.Equal(t, p.ContestID, got.ContestID)
	assert.Equal(t, p.SourceCode, got.SourceCode)
	assert.Equal(t, p.Verdicts, got.Verdicts)
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, 0, got.Penalty)
	assert.Equal(t, subm.NotAvailable, got.Runtime)
	assert.Equal(t, subm.NotAvailable, got.Memory)
	assert.WithinDuration(t, p.SubmittedAt, got.SubmittedAt, time.Millisecond)
}

func testUpsertIsIdempotent(t *testing.T, repo subm.Repo) {
	ctx := context.Background()
	p := NewParams(uuid.New(), randomID("contest"), randomID("problem"), 7)

	first, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Verdicts, second.Verdicts)

	all, err := repo.ListByUser(ctx, p.UserUUID, p.ContestID)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func testResubmissionOverwrites(t *testing.T, repo subm.Repo) {
	ctx := context.Background()
	user := uuid.New()
	contestID, problemID := randomID("contest"), randomID("problem")

	p := NewParams(user, contestID, problemID, 20)
	_, err := repo.Upsert(ctx, p)
	require.NoError(t, err)

	p2 := NewParams(user, contestID, problemID, 0)
	p2.Verdicts = p2.Verdicts[:1]
	p2.Language = "cpp17"
	p2.SubmittedAt = p.SubmittedAt.Add(time.Minute)
	_, err = repo.Upsert(ctx, p2)
	require.NoError(t, err)

	all, err := repo.ListByContest(ctx, contestID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	got := all[0]
	// a lower score still replaces the earlier one
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, "cpp17", got.Language)
	assert.Len(t, got.Verdicts, 1)
	assert.WithinDuration(t, p2.SubmittedAt, got.SubmittedAt, time.Millisecond)
}

func testConcurrentUpserts(t *testing.T, repo subm.Repo) {
	ctx := context.Background()
	user := uuid.New()
	contestID, problemID := randomID("contest"), randomID("problem")

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := NewParams(user, contestID, problemID, i)
			p.SourceCode = fmt.Sprintf("print(%d)", i)
			_, errs[i] = repo.Upsert(ctx, p)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.ListByUser(ctx, user, contestID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	// fields of one writer only, never a mix
	assert.Equal(t, fmt.Sprintf("print(%d)", all[0].Score), all[0].SourceCode)
}

func testListing(t *testing.T, repo subm.Repo) {
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	c1, c2 := randomID("contest"), randomID("contest")
	base := time.Now().UTC().Truncate(time.Millisecond)

	upsert := func(user uuid.UUID, contestID, problemID string, score int, at time.Time) {
		p := NewParams(user, contestID, problemID, score)
		p.SubmittedAt = at
		_, err := repo.Upsert(ctx, p)
		require.NoError(t, err)
	}
	upsert(alice, c1, "a", 10, base)
	upsert(alice, c1, "b", 5, base.Add(2*time.Second))
	upsert(bob, c1, "a", 20, base.Add(time.Second))
	upsert(alice, c2, "a", 1, base)

	byContest, err := repo.ListByContest(ctx, c1)
	require.NoError(t, err)
	require.Len(t, byContest, 3)
	assert.Equal(t, []int{10, 20, 5}, scoresOf(byContest))

	byUser, err := repo.ListByUser(ctx, alice, c1)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 5}, scoresOf(byUser))

	none, err := repo.ListByUser(ctx, bob, c2)
	require.NoError(t, err)
	assert.Empty(t, none)

	contests, err := repo.ListContestsOfUser(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{c1, c2}, contests)

	contests, err = repo.ListContestsOfUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, contests)
}

// Programs may print anything, including NUL, and sources are taken as is.
func testNulBytesSurvive(t *testing.T, repo subm.Repo) {
	ctx := context.Background()
	p := NewParams(uuid.New(), randomID("contest"), randomID("problem"), 0)
	p.SourceCode = "int main(){putchar(0);}\x00// trailing"
	p.Verdicts[0].ActualOutput = "a\x00b"
	p.Verdicts[0].Outcome = evalsrvc.OutcomeWrongAnswer

	got, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.SourceCode, got.SourceCode)
	assert.Equal(t, p.Verdicts, got.Verdicts)

	listed, err := repo.ListByContest(ctx, p.ContestID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, p.SourceCode, listed[0].SourceCode)
	assert.Equal(t, "a\x00b", listed[0].Verdicts[0].ActualOutput)
}

func scoresOf(subms []subm.Subm) []int {
	res := make([]int, len(subms))
	for i, s := range subms {
		res[i] = s.Score
	}
	return res
}
