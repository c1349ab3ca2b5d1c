package contest_test

import (
	"context"
	"testing"

	"github.com/programme-lv/contest/contest"
	"github.com/programme-lv/contest/dbtest"
	"github.com/stretchr/testify/require"
)

func TestGetTitles(t *testing.T) {
	t.Parallel()
	repo := contest.NewPgContestRepo(dbtest.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.StoreContest(ctx, contest.Contest{ID: "c1", Title: "Spring Cup"}))
	require.NoError(t, repo.StoreContest(ctx, contest.Contest{ID: "c2", Title: "Autumn"}))
	require.NoError(t, repo.StoreContest(ctx, contest.Contest{ID: "c2", Title: "Autumn Cup"}))

	titles, err := repo.GetTitles(ctx, []string{"c1", "c2", "missing"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"c1": "Spring Cup", "c2": "Autumn Cup"}, titles)

	titles, err = repo.GetTitles(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, titles)
}
