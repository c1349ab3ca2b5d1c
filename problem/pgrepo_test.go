package problem_test

import (
	"context"
	"testing"

	"github.com/programme-lv/contest/dbtest"
	"github.com/programme-lv/contest/problem"
	"github.com/programme-lv/contest/srvcerror"
	"github.com/stretchr/testify/require"
)

func TestPgProblemRepoRoundTrip(t *testing.T) {
	t.Parallel()
	db := dbtest.NewDB(t)
	ctx := context.Background()
	_, err := db.Exec(ctx, `INSERT INTO contests (id, title) VALUES ('spring', 'Spring Cup')`)
	require.NoError(t, err)

	repo := problem.NewPgProblemRepo(db)
	p := validProblem()
	require.NoError(t, repo.StoreProblem(ctx, p))

	got, err := repo.GetProblem(ctx, "aplusb")
	require.NoError(t, err)
	require.Equal(t, p, got)

	// storing again replaces the test list
	p.Tests = p.Tests[:1]
	p.TotalMarks = 10
	require.NoError(t, repo.StoreProblem(ctx, p))
	got, err = repo.GetProblem(ctx, "aplusb")
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestPgProblemRepoNotFound(t *testing.T) {
	t.Parallel()
	repo := problem.NewPgProblemRepo(dbtest.NewDB(t))

	_, err := repo.GetProblem(context.Background(), "missing")
	var se *srvcerror.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, problem.ErrCodeProblemNotFound, se.ErrorCode())
}

func TestPgProblemRepoRejectsInvalid(t *testing.T) {
	t.Parallel()
	repo := problem.NewPgProblemRepo(dbtest.NewDB(t))

	p := validProblem()
	p.Tests = nil
	require.Error(t, repo.StoreProblem(context.Background(), p))
}

func TestPgProblemRepoMaxTestCount(t *testing.T) {
	t.Parallel()
	db := dbtest.NewDB(t)
	ctx := context.Background()
	repo := problem.NewPgProblemRepo(db)

	n, err := repo.MaxTestCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = db.Exec(ctx, `INSERT INTO contests (id, title) VALUES ('spring', 'Spring Cup')`)
	require.NoError(t, err)
	p := validProblem()
	require.NoError(t, repo.StoreProblem(ctx, p))
	small := validProblem()
	small.ID = "small"
	small.Tests = small.Tests[:1]
	require.NoError(t, repo.StoreProblem(ctx, small))

	n, err = repo.MaxTestCount(ctx)
	require.NoError(t, err)
	require.Equal(t, len(p.Tests), n)
}
