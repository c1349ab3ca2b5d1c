// Package submsrvc wires the submission commands and queries to their
// collaborators.
package submsrvc

import (
	"context"

	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/problem"
	decorator "github.com/programme-lv/contest/srvccqs"
	"github.com/programme-lv/contest/subm"
	"github.com/programme-lv/contest/subm/submsrvc/submcmd"
	"github.com/programme-lv/contest/subm/submsrvc/submquery"
)

type SubmSrvc struct {
	SubmitSol submcmd.SubmitSolCmd

	RunTests  submquery.RunTestsQuery
	ListSubms submquery.ListSubmsQuery
}

type ProblemGetter interface {
	GetProblem(ctx context.Context, id string) (problem.Problem, error)
}

type TestRunner interface {
	Run(ctx context.Context, p problem.Problem, lang judge.Lang, sourceCode string) ([]evalsrvc.TestVerdict, error)
}

func NewSubmSrvc(
	problems ProblemGetter,
	runner TestRunner,
	repo subm.Repo,
	maxSrcBytes int,
) *SubmSrvc {
	submitSol := submcmd.SubmitSolCmdHandler{
		MaxSrcBytes: maxSrcBytes,
		GetProblem:  problems.GetProblem,
		RunTests:    runner.Run,
		UpsertSubm:  repo.Upsert,
	}
	runTests := submquery.RunTestsHandler{
		MaxSrcBytes: maxSrcBytes,
		GetProblem:  problems.GetProblem,
		RunTests:    runner.Run,
	}

	return &SubmSrvc{
		SubmitSol: decorator.WithLoggingCmd[submcmd.SubmitSolParams, subm.Subm]("SubmitSol", submitSol),
		RunTests:  decorator.WithLoggingQuery[submquery.RunTestsParams, []evalsrvc.TestVerdict]("RunTests", runTests),
		ListSubms: submquery.NewListSubmsQuery(repo.ListByUser),
	}
}
