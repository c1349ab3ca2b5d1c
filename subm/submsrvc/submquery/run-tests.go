package submquery

import (
	"context"
	"fmt"

	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/problem"
	decorator "github.com/programme-lv/contest/srvccqs"
	"github.com/programme-lv/contest/subm/submsrvc/submcmd"
)

type RunTestsQuery decorator.QueryHandler[RunTestsParams, []evalsrvc.TestVerdict]

type RunTestsParams struct {
	ProblemID   string
	ProgrLangID string
	SourceCode  string
}

// RunTestsHandler evaluates code without storing anything.
type RunTestsHandler struct {
	MaxSrcBytes int
	GetProblem  func(ctx context.Context, id string) (problem.Problem, error)
	RunTests    func(ctx context.Context, p problem.Problem, lang judge.Lang, src string) ([]evalsrvc.TestVerdict, error)
}

func (h RunTestsHandler) Handle(ctx context.Context, q RunTestsParams) ([]evalsrvc.TestVerdict, error) {
	lang, err := submcmd.ValidateSource(q.SourceCode, q.ProgrLangID, h.MaxSrcBytes)
	if err != nil {
		return nil, err
	}
	prob, err := h.GetProblem(ctx, q.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	verdicts, err := h.RunTests(ctx, prob, submcmd.JudgeLang(lang), q.SourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to run tests: %w", err)
	}
	return verdicts, nil
}
