// Package evalsrvc evaluates source code against a problem's test cases
// through the judge and scores the outcome.
package evalsrvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/problem"
	"golang.org/x/sync/errgroup"
)

type JudgeClient interface {
	Execute(ctx context.Context, lang judge.Lang, sourceCode string, stdin string) (judge.Result, error)
}

// Runner fans test cases out to the judge through a fixed number of
// workers, regardless of how many tests a problem has.
type Runner struct {
	judge   JudgeClient
	workers int
}

func NewRunner(j JudgeClient, workers int) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{judge: j, workers: workers}
}

// Run returns exactly one verdict per test case, in test case order.
// A failing test never stops the others. The only errors are an invalid
// problem (before any judge call) and cancellation of ctx.
func (r *Runner) Run(ctx context.Context, p problem.Problem, lang judge.Lang, sourceCode string) ([]TestVerdict, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With("problem_id", p.ID, "lang", lang.Name)
	log.Debug("running tests", "tests", len(p.Tests), "workers", r.workers)
	start := time.Now()

	verdicts := make([]TestVerdict, len(p.Tests))
	jobs := make(chan int)

	var g errgroup.Group
	for range min(r.workers, len(p.Tests)) {
		g.Go(func() error {
			for i := range jobs {
				res, err := r.judge.Execute(ctx, lang, sourceCode, p.Tests[i].Input)
				verdicts[i] = deriveVerdict(p.Tests[i], res, err)
				if err != nil {
					log.Warn("judge call failed", "test", i+1, "error", err)
				}
			}
			return nil
		})
	}
	for i := range p.Tests {
		jobs <- i
	}
	close(jobs)
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return verdicts, fmt.Errorf("evaluation cancelled: %w", err)
	}

	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("tests finished", "took", time.Since(start), "summary", summarize(verdicts))
	}
	return verdicts, nil
}

// MaxDuration bounds how long Run takes for a problem with the given
// number of tests when every judge call uses its full perCall timeout.
func (r *Runner) MaxDuration(tests int, perCall time.Duration) time.Duration {
	if tests <= 0 {
		return 0
	}
	workers := min(r.workers, tests)
	rounds := (tests + workers - 1) / workers
	return time.Duration(rounds) * perCall
}

func summarize(verdicts []TestVerdict) map[Outcome]int {
	res := make(map[Outcome]int)
	for _, v := range verdicts {
		res[v.Outcome]++
	}
	return res
}
