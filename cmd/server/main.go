package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/conf"
	"github.com/programme-lv/contest/contest"
	"github.com/programme-lv/contest/evalsrvc"
	cthttp "github.com/programme-lv/contest/http"
	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/problem"
	"github.com/programme-lv/contest/standings"
	"github.com/programme-lv/contest/subm/submsrvc"
	"github.com/programme-lv/contest/subm/submstore"
	"github.com/programme-lv/contest/tracing"
	"github.com/programme-lv/contest/users"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := conf.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracing("contest", cfg.OtelEndpoint)
	if err != nil {
		return err
	}
	if tp != nil {
		defer tp.Shutdown(context.Background())
	}

	pgPool, err := pgxpool.New(ctx, conf.GetPgConnStrFromEnv())
	if err != nil {
		return fmt.Errorf("failed to connect to pg: %w", err)
	}
	defer pgPool.Close()

	submRepo, err := submstore.Open(ctx, cfg, pgPool)
	if err != nil {
		return err
	}

	judgeClient := tracing.NewJudgeTracer(judge.NewClient(cfg.JudgeURL, cfg.JudgeTimeout))
	runner := evalsrvc.NewRunner(judgeClient, cfg.EvalConcurrency)

	problems := problem.NewPgProblemRepo(pgPool)
	submSrvc := submsrvc.NewSubmSrvc(
		problems,
		runner,
		submRepo,
		cfg.MaxSubmSizeBytes,
	)
	standingsSrvc := standings.NewStandingsSrvc(
		submRepo,
		users.NewCachedUsernames(users.NewPgUserRepo(pgPool), 30*time.Second),
		contest.NewPgContestRepo(pgPool),
	)

	httpServer := cthttp.NewHttpServer(submSrvc, standingsSrvc, cthttp.Options{
		JwtKey:       cfg.JwtKey,
		LogLevel:     logger.ParseLevel(cfg.LogLevel),
		JSONLogs:     strings.EqualFold(cfg.LogFormat, "json"),
		MaxBodyBytes: int64(cfg.MaxSubmSizeBytes) * 2,
	})

	srv := &http.Server{
		Addr:              cfg.HttpAddr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", cfg.HttpAddr, "subm_store", cfg.SubmStore)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	budget := shutdownBudget(problems, runner, cfg.JudgeTimeout)
	log.Info("shutting down, waiting for running evaluations", "budget", budget)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// shutdownBudget is the worst-case evaluation time of the largest stored
// problem plus a margin for the store write. Submits still running after
// it are cut off.
func shutdownBudget(problems *problem.PgProblemRepo, runner *evalsrvc.Runner, judgeTimeout time.Duration) time.Duration {
	const margin = 5 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	maxTests, err := problems.MaxTestCount(ctx)
	if err != nil {
		slog.Warn("failed to get max test count, assuming one round", "error", err)
		maxTests = 1
	}
	return max(runner.MaxDuration(maxTests, judgeTimeout), judgeTimeout) + margin
}
