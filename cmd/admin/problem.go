package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/conf"
	"github.com/programme-lv/contest/contest"
	"github.com/programme-lv/contest/problem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newProblemCmd() *cobra.Command {
	var problemCmd = &cobra.Command{
		Use:   "problem",
		Short: "Manage contest problems",
	}

	var parallel int
	var importCmd = &cobra.Command{
		Use:   "import <problem.toml>...",
		Short: "Validate problem manifests and store them with their test cases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importProblems(cmd.Context(), args, parallel)
		},
	}
	importCmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Manifests imported concurrently")

	var validateCmd = &cobra.Command{
		Use:   "validate <problem.toml>...",
		Short: "Check problem manifests without storing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				p, err := readManifest(path)
				if err != nil {
					return err
				}
				log.Info().Str("file", path).Str("problem", p.ID).Int("tests", len(p.Tests)).Msg("manifest is valid")
			}
			return nil
		},
	}

	problemCmd.AddCommand(importCmd, validateCmd)
	return problemCmd
}

func newContestCmd() *cobra.Command {
	var contestCmd = &cobra.Command{
		Use:   "contest",
		Short: "Manage contests",
	}

	var id, title string
	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create or rename a contest",
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, err := openPg(cmd.Context())
			if err != nil {
				return err
			}
			defer pg.Close()

			err = contest.NewPgContestRepo(pg).StoreContest(cmd.Context(), contest.Contest{ID: id, Title: title})
			if err != nil {
				return err
			}
			log.Info().Str("contest", id).Str("title", title).Msg("contest stored")
			return nil
		},
	}
	createCmd.Flags().StringVar(&id, "id", "", "Contest id (required)")
	createCmd.Flags().StringVar(&title, "title", "", "Contest title (required)")
	createCmd.MarkFlagRequired("id")
	createCmd.MarkFlagRequired("title")

	contestCmd.AddCommand(createCmd)
	return contestCmd
}

func readManifest(path string) (problem.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return problem.Problem{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	p, err := problem.ParseManifest(data)
	if err != nil {
		return problem.Problem{}, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return p, nil
}

// importProblems parses every manifest before storing any, so one bad
// file leaves the database untouched.
func importProblems(ctx context.Context, paths []string, parallel int) error {
	problems := make([]problem.Problem, len(paths))
	for i, path := range paths {
		p, err := readManifest(path)
		if err != nil {
			return err
		}
		problems[i] = p
	}

	pg, err := openPg(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()
	repo := problem.NewPgProblemRepo(pg)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i, p := range problems {
		g.Go(func() error {
			log.Debug().Str("file", paths[i]).Str("problem", p.ID).Msg("storing problem")
			if err := repo.StoreProblem(gctx, p); err != nil {
				return fmt.Errorf("failed to store problem %s: %w", p.ID, err)
			}
			log.Info().Str("problem", p.ID).Str("contest", p.ContestID).
				Int("tests", len(p.Tests)).Int("marks", p.TotalMarks).Msg("problem imported")
			return nil
		})
	}
	return g.Wait()
}

func openPg(ctx context.Context) (*pgxpool.Pool, error) {
	pg, err := pgxpool.New(ctx, conf.GetPgConnStrFromEnv())
	if err != nil {
		return nil, fmt.Errorf("error creating pg pool: %w", err)
	}
	return pg, nil
}
