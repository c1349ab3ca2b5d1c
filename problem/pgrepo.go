package problem

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/logger"
)

type PgProblemRepo struct {
	pool *pgxpool.Pool
}

func NewPgProblemRepo(pool *pgxpool.Pool) *PgProblemRepo {
	return &PgProblemRepo{pool: pool}
}

// GetProblem loads a problem with its test cases in authoring order.
func (r *PgProblemRepo) GetProblem(ctx context.Context, id string) (Problem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting problem", "problem_id", id)

	var p Problem
	err := r.pool.QueryRow(ctx, `
		SELECT id, contest_id, total_marks
		FROM problems
		WHERE id = $1
	`, id).Scan(&p.ID, &p.ContestID, &p.TotalMarks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Problem{}, ErrProblemNotFound(id).SetDebug(err)
		}
		return Problem{}, fmt.Errorf("failed to query problem: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT input, expected_output, is_hidden
		FROM test_cases
		WHERE problem_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return Problem{}, fmt.Errorf("failed to query test cases: %w", err)
	}
	p.Tests, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (TestCase, error) {
		var tc TestCase
		err := row.Scan(&tc.Input, &tc.ExpectedOutput, &tc.IsHidden)
		return tc, err
	})
	if err != nil {
		return Problem{}, fmt.Errorf("failed to scan test cases: %w", err)
	}

	log.Debug("problem retrieved", "problem_id", id, "tests", len(p.Tests))
	return p, nil
}

// StoreProblem validates and upserts a problem, replacing its test cases.
func (r *PgProblemRepo) StoreProblem(ctx context.Context, p Problem) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO problems (id, contest_id, total_marks)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			contest_id = EXCLUDED.contest_id,
			total_marks = EXCLUDED.total_marks
	`, p.ID, p.ContestID, p.TotalMarks)
	if err != nil {
		return fmt.Errorf("failed to upsert problem: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM test_cases WHERE problem_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to delete existing test cases: %w", err)
	}

	batch := &pgx.Batch{}
	for i, tc := range p.Tests {
		batch.Queue(`
			INSERT INTO test_cases (problem_id, position, input, expected_output, is_hidden)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, i+1, tc.Input, tc.ExpectedOutput, tc.IsHidden)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert test cases: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// MaxTestCount returns the largest number of test cases of any stored
// problem, 0 when there are none.
func (r *PgProblemRepo) MaxTestCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(cnt), 0)::int
		FROM (SELECT COUNT(*) AS cnt FROM test_cases GROUP BY problem_id) AS per_problem
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to query max test count: %w", err)
	}
	return n, nil
}
