// Package submpgrepo stores current submissions in PostgreSQL.
package submpgrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/subm"
)

type PgSubmRepo struct {
	pool *pgxpool.Pool
}

var _ subm.Repo = (*PgSubmRepo)(nil)

func NewPgSubmRepo(pool *pgxpool.Pool) *PgSubmRepo {
	return &PgSubmRepo{pool: pool}
}

const submColumns = `user_uuid, problem_id, contest_id, language, source_code,
	verdicts, score, penalty, runtime, memory, submitted_at`

// Upsert writes the row in a single statement. The primary key on
// (user_uuid, problem_id, contest_id) serializes concurrent writers.
// Source and verdict JSON go in as raw bytes.
func (r *PgSubmRepo) Upsert(ctx context.Context, p subm.UpsertParams) (subm.Subm, error) {
	s := p.ToSubm()
	verdicts, err := json.Marshal(s.Verdicts)
	if err != nil {
		return subm.Subm{}, subm.WrapPersistence("marshal verdicts", err)
	}

	query := `
		INSERT INTO submissions (` + submColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_uuid, problem_id, contest_id) DO UPDATE SET
			language = EXCLUDED.language,
			source_code = EXCLUDED.source_code,
			verdicts = EXCLUDED.verdicts,
			score = EXCLUDED.score,
			penalty = EXCLUDED.penalty,
			runtime = EXCLUDED.runtime,
			memory = EXCLUDED.memory,
			submitted_at = EXCLUDED.submitted_at
		RETURNING ` + submColumns

	rows, err := r.pool.Query(ctx, query,
		s.UserUUID,
		s.ProblemID,
		s.ContestID,
		s.Language,
		[]byte(s.SourceCode),
		verdicts,
		s.Score,
		s.Penalty,
		s.Runtime,
		s.Memory,
		s.SubmittedAt,
	)
	if err != nil {
		return subm.Subm{}, subm.WrapPersistence("upsert submission", err)
	}
	stored, err := pgx.CollectExactlyOneRow(rows, scanSubm)
	if err != nil {
		return subm.Subm{}, subm.WrapPersistence("read upserted submission", err)
	}
	return stored, nil
}

func (r *PgSubmRepo) ListByUser(ctx context.Context, userUUID uuid.UUID, contestID string) ([]subm.Subm, error) {
	query := `
		SELECT ` + submColumns + `
		FROM submissions
		WHERE user_uuid = $1 AND contest_id = $2
		ORDER BY submitted_at, problem_id
	`
	rows, err := r.pool.Query(ctx, query, userUUID, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions of user: %w", err)
	}
	subms, err := pgx.CollectRows(rows, scanSubm)
	if err != nil {
		return nil, fmt.Errorf("failed to scan submissions: %w", err)
	}
	return subms, nil
}

func (r *PgSubmRepo) ListByContest(ctx context.Context, contestID string) ([]subm.Subm, error) {
	query := `
		SELECT ` + submColumns + `
		FROM submissions
		WHERE contest_id = $1
		ORDER BY submitted_at, user_uuid::text, problem_id
	`
	rows, err := r.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions of contest: %w", err)
	}
	subms, err := pgx.CollectRows(rows, scanSubm)
	if err != nil {
		return nil, fmt.Errorf("failed to scan submissions: %w", err)
	}
	return subms, nil
}

func (r *PgSubmRepo) ListContestsOfUser(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT contest_id
		FROM submissions
		WHERE user_uuid = $1
		ORDER BY contest_id
	`
	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests of user: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan contest ids: %w", err)
	}
	return ids, nil
}

func scanSubm(row pgx.CollectableRow) (subm.Subm, error) {
	var s subm.Subm
	var sourceCode, verdicts []byte
	var submittedAt time.Time
	err := row.Scan(
		&s.UserUUID,
		&s.ProblemID,
		&s.ContestID,
		&s.Language,
		&sourceCode,
		&verdicts,
		&s.Score,
		&s.Penalty,
		&s.Runtime,
		&s.Memory,
		&submittedAt,
	)
	if err != nil {
		return subm.Subm{}, err
	}
	s.SourceCode = string(sourceCode)
	s.SubmittedAt = submittedAt.UTC()
	s.Verdicts = []evalsrvc.TestVerdict{}
	if err := json.Unmarshal(verdicts, &s.Verdicts); err != nil {
		return subm.Subm{}, fmt.Errorf("failed to unmarshal verdicts: %w", err)
	}
	return s, nil
}
