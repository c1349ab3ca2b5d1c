package contest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/logger"
)

type Contest struct {
	ID    string
	Title string
}

type PgContestRepo struct {
	pool *pgxpool.Pool
}

func NewPgContestRepo(pool *pgxpool.Pool) *PgContestRepo {
	return &PgContestRepo{pool: pool}
}

// GetTitles maps contest ids to titles. Unknown ids are absent from the map.
func (r *PgContestRepo) GetTitles(ctx context.Context, ids []string) (map[string]string, error) {
	res := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	logger.FromContext(ctx).Debug("getting contest titles", "count", len(ids))

	rows, err := r.pool.Query(ctx, `SELECT id, title FROM contests WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		res[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contests: %w", err)
	}
	return res, nil
}

// StoreContest creates or renames a contest.
func (r *PgContestRepo) StoreContest(ctx context.Context, c Contest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contests (id, title) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title
	`, c.ID, c.Title)
	if err != nil {
		return fmt.Errorf("failed to upsert contest: %w", err)
	}
	return nil
}
