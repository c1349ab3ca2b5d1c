package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/logger"
)

type PgUserRepo struct {
	pool *pgxpool.Pool
}

func NewPgUserRepo(pool *pgxpool.Pool) *PgUserRepo {
	return &PgUserRepo{pool: pool}
}

// GetUsernames resolves usernames in one round trip.
// Unknown uuids are absent from the result.
func (r *PgUserRepo) GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	res := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	logger.FromContext(ctx).Debug("resolving usernames", "count", len(ids))

	rows, err := r.pool.Query(ctx, `SELECT uuid, username FROM users WHERE uuid = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		res[id] = username
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return res, nil
}
