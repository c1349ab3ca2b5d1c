// Package submstore opens the submission store selected by SUBM_STORE.
package submstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/contest/conf"
	"github.com/programme-lv/contest/subm"
	"github.com/programme-lv/contest/subm/submddbrepo"
	"github.com/programme-lv/contest/subm/submpgrepo"
)

// Open returns the configured store. pgPool is only used by the postgres
// store.
func Open(ctx context.Context, cfg conf.Config, pgPool *pgxpool.Pool) (subm.Repo, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	switch cfg.SubmStore {
	case conf.StorePostgres:
		return submpgrepo.NewPgSubmRepo(pgPool), nil
	case conf.StoreDynamoDb:
		client, err := NewDynamoDbClient(ctx, cfg.AwsRegion)
		if err != nil {
			return nil, err
		}
		repo, err := submddbrepo.NewDdbSubmRepo(client, cfg.DdbSubmTable)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		slog.Warn("submissions are kept in memory and lost on restart")
		return subm.NewInMemRepo(), nil
	}
}

func NewDynamoDbClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}
