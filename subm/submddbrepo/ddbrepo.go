// Package submddbrepo stores current submissions in a DynamoDB table.
//
// Items are keyed by hash contest_id and range "<user_uuid>#<problem_id>",
// so one PutItem replaces the current submission atomically. The
// user_uuid-index GSI serves per-user lookups.
package submddbrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/subm"
)

const UserIndex = "user_uuid-index"

type submRow struct {
	ContestID   string `dynamo:"contest_id,hash"`
	UserProblem string `dynamo:"user_problem,range"` // <user_uuid>#<problem_id>

	UserUUID  string `dynamo:"user_uuid" index:"user_uuid-index,hash"`
	ProblemID string `dynamo:"problem_id"`

	Language   string `dynamo:"language"`
	SourceCode string `dynamo:"source_code"`

	// zstd compressed JSON, keeps large test data under the item size limit
	VerdictsZstd []byte `dynamo:"verdicts_zstd"`

	Score   int    `dynamo:"score"`
	Penalty int    `dynamo:"penalty"`
	Runtime string `dynamo:"runtime"`
	Memory  string `dynamo:"memory"`

	SubmittedAtRfc3339 string `dynamo:"submitted_at_rfc3339_utc"`
}

type DdbSubmRepo struct {
	table dynamo.Table
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

var _ subm.Repo = (*DdbSubmRepo)(nil)

func NewDdbSubmRepo(ddbClient *dynamodb.Client, tableName string) (*DdbSubmRepo, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	db := dynamo.NewFromIface(ddbClient)
	return &DdbSubmRepo{table: db.Table(tableName), enc: enc, dec: dec}, nil
}

// CreateTable creates the submissions table with its user index. Used by
// the admin tool and tests against DynamoDB Local.
func CreateTable(ctx context.Context, ddbClient *dynamodb.Client, tableName string) error {
	db := dynamo.NewFromIface(ddbClient)
	err := db.CreateTable(tableName, submRow{}).OnDemand(true).Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return nil
}

func (r *DdbSubmRepo) Upsert(ctx context.Context, p subm.UpsertParams) (subm.Subm, error) {
	s := p.ToSubm()
	row, err := r.toRow(s)
	if err != nil {
		return subm.Subm{}, subm.WrapPersistence("encode submission", err)
	}
	if err := r.table.Put(row).Run(ctx); err != nil {
		return subm.Subm{}, subm.WrapPersistence("put submission", err)
	}
	s.SubmittedAt = s.SubmittedAt.UTC()
	return s, nil
}

func (r *DdbSubmRepo) ListByUser(ctx context.Context, userUUID uuid.UUID, contestID string) ([]subm.Subm, error) {
	var rows []submRow
	err := r.table.Get("contest_id", contestID).
		Range("user_problem", dynamo.BeginsWith, userUUID.String()+"#").
		All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions of user: %w", err)
	}
	return r.fromRows(rows)
}

func (r *DdbSubmRepo) ListByContest(ctx context.Context, contestID string) ([]subm.Subm, error) {
	var rows []submRow
	err := r.table.Get("contest_id", contestID).All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions of contest: %w", err)
	}
	return r.fromRows(rows)
}

func (r *DdbSubmRepo) ListContestsOfUser(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	var rows []submRow
	err := r.table.Get("user_uuid", userUUID.String()).
		Index(UserIndex).
		Project("contest_id").
		All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests of user: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ContestID)
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (r *DdbSubmRepo) toRow(s subm.Subm) (submRow, error) {
	verdicts, err := json.Marshal(s.Verdicts)
	if err != nil {
		return submRow{}, fmt.Errorf("failed to marshal verdicts: %w", err)
	}
	return submRow{
		ContestID:          s.ContestID,
		UserProblem:        s.UserUUID.String() + "#" + s.ProblemID,
		UserUUID:           s.UserUUID.String(),
		ProblemID:          s.ProblemID,
		Language:           s.Language,
		SourceCode:         s.SourceCode,
		VerdictsZstd:       r.enc.EncodeAll(verdicts, make([]byte, 0, len(verdicts)/4)),
		Score:              s.Score,
		Penalty:            s.Penalty,
		Runtime:            s.Runtime,
		Memory:             s.Memory,
		SubmittedAtRfc3339: s.SubmittedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func (r *DdbSubmRepo) fromRow(row submRow) (subm.Subm, error) {
	userUUID, err := uuid.Parse(row.UserUUID)
	if err != nil {
		return subm.Subm{}, fmt.Errorf("failed to parse user uuid %q: %w", row.UserUUID, err)
	}
	submittedAt, err := time.Parse(time.RFC3339Nano, row.SubmittedAtRfc3339)
	if err != nil {
		return subm.Subm{}, fmt.Errorf("failed to parse submission time: %w", err)
	}
	raw, err := r.dec.DecodeAll(row.VerdictsZstd, nil)
	if err != nil {
		return subm.Subm{}, fmt.Errorf("failed to decompress verdicts: %w", err)
	}
	verdicts := []evalsrvc.TestVerdict{}
	if err := json.Unmarshal(raw, &verdicts); err != nil {
		return subm.Subm{}, fmt.Errorf("failed to unmarshal verdicts: %w", err)
	}
	problemID := row.ProblemID
	if problemID == "" {
		_, problemID, _ = strings.Cut(row.UserProblem, "#")
	}
	return subm.Subm{
		UserUUID:    userUUID,
		ProblemID:   problemID,
		ContestID:   row.ContestID,
		Language:    row.Language,
		SourceCode:  row.SourceCode,
		Verdicts:    verdicts,
		Score:       row.Score,
		Penalty:     row.Penalty,
		Runtime:     row.Runtime,
		Memory:      row.Memory,
		SubmittedAt: submittedAt,
	}, nil
}

func (r *DdbSubmRepo) fromRows(rows []submRow) ([]subm.Subm, error) {
	res := make([]subm.Subm, 0, len(rows))
	for _, row := range rows {
		s, err := r.fromRow(row)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	slices.SortFunc(res, subm.CompareSubmittedAt)
	return res, nil
}
