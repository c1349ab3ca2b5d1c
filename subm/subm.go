// Package subm holds the current submission of every (user, problem,
// contest) triple and the stores that persist it.
package subm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/evalsrvc"
)

const NotAvailable = "N/A"

type Key struct {
	UserUUID  uuid.UUID
	ProblemID string
	ContestID string
}

// Subm is the single current submission for its Key. Resubmitting
// replaces it in place.
type Subm struct {
	UserUUID    uuid.UUID
	ProblemID   string
	ContestID   string
	Language    string
	SourceCode  string
	Verdicts    []evalsrvc.TestVerdict
	Score       int
	Penalty     int // percentage
	Runtime     string
	Memory      string
	SubmittedAt time.Time
}

func (s Subm) Key() Key {
	return Key{UserUUID: s.UserUUID, ProblemID: s.ProblemID, ContestID: s.ContestID}
}

type UpsertParams struct {
	UserUUID    uuid.UUID
	ProblemID   string
	ContestID   string
	Language    string
	SourceCode  string
	Verdicts    []evalsrvc.TestVerdict
	Score       int
	Penalty     int
	Runtime     string
	Memory      string
	SubmittedAt time.Time
}

// ToSubm fills in the defaults a freshly upserted row gets.
func (p UpsertParams) ToSubm() Subm {
	s := Subm{
		UserUUID:    p.UserUUID,
		ProblemID:   p.ProblemID,
		ContestID:   p.ContestID,
		Language:    p.Language,
		SourceCode:  p.SourceCode,
		Verdicts:    p.Verdicts,
		Score:       p.Score,
		Penalty:     p.Penalty,
		Runtime:     p.Runtime,
		Memory:      p.Memory,
		SubmittedAt: p.SubmittedAt,
	}
	if s.Runtime == "" {
		s.Runtime = NotAvailable
	}
	if s.Memory == "" {
		s.Memory = NotAvailable
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	if s.Verdicts == nil {
		s.Verdicts = []evalsrvc.TestVerdict{}
	}
	return s
}

// Repo stores current submissions. Upsert must be atomic per Key: two
// concurrent upserts leave exactly one of them fully applied. Failed
// upserts wrap ErrPersistence.
type Repo interface {
	Upsert(ctx context.Context, p UpsertParams) (Subm, error)
	ListByUser(ctx context.Context, userUUID uuid.UUID, contestID string) ([]Subm, error)
	ListByContest(ctx context.Context, contestID string) ([]Subm, error)
	ListContestsOfUser(ctx context.Context, userUUID uuid.UUID) ([]string, error)
}
