package subm

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

// InMemRepo keeps submissions in process memory. Used in tests and for
// local runs without a database.
type InMemRepo struct {
	subms *xsync.MapOf[Key, Subm]
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{subms: xsync.NewMapOf[Key, Subm]()}
}

func (r *InMemRepo) Upsert(ctx context.Context, p UpsertParams) (Subm, error) {
	if err := ctx.Err(); err != nil {
		return Subm{}, WrapPersistence("upsert submission", err)
	}
	s := p.ToSubm()
	stored, _ := r.subms.Compute(s.Key(), func(Subm, bool) (Subm, bool) {
		return s, false
	})
	return cloneSubm(stored), nil
}

func (r *InMemRepo) ListByUser(ctx context.Context, userUUID uuid.UUID, contestID string) ([]Subm, error) {
	return r.collect(func(s Subm) bool {
		return s.UserUUID == userUUID && s.ContestID == contestID
	}), nil
}

func (r *InMemRepo) ListByContest(ctx context.Context, contestID string) ([]Subm, error) {
	return r.collect(func(s Subm) bool {
		return s.ContestID == contestID
	}), nil
}

func (r *InMemRepo) ListContestsOfUser(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	seen := map[string]struct{}{}
	r.subms.Range(func(k Key, _ Subm) bool {
		if k.UserUUID == userUUID {
			seen[k.ContestID] = struct{}{}
		}
		return true
	})
	res := make([]string, 0, len(seen))
	for id := range seen {
		res = append(res, id)
	}
	slices.Sort(res)
	return res, nil
}

// collect returns matching submissions in the order the database stores
// list them: oldest first.
func (r *InMemRepo) collect(match func(Subm) bool) []Subm {
	res := []Subm{}
	r.subms.Range(func(_ Key, s Subm) bool {
		if match(s) {
			res = append(res, cloneSubm(s))
		}
		return true
	})
	slices.SortFunc(res, CompareSubmittedAt)
	return res
}

// CompareSubmittedAt orders by submission time, then by key.
func CompareSubmittedAt(a, b Subm) int {
	if c := a.SubmittedAt.Compare(b.SubmittedAt); c != 0 {
		return c
	}
	if c := strings.Compare(a.UserUUID.String(), b.UserUUID.String()); c != 0 {
		return c
	}
	return strings.Compare(a.ProblemID, b.ProblemID)
}

func cloneSubm(s Subm) Subm {
	s.Verdicts = slices.Clone(s.Verdicts)
	return s
}
