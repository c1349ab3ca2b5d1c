// Package standings ranks contest participants from their current
// submissions. Nothing is cached: every call reads the store.
package standings

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/subm"
	"golang.org/x/sync/errgroup"
)

type LeaderboardEntry struct {
	UserUUID   uuid.UUID
	Username   string
	TotalScore int
	Rank       int
}

type ContestRankRecord struct {
	ContestID  string
	Title      string
	Rank       int
	TotalScore int
	Trophy     string
}

type SubmLister interface {
	ListByContest(ctx context.Context, contestID string) ([]subm.Subm, error)
	ListContestsOfUser(ctx context.Context, userUUID uuid.UUID) ([]string, error)
}

type UsernameGetter interface {
	GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type ContestTitleGetter interface {
	GetTitles(ctx context.Context, ids []string) (map[string]string, error)
}

type StandingsSrvc struct {
	subms    SubmLister
	users    UsernameGetter
	contests ContestTitleGetter

	// contests ranked in parallel by ContestHistory
	historyConcurrency int
}

func NewStandingsSrvc(subms SubmLister, users UsernameGetter, contests ContestTitleGetter) *StandingsSrvc {
	return &StandingsSrvc{
		subms:              subms,
		users:              users,
		contests:           contests,
		historyConcurrency: 4,
	}
}

// Leaderboard ranks everyone with a submission in the contest. topN <= 0
// returns every entry.
func (s *StandingsSrvc) Leaderboard(ctx context.Context, contestID string, topN int) ([]LeaderboardEntry, error) {
	subms, err := s.subms.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions of contest: %w", err)
	}

	ranked := Rank(subms)
	logger.FromContext(ctx).Debug("ranked contest",
		"contest_id", contestID, "submissions", len(subms), "participants", len(ranked))
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	ids := make([]uuid.UUID, len(ranked))
	for i, st := range ranked {
		ids[i] = st.UserUUID
	}
	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		names, err = s.users.GetUsernames(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get usernames: %w", err)
		}
	}

	res := make([]LeaderboardEntry, len(ranked))
	for i, st := range ranked {
		res[i] = LeaderboardEntry{
			UserUUID:   st.UserUUID,
			Username:   names[st.UserUUID],
			TotalScore: st.TotalScore,
			Rank:       st.Rank,
		}
	}
	return res, nil
}

// ContestHistory returns the user's rank in every contest they submitted
// to, best rank first.
func (s *StandingsSrvc) ContestHistory(ctx context.Context, userUUID uuid.UUID) ([]ContestRankRecord, error) {
	contestIDs, err := s.subms.ListContestsOfUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests of user: %w", err)
	}
	if len(contestIDs) == 0 {
		return []ContestRankRecord{}, nil
	}

	records := make([]ContestRankRecord, len(contestIDs))
	found := make([]bool, len(contestIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.historyConcurrency)
	for i, contestID := range contestIDs {
		g.Go(func() error {
			subms, err := s.subms.ListByContest(gctx, contestID)
			if err != nil {
				return fmt.Errorf("failed to list submissions of contest %s: %w", contestID, err)
			}
			for _, st := range Rank(subms) {
				if st.UserUUID == userUUID {
					records[i] = ContestRankRecord{
						ContestID:  contestID,
						Title:      contestID,
						Rank:       st.Rank,
						TotalScore: st.TotalScore,
						Trophy:     Trophy(st.Rank),
					}
					found[i] = true
					break
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]ContestRankRecord, 0, len(records))
	for i, r := range records {
		if found[i] {
			res = append(res, r)
		}
	}

	titles, err := s.contests.GetTitles(ctx, contestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest titles: %w", err)
	}
	for i := range res {
		// contests unknown to the catalogue keep their id as title
		if title, ok := titles[res[i].ContestID]; ok && title != "" {
			res[i].Title = title
		}
	}

	slices.SortFunc(res, func(a, b ContestRankRecord) int {
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.ContestID, b.ContestID)
	})
	return res, nil
}
