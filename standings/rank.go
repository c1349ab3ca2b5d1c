package standings

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/subm"
)

// Standing is one participant's aggregate within a contest.
type Standing struct {
	UserUUID   uuid.UUID
	TotalScore int
	Latest     time.Time // most recent submission time
	Rank       int
}

// Rank aggregates current submissions per user and orders them by total
// score (higher first), then by latest submission (earlier first), then
// by user UUID so the output never depends on input order. Users equal on
// score and latest time share a rank: rank is one more than the number of
// users strictly ahead.
func Rank(subms []subm.Subm) []Standing {
	byUser := make(map[uuid.UUID]*Standing)
	for _, s := range subms {
		st, ok := byUser[s.UserUUID]
		if !ok {
			st = &Standing{UserUUID: s.UserUUID, Latest: s.SubmittedAt}
			byUser[s.UserUUID] = st
		}
		st.TotalScore += s.Score
		if s.SubmittedAt.After(st.Latest) {
			st.Latest = s.SubmittedAt
		}
	}

	res := make([]Standing, 0, len(byUser))
	for _, st := range byUser {
		res = append(res, *st)
	}
	slices.SortFunc(res, func(a, b Standing) int {
		if a.TotalScore != b.TotalScore {
			if a.TotalScore > b.TotalScore {
				return -1
			}
			return 1
		}
		if c := a.Latest.Compare(b.Latest); c != 0 {
			return c
		}
		return bytes.Compare(a.UserUUID[:], b.UserUUID[:])
	})

	for i := range res {
		if i > 0 && sameStanding(res[i-1], res[i]) {
			res[i].Rank = res[i-1].Rank
		} else {
			res[i].Rank = i + 1
		}
	}
	return res
}

func sameStanding(a, b Standing) bool {
	return a.TotalScore == b.TotalScore && a.Latest.Equal(b.Latest)
}

const (
	TrophyGold   = "🥇"
	TrophySilver = "🥈"
	TrophyBronze = "🥉"
)

func Trophy(rank int) string {
	switch rank {
	case 1:
		return TrophyGold
	case 2:
		return TrophySilver
	case 3:
		return TrophyBronze
	default:
		return ""
	}
}
