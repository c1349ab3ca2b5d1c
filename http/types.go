package http

import (
	"time"

	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/planglist"
	"github.com/programme-lv/contest/standings"
	"github.com/programme-lv/contest/subm"
)

type TestVerdict struct {
	Input          *string `json:"input"`
	ExpectedOutput *string `json:"expected_output"`
	ActualOutput   *string `json:"actual_output"`
	Outcome        string  `json:"outcome"`
	ErrorDetail    *string `json:"error_detail"`
	Hidden         bool    `json:"hidden"`
}

type Submission struct {
	UserUUID    string        `json:"user_uuid"`
	ProblemID   string        `json:"problem_id"`
	ContestID   string        `json:"contest_id"`
	Language    string        `json:"language"`
	SourceCode  *string       `json:"source_code"`
	Verdicts    []TestVerdict `json:"verdicts"`
	Score       int           `json:"score"`
	Penalty     int           `json:"penalty"`
	Runtime     string        `json:"runtime"`
	Memory      string        `json:"memory"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

type LeaderboardEntry struct {
	UserUUID   string `json:"user_uuid"`
	Username   string `json:"username"`
	TotalScore int    `json:"total_score"`
	Rank       int    `json:"rank"`
}

type ContestRankRecord struct {
	ContestID  string `json:"contest_id"`
	Title      string `json:"title"`
	Rank       int    `json:"rank"`
	TotalScore int    `json:"total_score"`
	Trophy     string `json:"trophy"`
}

type ProgrammingLang struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	HelloWorldCode string `json:"helloWorldCode"`
	MonacoID       string `json:"monacoId"`
	Enabled        bool   `json:"enabled"`
}

// mapTestVerdict never lets hidden test data leave the server. The
// outcome of a hidden test is still shown.
func mapTestVerdict(v evalsrvc.TestVerdict) TestVerdict {
	res := TestVerdict{
		Outcome: string(v.Outcome),
		Hidden:  v.Hidden,
	}
	if v.Hidden {
		return res
	}
	res.Input = &v.Input
	res.ExpectedOutput = &v.ExpectedOutput
	res.ActualOutput = &v.ActualOutput
	res.ErrorDetail = v.ErrorDetail
	return res
}

func mapTestVerdicts(verdicts []evalsrvc.TestVerdict) []TestVerdict {
	res := make([]TestVerdict, len(verdicts))
	for i, v := range verdicts {
		res[i] = mapTestVerdict(v)
	}
	return res
}

func mapSubmission(s subm.Subm, withSource bool) Submission {
	res := Submission{
		UserUUID:    s.UserUUID.String(),
		ProblemID:   s.ProblemID,
		ContestID:   s.ContestID,
		Language:    s.Language,
		Verdicts:    mapTestVerdicts(s.Verdicts),
		Score:       s.Score,
		Penalty:     s.Penalty,
		Runtime:     s.Runtime,
		Memory:      s.Memory,
		SubmittedAt: s.SubmittedAt,
	}
	if withSource {
		res.SourceCode = &s.SourceCode
	}
	return res
}

func mapLeaderboard(entries []standings.LeaderboardEntry) []LeaderboardEntry {
	res := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		res[i] = LeaderboardEntry{
			UserUUID:   e.UserUUID.String(),
			Username:   e.Username,
			TotalScore: e.TotalScore,
			Rank:       e.Rank,
		}
	}
	return res
}

func mapContestHistory(records []standings.ContestRankRecord) []ContestRankRecord {
	res := make([]ContestRankRecord, len(records))
	for i, r := range records {
		res[i] = ContestRankRecord(r)
	}
	return res
}

func mapProgrammingLang(l planglist.ProgrLang) ProgrammingLang {
	return ProgrammingLang{
		ID:             l.ID,
		FullName:       l.FullName,
		HelloWorldCode: l.HelloWorld,
		MonacoID:       l.MonacoId,
		Enabled:        l.Enabled,
	}
}
