package submcmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/planglist"
	"github.com/programme-lv/contest/problem"
	decorator "github.com/programme-lv/contest/srvccqs"
	"github.com/programme-lv/contest/subm"
)

type SubmitSolCmd decorator.CmdResultHandler[SubmitSolParams, subm.Subm]

type SubmitSolParams struct {
	UserUUID    uuid.UUID
	ProblemID   string
	ContestID   string
	ProgrLangID string
	SourceCode  string
}

// SubmitSolCmdHandler evaluates a solution and makes it the user's
// current submission for the problem.
type SubmitSolCmdHandler struct {
	MaxSrcBytes int
	GetProblem  func(ctx context.Context, id string) (problem.Problem, error)
	RunTests    func(ctx context.Context, p problem.Problem, lang judge.Lang, src string) ([]evalsrvc.TestVerdict, error)
	UpsertSubm  func(ctx context.Context, p subm.UpsertParams) (subm.Subm, error)
	Now         func() time.Time
}

func (h SubmitSolCmdHandler) Handle(ctx context.Context, p SubmitSolParams) (subm.Subm, error) {
	lang, err := ValidateSource(p.SourceCode, p.ProgrLangID, h.MaxSrcBytes)
	if err != nil {
		return subm.Subm{}, err
	}

	prob, err := h.GetProblem(ctx, p.ProblemID)
	if err != nil {
		return subm.Subm{}, fmt.Errorf("failed to get problem: %w", err)
	}
	if prob.ContestID != p.ContestID {
		return subm.Subm{}, subm.ErrProblemNotInContest(p.ProblemID, p.ContestID)
	}

	verdicts, err := h.RunTests(ctx, prob, JudgeLang(lang), p.SourceCode)
	if err != nil {
		return subm.Subm{}, fmt.Errorf("failed to run tests: %w", err)
	}
	score := evalsrvc.Score(verdicts, prob.TotalMarks)

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	stored, err := h.UpsertSubm(ctx, subm.UpsertParams{
		UserUUID:    p.UserUUID,
		ProblemID:   prob.ID,
		ContestID:   prob.ContestID,
		Language:    lang.ID,
		SourceCode:  p.SourceCode,
		Verdicts:    verdicts,
		Score:       score,
		SubmittedAt: now(),
	})
	if err != nil {
		logger.FromContext(ctx).Error("evaluated submission lost",
			"user", p.UserUUID, "problem_id", prob.ID, "score", score, "error", err)
		return subm.Subm{}, subm.ErrSubmissionNotSaved(verdicts, score, err)
	}

	logger.FromContext(ctx).Info("submission stored",
		"user", p.UserUUID, "problem_id", prob.ID, "contest_id", prob.ContestID,
		"score", score, "total_marks", prob.TotalMarks)
	return stored, nil
}

// ValidateSource rejects what must never reach the judge: empty or
// oversized code and unknown or disabled languages.
func ValidateSource(src string, langID string, maxBytes int) (planglist.ProgrLang, error) {
	if strings.TrimSpace(src) == "" {
		return planglist.ProgrLang{}, subm.ErrEmptySubmission()
	}
	if maxBytes > 0 && len(src) > maxBytes {
		return planglist.ProgrLang{}, subm.ErrSubmissionTooLong(maxBytes / 1024)
	}
	return planglist.GetProgrLangById(langID)
}

func JudgeLang(l planglist.ProgrLang) judge.Lang {
	return judge.Lang{Name: l.JudgeID, Version: l.JudgeVersion}
}
