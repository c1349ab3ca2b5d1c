package subm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/programme-lv/contest/evalsrvc"
	"github.com/programme-lv/contest/srvcerror"
)

var ErrPersistence = errors.New("submission could not be persisted")

// WrapPersistence marks a store failure so callers can tell it apart
// from evaluation errors.
func WrapPersistence(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrPersistence, op, err)
}

const (
	ErrCodeInvalidSubmission  = "invalid_submission"
	ErrCodeSubmissionNotSaved = "submission_not_saved"
)

func ErrSubmissionTooLong(maxKiB int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubmission,
		fmt.Sprintf("submission source code is too long, the limit is %d KiB", maxKiB),
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrEmptySubmission() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubmission,
		"submission source code is empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrProblemNotInContest(problemID, contestID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubmission,
		fmt.Sprintf("problem %q does not belong to contest %q", problemID, contestID),
	).SetHttpStatusCode(http.StatusBadRequest)
}

// Unsaved carries an evaluation whose result never reached the store.
type Unsaved struct {
	Verdicts []evalsrvc.TestVerdict
	Score    int
	Err      error
}

func (u *Unsaved) Error() string {
	return fmt.Sprintf("evaluated submission (score %d) was not saved: %v", u.Score, u.Err)
}

func (u *Unsaved) Unwrap() error {
	return u.Err
}

// ErrSubmissionNotSaved reports a completed evaluation that could not be
// stored. errors.Is(err, ErrPersistence) holds for the result.
func ErrSubmissionNotSaved(verdicts []evalsrvc.TestVerdict, score int, err error) *srvcerror.Error {
	if !errors.Is(err, ErrPersistence) {
		err = fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return srvcerror.New(
		ErrCodeSubmissionNotSaved,
		"submission was evaluated but could not be saved, please resubmit",
	).SetHttpStatusCode(http.StatusServiceUnavailable).
		SetDebug(&Unsaved{Verdicts: verdicts, Score: score, Err: err})
}
