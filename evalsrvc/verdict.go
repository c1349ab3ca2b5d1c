package evalsrvc

import (
	"errors"
	"strings"

	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/problem"
)

type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeWrongAnswer    Outcome = "wrong_answer"
	OutcomeRuntimeError   Outcome = "runtime_error"
	OutcomeTransportError Outcome = "transport_error"
)

type TestVerdict struct {
	Input          string  `json:"input"`
	ExpectedOutput string  `json:"expected_output"`
	ActualOutput   string  `json:"actual_output"`
	Outcome        Outcome `json:"outcome"`
	ErrorDetail    *string `json:"error_detail,omitempty"`
	Hidden         bool    `json:"hidden"`
}

func (v TestVerdict) Accepted() bool {
	return v.Outcome == OutcomeAccepted
}

// deriveVerdict turns one judge answer into a verdict. Order matters:
// a transport failure wins over stderr, stderr wins over output comparison.
func deriveVerdict(tc problem.TestCase, res judge.Result, execErr error) TestVerdict {
	v := TestVerdict{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Hidden:         tc.IsHidden,
	}

	if execErr != nil {
		msg := execErr.Error()
		var te *judge.TransportError
		if errors.As(execErr, &te) {
			msg = te.Error()
		}
		v.Outcome = OutcomeTransportError
		v.ErrorDetail = &msg
		return v
	}

	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		v.Outcome = OutcomeRuntimeError
		v.ErrorDetail = &stderr
		return v
	}

	v.ActualOutput = strings.TrimSpace(res.Stdout)
	if v.ActualOutput == strings.TrimSpace(tc.ExpectedOutput) {
		v.Outcome = OutcomeAccepted
	} else {
		v.Outcome = OutcomeWrongAnswer
	}
	return v
}
