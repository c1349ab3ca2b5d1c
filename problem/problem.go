package problem

import (
	"fmt"
	"strings"
)

type TestCase struct {
	Input          string
	ExpectedOutput string
	IsHidden       bool
}

type Problem struct {
	ID         string
	ContestID  string
	TotalMarks int
	Tests      []TestCase
}

// Validate checks the invariants every evaluable problem must hold:
// positive marks, at least one test, no blank input or expected output.
func (p Problem) Validate() error {
	if p.ID == "" {
		return ErrInvalidProblem("problem id is empty")
	}
	if p.ContestID == "" {
		return ErrInvalidProblem(fmt.Sprintf("problem %s has no contest", p.ID))
	}
	if p.TotalMarks <= 0 {
		return ErrInvalidProblem(fmt.Sprintf("problem %s has non-positive total marks %d", p.ID, p.TotalMarks))
	}
	if len(p.Tests) == 0 {
		return ErrInvalidProblem(fmt.Sprintf("problem %s has no test cases", p.ID))
	}
	for i, tc := range p.Tests {
		if strings.TrimSpace(tc.Input) == "" {
			return ErrInvalidProblem(fmt.Sprintf("test case %d of problem %s has empty input", i+1, p.ID))
		}
		if strings.TrimSpace(tc.ExpectedOutput) == "" {
			return ErrInvalidProblem(fmt.Sprintf("test case %d of problem %s has empty expected output", i+1, p.ID))
		}
	}
	return nil
}
