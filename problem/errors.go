package problem

import (
	"fmt"
	"net/http"

	"github.com/programme-lv/contest/srvcerror"
)

const (
	ErrCodeProblemNotFound = "problem_not_found"
	ErrCodeInvalidProblem  = "invalid_problem"
)

func ErrProblemNotFound(id string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		fmt.Sprintf("problem %q not found", id),
	).SetHttpStatusCode(http.StatusNotFound)
}

func ErrInvalidProblem(details string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidProblem,
		"problem cannot be evaluated: "+details,
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}
