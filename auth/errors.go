package auth

import (
	"net/http"

	"github.com/programme-lv/contest/srvcerror"
)

const ErrCodeUnauthorized = "unauthorized"

func ErrUnauthorized(details string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthorized,
		"unauthorized: "+details,
	).SetHttpStatusCode(http.StatusUnauthorized)
}
