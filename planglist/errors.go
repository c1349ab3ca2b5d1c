package planglist

import (
	"fmt"
	"net/http"

	"github.com/programme-lv/contest/srvcerror"
)

const ErrCodeInvalidProgLang = "invalid_programming_language"

func ErrInvalidProgLang(id string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidProgLang,
		fmt.Sprintf("invalid programming language %q", id),
	).SetHttpStatusCode(http.StatusBadRequest)
}
