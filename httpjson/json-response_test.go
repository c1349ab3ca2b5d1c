package httpjson_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/programme-lv/contest/httpjson"
	"github.com/programme-lv/contest/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func decode(t *testing.T, w *httptest.ResponseRecorder) httpjson.JsonResponse {
	t.Helper()
	var resp httpjson.JsonResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestHandleErrorWrappedServiceError(t *testing.T) {
	w := httptest.NewRecorder()
	srvcErr := srvcerror.New("problem_not_found", "problem \"x\" not found").SetHttpStatusCode(http.StatusNotFound)
	httpjson.HandleError(discard, w, fmt.Errorf("failed to get problem: %w", srvcErr))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "problem_not_found", resp.ErrCode)
	assert.Equal(t, "problem \"x\" not found", resp.ErrMsg)
}

func TestHandleErrorHidesInternals(t *testing.T) {
	w := httptest.NewRecorder()
	httpjson.HandleError(discard, w, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, srvcerror.ErrCodeInternalServerError, resp.ErrCode)
	assert.NotContains(t, resp.ErrMsg, "password")
}

func TestWriteSuccessJsonWithStatus(t *testing.T) {
	w := httptest.NewRecorder()
	httpjson.WriteSuccessJsonWithStatus(w, http.StatusCreated, map[string]int{"score": 10})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","data":{"score":10}}`, w.Body.String())
}
