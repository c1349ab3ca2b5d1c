package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/auth"
	"github.com/programme-lv/contest/evalsrvc"
	cthttp "github.com/programme-lv/contest/http"
	"github.com/programme-lv/contest/judge"
	"github.com/programme-lv/contest/problem"
	"github.com/programme-lv/contest/standings"
	"github.com/programme-lv/contest/subm"
	"github.com/programme-lv/contest/subm/submsrvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtKey = []byte("http-test-key")

type problemsMock map[string]problem.Problem

func (m problemsMock) GetProblem(ctx context.Context, id string) (problem.Problem, error) {
	p, ok := m[id]
	if !ok {
		return problem.Problem{}, problem.ErrProblemNotFound(id)
	}
	return p, nil
}

type usernamesMock map[uuid.UUID]string

func (m usernamesMock) GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return m, nil
}

type titlesMock map[string]string

func (m titlesMock) GetTitles(ctx context.Context, ids []string) (map[string]string, error) {
	return m, nil
}

// doublingJudge runs "print(int(input())*2)" faithfully and anything else
// as a program printing 4.
type doublingJudge struct{}

func (doublingJudge) Execute(ctx context.Context, lang judge.Lang, src string, stdin string) (judge.Result, error) {
	if strings.Contains(src, "*2") {
		switch strings.TrimSpace(stdin) {
		case "2":
			return judge.Result{Stdout: "4\n"}, nil
		case "3":
			return judge.Result{Stdout: "6\n"}, nil
		}
	}
	return judge.Result{Stdout: "4\n"}, nil
}

type fixture struct {
	srv   *httptest.Server
	alice uuid.UUID
	bob   uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{alice: uuid.New(), bob: uuid.New()}

	problems := problemsMock{"double": {
		ID: "double", ContestID: "spring", TotalMarks: 20,
		Tests: []problem.TestCase{
			{Input: "2", ExpectedOutput: "4"},
			{Input: "3", ExpectedOutput: "6", IsHidden: true},
		},
	}}
	repo := subm.NewInMemRepo()
	submSrvc := submsrvc.NewSubmSrvc(problems, evalsrvc.NewRunner(doublingJudge{}, 2), repo, 64*1024)
	standingsSrvc := standings.NewStandingsSrvc(repo,
		usernamesMock{f.alice: "alice", f.bob: "bob"},
		titlesMock{"spring": "Spring Cup"})

	server := cthttp.NewHttpServer(submSrvc, standingsSrvc, cthttp.Options{JwtKey: jwtKey})
	f.srv = httptest.NewServer(server.Handler())
	t.Cleanup(f.srv.Close)
	return f
}

func (f fixture) do(t *testing.T, method, path string, user uuid.UUID, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		token, err := auth.GenerateJWT("u", user, time.Hour, jwtKey)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestSubmitAndLeaderboard(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodPost, "/contests/spring/problems/double/submissions", f.alice,
		`{"programming_lang_id":"python3.11","source_code":"print(int(input())*2)"}`)
	require.Equal(t, http.StatusCreated, status, body)
	assert.EqualValues(t, 20, body["data"].(map[string]any)["score"])

	status, body = f.do(t, http.MethodPost, "/contests/spring/problems/double/submissions", f.bob,
		`{"programming_lang_id":"python3.11","source_code":"print(4)"}`)
	require.Equal(t, http.StatusCreated, status, body)
	assert.EqualValues(t, 10, body["data"].(map[string]any)["score"])

	status, body = f.do(t, http.MethodGet, "/contests/spring/leaderboard", uuid.Nil, "")
	require.Equal(t, http.StatusOK, status)
	entries := body["data"].([]any)
	require.Len(t, entries, 2)
	first, second := entries[0].(map[string]any), entries[1].(map[string]any)
	assert.Equal(t, "alice", first["username"])
	assert.EqualValues(t, 1, first["rank"])
	assert.EqualValues(t, 20, first["total_score"])
	assert.Equal(t, "bob", second["username"])
	assert.EqualValues(t, 2, second["rank"])

	status, body = f.do(t, http.MethodGet, "/contests/spring/leaderboard?top=1", uuid.Nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, body = f.do(t, http.MethodGet, "/users/"+f.bob.String()+"/contest-history", uuid.Nil, "")
	require.Equal(t, http.StatusOK, status)
	hist := body["data"].([]any)
	require.Len(t, hist, 1)
	rec := hist[0].(map[string]any)
	assert.Equal(t, "Spring Cup", rec["title"])
	assert.EqualValues(t, 2, rec["rank"])
	assert.Equal(t, "🥈", rec["trophy"])
}

func TestRunRedactsHiddenTests(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodPost, "/problems/double/run", f.alice,
		`{"programming_lang_id":"python3.11","source_code":"print(4)"}`)
	require.Equal(t, http.StatusOK, status, body)
	verdicts := body["data"].([]any)
	require.Len(t, verdicts, 2)

	visible := verdicts[0].(map[string]any)
	assert.Equal(t, "2", visible["input"])
	assert.Equal(t, "accepted", visible["outcome"])

	hidden := verdicts[1].(map[string]any)
	assert.Equal(t, true, hidden["hidden"])
	assert.Equal(t, "wrong_answer", hidden["outcome"])
	assert.Nil(t, hidden["input"])
	assert.Nil(t, hidden["expected_output"])
	assert.Nil(t, hidden["actual_output"])

	// running stores nothing
	_, body = f.do(t, http.MethodGet, "/contests/spring/leaderboard", uuid.Nil, "")
	assert.Empty(t, body["data"])
}

func TestErrorResponses(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		method string
		path   string
		user   uuid.UUID
		body   string
		status int
		code   string
	}{
		{"anonymous submit", http.MethodPost, "/contests/spring/problems/double/submissions", uuid.Nil,
			`{"programming_lang_id":"python3.11","source_code":"print(1)"}`, http.StatusUnauthorized, auth.ErrCodeUnauthorized},
		{"missing source", http.MethodPost, "/contests/spring/problems/double/submissions", f.alice,
			`{"programming_lang_id":"python3.11"}`, http.StatusBadRequest, "invalid_request"},
		{"malformed json", http.MethodPost, "/problems/double/run", f.alice,
			`{"programming_lang_id":`, http.StatusBadRequest, "invalid_request"},
		{"unknown problem", http.MethodPost, "/problems/nope/run", f.alice,
			`{"programming_lang_id":"python3.11","source_code":"print(1)"}`, http.StatusNotFound, problem.ErrCodeProblemNotFound},
		{"disabled language", http.MethodPost, "/problems/double/run", f.alice,
			`{"programming_lang_id":"c11","source_code":"int main(){}"}`, http.StatusBadRequest, "invalid_programming_language"},
		{"problem of another contest", http.MethodPost, "/contests/autumn/problems/double/submissions", f.alice,
			`{"programming_lang_id":"python3.11","source_code":"print(1)"}`, http.StatusBadRequest, subm.ErrCodeInvalidSubmission},
		{"bad top", http.MethodGet, "/contests/spring/leaderboard?top=-1", uuid.Nil, "", http.StatusBadRequest, "invalid_request"},
		{"bad user uuid", http.MethodGet, "/users/not-a-uuid/contest-history", uuid.Nil, "", http.StatusBadRequest, "invalid_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := f.do(t, tt.method, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.status, status, body)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestListSubmissionsHidesForeignSource(t *testing.T) {
	f := newFixture(t)
	status, _ := f.do(t, http.MethodPost, "/contests/spring/problems/double/submissions", f.alice,
		`{"programming_lang_id":"python3.11","source_code":"print(4)"}`)
	require.Equal(t, http.StatusCreated, status)

	_, body := f.do(t, http.MethodGet, "/contests/spring/submissions", f.alice, "")
	own := body["data"].([]any)
	require.Len(t, own, 1)
	assert.Equal(t, "print(4)", own[0].(map[string]any)["source_code"])

	_, body = f.do(t, http.MethodGet, "/contests/spring/submissions?user="+f.alice.String(), f.bob, "")
	foreign := body["data"].([]any)
	require.Len(t, foreign, 1)
	assert.Nil(t, foreign[0].(map[string]any)["source_code"])

	status, _ = f.do(t, http.MethodGet, "/contests/spring/submissions", uuid.Nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListProgrammingLangs(t *testing.T) {
	f := newFixture(t)
	status, body := f.do(t, http.MethodGet, "/programming-languages", uuid.Nil, "")
	require.Equal(t, http.StatusOK, status)
	ids := []string{}
	for _, l := range body["data"].([]any) {
		ids = append(ids, l.(map[string]any)["id"].(string))
	}
	assert.Contains(t, ids, "python3.11")
	assert.Contains(t, ids, "cpp17")
}
