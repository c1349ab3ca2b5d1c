package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/contest/auth"
	"github.com/programme-lv/contest/httpjson"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/subm/submsrvc/submcmd"
	"github.com/programme-lv/contest/subm/submsrvc/submquery"
)

type solutionRequest struct {
	ProgrLangID string `json:"programming_lang_id" validate:"required"`
	SourceCode  string `json:"source_code" validate:"required"`
}

func (httpserver *HttpServer) runTests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if _, err := auth.RequireUser(r.Context()); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req solutionRequest
	if err := httpserver.decodeJson(w, r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	verdicts, err := httpserver.submSrvc.RunTests.Handle(r.Context(), submquery.RunTestsParams{
		ProblemID:   chi.URLParam(r, "problemId"),
		ProgrLangID: req.ProgrLangID,
		SourceCode:  req.SourceCode,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTestVerdicts(verdicts))
}

func (httpserver *HttpServer) submitSolution(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userUUID, err := auth.RequireUser(r.Context())
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req solutionRequest
	if err := httpserver.decodeJson(w, r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	s, err := httpserver.submSrvc.SubmitSol.Handle(r.Context(), submcmd.SubmitSolParams{
		UserUUID:    userUUID,
		ProblemID:   chi.URLParam(r, "problemId"),
		ContestID:   chi.URLParam(r, "contestId"),
		ProgrLangID: req.ProgrLangID,
		SourceCode:  req.SourceCode,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJsonWithStatus(w, http.StatusCreated, mapSubmission(s, true))
}

// listSubmissions lists the caller's submissions, or those of ?user=.
// Source code is only returned to its author.
func (httpserver *HttpServer) listSubmissions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	caller, callerErr := auth.RequireUser(r.Context())
	target := caller
	if raw := r.URL.Query().Get("user"); raw != "" {
		u, err := parseUserUUID(raw)
		if err != nil {
			httpjson.HandleError(log, w, err)
			return
		}
		target = u
	} else if callerErr != nil {
		httpjson.HandleError(log, w, callerErr)
		return
	}

	subms, err := httpserver.submSrvc.ListSubms.Handle(r.Context(), submquery.ListSubmsParams{
		UserUUID:  target,
		ContestID: chi.URLParam(r, "contestId"),
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	withSource := callerErr == nil && caller == target
	res := make([]Submission, len(subms))
	for i, s := range subms {
		res[i] = mapSubmission(s, withSource)
	}
	httpjson.WriteSuccessJson(w, res)
}
