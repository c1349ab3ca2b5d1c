package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/contest/httpjson"
	"github.com/programme-lv/contest/logger"
)

func (httpserver *HttpServer) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	top, err := parseTop(r.URL.Query().Get("top"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	entries, err := httpserver.standings.Leaderboard(r.Context(), chi.URLParam(r, "contestId"), top)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapLeaderboard(entries))
}

func (httpserver *HttpServer) getContestHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userUUID, err := parseUserUUID(chi.URLParam(r, "userUuid"))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	records, err := httpserver.standings.ContestHistory(r.Context(), userUUID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContestHistory(records))
}
