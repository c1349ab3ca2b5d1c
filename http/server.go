// Package http exposes submissions and standings over a JSON HTTP API.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/programme-lv/contest/auth"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/standings"
	"github.com/programme-lv/contest/subm/submsrvc"
	"github.com/programme-lv/contest/tracing"
)

type StandingsQuerier interface {
	Leaderboard(ctx context.Context, contestID string, topN int) ([]standings.LeaderboardEntry, error)
	ContestHistory(ctx context.Context, userUUID uuid.UUID) ([]standings.ContestRankRecord, error)
}

type HttpServer struct {
	submSrvc  *submsrvc.SubmSrvc
	standings StandingsQuerier
	router    *chi.Mux
	validate  *validator.Validate

	maxBodyBytes int64
}

type Options struct {
	JwtKey       []byte
	LogLevel     slog.Level
	JSONLogs     bool
	MaxBodyBytes int64
}

func NewHttpServer(
	submSrvc *submsrvc.SubmSrvc,
	standings StandingsQuerier,
	opts Options,
) *HttpServer {
	router := chi.NewRouter()

	reqLogger := httplog.NewLogger("contest", httplog.Options{
		LogLevel:         opts.LogLevel,
		JSON:             opts.JSONLogs,
		Concise:          true,
		RequestHeaders:   false,
		MessageFieldName: "message",
	})

	router.Use(tracing.NewMiddleware("contest").Handler)
	router.Use(httplog.RequestLogger(reqLogger))
	router.Use(requestLoggerToContext)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://programme.lv", "https://www.programme.lv"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.Middleware(opts.JwtKey))

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	server := &HttpServer{
		submSrvc:     submSrvc,
		standings:    standings,
		router:       router,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxBodyBytes: maxBody,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Get("/programming-languages", httpserver.listProgrammingLangs)
	r.Post("/problems/{problemId}/run", httpserver.runTests)
	r.Post("/contests/{contestId}/problems/{problemId}/submissions", httpserver.submitSolution)
	r.Get("/contests/{contestId}/submissions", httpserver.listSubmissions)
	r.Get("/contests/{contestId}/leaderboard", httpserver.getLeaderboard)
	r.Get("/users/{userUuid}/contest-history", httpserver.getContestHistory)
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

// requestLoggerToContext makes the per-request httplog logger the one
// services see through logger.FromContext.
func requestLoggerToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithLogger(r.Context(), httplog.LogEntry(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
