// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/buildermatch/internal/adapters/repository"
	"github.com/okian/buildermatch/internal/domain/model"
	"github.com/okian/buildermatch/internal/domain/types"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// MatchProjects ranks recruiting projects for a user.
	MatchProjects(ctx context.Context, userID string, limit int) (types.MatchList, error)
	// MatchMembers ranks candidate users for a project.
	MatchMembers(ctx context.Context, projectID string, limit int) (types.MatchList, error)
	// SubmitUpdate queues a user or project upsert.
	SubmitUpdate(ctx context.Context, u model.Update) (id string, duplicate bool, err error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	matchingHandler *MatchingHandler
	updatesHandler  *UpdatesHandler
	limiter         *RateLimiter
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRateLimiter limits the matching routes per client.
func WithRateLimiter(l *RateLimiter) ServerOption {
	return func(s *Server) {
		s.limiter = l
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		matchingHandler: NewMatchingHandler(deps),
		updatesHandler:  NewUpdatesHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /matching/projects",
		MetricsMiddleware(s.limiter.Middleware(s.matchingHandler.HandleMatchProjects, "match_projects"), "match_projects"))
	mux.HandleFunc("GET /matching/members/{projectId}",
		MetricsMiddleware(s.limiter.Middleware(s.matchingHandler.HandleMatchMembers, "match_members"), "match_members"))
	mux.HandleFunc("POST /users", MetricsMiddleware(s.updatesHandler.HandlePostUser, "users"))
	mux.HandleFunc("POST /projects", MetricsMiddleware(s.updatesHandler.HandlePostProject, "projects"))
}

// parseLimit reads the leading integer of the limit query parameter, so
// "5abc" is 5. Values without one yield 0, which the service maps to its
// default. Out-of-range values saturate and are capped by the service.
func parseLimit(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

// serviceError tags err with op, classifying missing users and projects as
// ErrNotFound.
func serviceError(op string, err error) error {
	if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrProjectNotFound) {
		return WrapKind(op, ErrNotFound, err)
	}
	return Wrap(op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// writeServiceError maps service errors onto HTTP statuses and envelope codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrInvalidUpdate):
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, codeNotFound, err)
	case errors.Is(err, model.ErrBackpressure), errors.Is(err, ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, codeBackpressure, err)
	case errors.Is(err, model.ErrNotAccepting), errors.Is(err, ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, errors.New("internal error"))
	}
}
