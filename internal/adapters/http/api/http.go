// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/roster/internal/domain/model"
)

// DefaultMaxLimit caps GET /roster?limit when no option overrides it.
const DefaultMaxLimit = 1000

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RosterDependencies
	RankDependencies
	StateDependencies
	DescriptorDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	rosterHandler     *RosterHandler
	rankHandler       *RankHandler
	stateHandler      *StateHandler
	descriptorHandler *DescriptorHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxLimit int
}

// WithMaxLimit caps GET /roster?limit.
func WithMaxLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{maxLimit: DefaultMaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		rosterHandler:     NewRosterHandler(deps, cfg.maxLimit),
		rankHandler:       NewRankHandler(deps),
		stateHandler:      NewStateHandler(deps),
		descriptorHandler: NewDescriptorHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/roster/refresh", MetricsMiddleware(s.rosterHandler.HandleRefresh, "roster_refresh"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/state", MetricsMiddleware(s.stateHandler.HandleState, "state"))
	mux.HandleFunc("/descriptors", MetricsMiddleware(s.descriptorHandler.HandleList, "descriptors"))
	mux.HandleFunc("/descriptors/", MetricsMiddleware(s.descriptorHandler.HandleToggle, "descriptors_toggle"))
}

// stateRequest is the body of PUT /state. Absent fields are left unchanged.
type stateRequest struct {
	Search *string `json:"search"`
	Metric *string `json:"metric"`
	Sort   *bool   `json:"sort"`
}

// descriptorsResponse is returned by the descriptor routes.
type descriptorsResponse struct {
	Descriptors model.Descriptors `json:"descriptors"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status of its kind.
func fail(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
