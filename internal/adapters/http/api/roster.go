// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/roster"
)

// RosterDependencies defines the interface for roster operations.
type RosterDependencies interface {
	Roster(ctx context.Context, o roster.Overrides) (roster.View, error)
	Refresh(ctx context.Context) (repository.Generation, error)
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps     RosterDependencies
	maxLimit int
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies, maxLimit int) *RosterHandler {
	return &RosterHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRoster handles GET /roster?search=&metric=&sort=&limit= requests.
// Query parameters override the session state for this request only.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	o, err := h.overrides(r)
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if o.Limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	view, err := h.deps.Roster(r.Context(), o)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *RosterHandler) overrides(r *http.Request) (roster.Overrides, error) {
	var o roster.Overrides
	q := r.URL.Query()

	if q.Has("search") {
		s := q.Get("search")
		o.Search = &s
	}
	if v := q.Get("metric"); v != "" {
		key := model.MetricKey(v)
		if !key.Valid() {
			return o, model.ErrUnknownMetric
		}
		o.Metric = &key
	}
	if v := q.Get("sort"); v != "" {
		sort, err := strconv.ParseBool(v)
		if err != nil {
			return o, err
		}
		o.Sort = &sort
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, err
		}
		if n < 1 {
			return o, ErrBadRequest
		}
		o.Limit = n
	}
	return o, nil
}

// HandleRefresh handles POST /roster/refresh requests.
func (h *RosterHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh_roster"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	g, err := h.deps.Refresh(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, g)
}
