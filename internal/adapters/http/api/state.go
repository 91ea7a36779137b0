// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/model"
)

// maxStateBody bounds PUT /state request bodies.
const maxStateBody = 1 << 12

// StateDependencies defines the interface for session view state operations.
type StateDependencies interface {
	State(ctx context.Context) (repository.ViewState, error)
	UpdateState(ctx context.Context, u repository.StateUpdate) (repository.ViewState, error)
}

// StateHandler handles view state requests.
type StateHandler struct {
	deps StateDependencies
}

// NewStateHandler creates a new state handler.
func NewStateHandler(deps StateDependencies) *StateHandler {
	return &StateHandler{deps: deps}
}

// HandleState handles GET and PUT /state requests.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *StateHandler) get(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_state"
	state, err := h.deps.State(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// put applies a partial update as a single store write. The metric is
// validated first so a rejected request leaves the state untouched.
func (h *StateHandler) put(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_state"

	var req stateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxStateBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	u := repository.StateUpdate{Search: req.Search, Sort: req.Sort}
	if req.Metric != nil {
		key := model.MetricKey(*req.Metric)
		if !key.Valid() {
			fail(w, WrapKind(op, ErrBadRequest, model.ErrUnknownMetric))
			return
		}
		u.Metric = &key
	}

	state, err := h.deps.UpdateState(r.Context(), u)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}
