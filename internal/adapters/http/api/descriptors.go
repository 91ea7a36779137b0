// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/roster/internal/domain/model"
)

// DescriptorDependencies defines the interface for metric descriptor operations.
type DescriptorDependencies interface {
	Descriptors(ctx context.Context) (model.Descriptors, error)
	ToggleMetric(ctx context.Context, key model.MetricKey) (model.Descriptors, error)
}

// DescriptorHandler handles descriptor requests.
type DescriptorHandler struct {
	deps DescriptorDependencies
}

// NewDescriptorHandler creates a new descriptor handler.
func NewDescriptorHandler(deps DescriptorDependencies) *DescriptorHandler {
	return &DescriptorHandler{deps: deps}
}

// HandleList handles GET /descriptors requests.
func (h *DescriptorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_descriptors"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	list, err := h.deps.Descriptors(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, descriptorsResponse{Descriptors: list})
}

// HandleToggle handles POST /descriptors/{key}/toggle requests.
// An unknown key is a 404 and the list is not changed.
func (h *DescriptorHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	const op = "api.toggle_descriptor"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/descriptors/")
	key, ok := strings.CutSuffix(rest, "/toggle")
	if !ok || key == "" || strings.Contains(key, "/") {
		http.NotFound(w, r)
		return
	}

	list, err := h.deps.ToggleMetric(r.Context(), model.MetricKey(key))
	if err != nil {
		if errors.Is(err, model.ErrUnknownMetric) {
			fail(w, WrapKind(op, ErrNotFound, err))
			return
		}
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, descriptorsResponse{Descriptors: list})
}
