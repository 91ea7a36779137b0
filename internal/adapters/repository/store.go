// Package repository holds the in-memory session state of the roster.
package repository

import (
	"context"
	"time"

	"github.com/okian/roster/internal/domain/model"
)

// Generator produces a fresh set of user records.
type Generator interface {
	Generate(count int) []model.User
}

// Generation identifies one generated record set.
type Generation struct {
	ID      string    `json:"id"`
	At      time.Time `json:"generated_at"`
	Records int       `json:"records"`
}

// ViewState holds the operator inputs that persist across derivations.
type ViewState struct {
	Metric model.MetricKey `json:"metric"`
	Sort   bool            `json:"sort"`
	Search string          `json:"search"`
}

// StateUpdate is a partial view state change. Nil fields are left as they are.
type StateUpdate struct {
	Search *string
	Metric *model.MetricKey
	Sort   *bool
}

// Snapshot is a consistent, caller-owned copy of the session.
type Snapshot struct {
	Generation  Generation
	Records     []model.User
	Descriptors model.Descriptors
	State       ViewState
}

// Store provides read/write access to the session state.
type Store interface {
	// Refresh replaces the records with a newly generated, unrelated set.
	Refresh(ctx context.Context) (Generation, error)

	// Records returns a copy of the current records in generation order.
	Records(ctx context.Context) []model.User

	// Descriptors returns a copy of the metric descriptor list.
	Descriptors(ctx context.Context) model.Descriptors

	// ToggleMetric flips the visibility of key.
	// Returns ErrUnknownMetric and leaves the list untouched for unknown keys.
	ToggleMetric(ctx context.Context, key model.MetricKey) (model.Descriptors, error)

	ViewState(ctx context.Context) ViewState
	SetSearch(ctx context.Context, search string) ViewState
	SelectMetric(ctx context.Context, key model.MetricKey) (ViewState, error)
	SetSort(ctx context.Context, sort bool) ViewState
	UpdateState(ctx context.Context, u StateUpdate) (ViewState, error)

	// Snapshot returns every piece of session state read at one instant.
	Snapshot(ctx context.Context) Snapshot

	// Count returns the number of records in the current generation.
	Count(ctx context.Context) int
}
