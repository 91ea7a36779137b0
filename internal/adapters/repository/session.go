package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/roster/internal/domain/generator"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/metrics"
)

// SessionStore is the in-memory Store.
//
// Writers take mu and publish an immutable snapshot when done; readers load
// the published snapshot without locking.
type SessionStore struct {
	mu          sync.Mutex
	gen         Generator
	recordCount int
	now         func() time.Time

	generation  Generation
	records     []model.User
	descriptors model.Descriptors
	state       ViewState

	snapshot atomic.Pointer[Snapshot]
}

var _ Store = (*SessionStore)(nil)

// NewSessionStore builds a store and generates the first record set.
func NewSessionStore(ctx context.Context, gen Generator, opts ...Option) (*SessionStore, error) {
	if gen == nil {
		return nil, ErrNoGenerator
	}
	s := &SessionStore{
		gen:         gen,
		recordCount: generator.DefaultCount,
		now:         time.Now,
		descriptors: model.DefaultDescriptors(),
		state:       ViewState{Metric: model.MetricTimeSpent},
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh replaces the records with a new generation.
func (s *SessionStore) Refresh(ctx context.Context) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, fmt.Errorf("refresh: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.gen.Generate(s.recordCount)
	s.generation = Generation{
		ID:      uuid.NewString(),
		At:      s.now().UTC(),
		Records: len(s.records),
	}
	s.publishLocked()

	metrics.RecordGeneration(len(s.records))
	return s.generation, nil
}

// Records returns a copy of the current records.
func (s *SessionStore) Records(ctx context.Context) []model.User {
	return slices.Clone(s.load().Records)
}

// Descriptors returns a copy of the descriptor list.
func (s *SessionStore) Descriptors(ctx context.Context) model.Descriptors {
	return s.load().Descriptors.Clone()
}

// ToggleMetric flips the Enabled flag of key.
func (s *SessionStore) ToggleMetric(ctx context.Context, key model.MetricKey) (model.Descriptors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.descriptors.Find(key); !ok {
		metrics.RecordErrorByComponent("repository", "unknown_metric")
		return s.descriptors.Clone(), fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}

	s.descriptors = s.descriptors.Toggle(key)
	s.publishLocked()

	d, _ := s.descriptors.Find(key)
	metrics.RecordMetricToggle(string(key), d.Enabled)
	return s.descriptors.Clone(), nil
}

// ViewState returns the current view state.
func (s *SessionStore) ViewState(ctx context.Context) ViewState {
	return s.load().State
}

// SetSearch stores the search text as given.
func (s *SessionStore) SetSearch(ctx context.Context, search string) ViewState {
	return s.updateState("search", func(v *ViewState) { v.Search = search })
}

// SelectMetric sets the ranking metric. It does not change the sort flag.
func (s *SessionStore) SelectMetric(ctx context.Context, key model.MetricKey) (ViewState, error) {
	if !key.Valid() {
		metrics.RecordErrorByComponent("repository", "unknown_metric")
		return s.ViewState(ctx), fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return s.updateState("metric", func(v *ViewState) { v.Metric = key }), nil
}

// SetSort enables or disables sorting by the selected metric.
func (s *SessionStore) SetSort(ctx context.Context, sort bool) ViewState {
	return s.updateState("sort", func(v *ViewState) { v.Sort = sort })
}

// UpdateState applies every set field of u in one write, so readers see
// either none or all of it. An unknown metric rejects the whole update.
func (s *SessionStore) UpdateState(ctx context.Context, u StateUpdate) (ViewState, error) {
	if u.Metric != nil && !u.Metric.Valid() {
		metrics.RecordErrorByComponent("repository", "unknown_metric")
		return s.ViewState(ctx), fmt.Errorf("%w: %q", ErrUnknownMetric, *u.Metric)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Search != nil {
		s.state.Search = *u.Search
		metrics.RecordStateChange("search")
	}
	if u.Metric != nil {
		s.state.Metric = *u.Metric
		metrics.RecordStateChange("metric")
	}
	if u.Sort != nil {
		s.state.Sort = *u.Sort
		metrics.RecordStateChange("sort")
	}
	s.publishLocked()
	return s.state, nil
}

// Snapshot returns a caller-owned copy of the session.
func (s *SessionStore) Snapshot(ctx context.Context) Snapshot {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	snap := s.load()
	return Snapshot{
		Generation:  snap.Generation,
		Records:     slices.Clone(snap.Records),
		Descriptors: snap.Descriptors.Clone(),
		State:       snap.State,
	}
}

// Count returns the number of records.
func (s *SessionStore) Count(ctx context.Context) int {
	return len(s.load().Records)
}

func (s *SessionStore) updateState(field string, apply func(*ViewState)) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.state)
	s.publishLocked()
	metrics.RecordStateChange(field)
	return s.state
}

// publishLocked stores a new immutable snapshot (assumes mu is held).
// Every writer replaces records and descriptors wholesale, so the snapshot
// can share their backing arrays.
func (s *SessionStore) publishLocked() {
	s.snapshot.Store(&Snapshot{
		Generation:  s.generation,
		Records:     s.records,
		Descriptors: s.descriptors,
		State:       s.state,
	})
}

func (s *SessionStore) load() *Snapshot {
	return s.snapshot.Load()
}
