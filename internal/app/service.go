// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/generator"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/roster"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// Service implements the API dependencies for the roster.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	recordCount    int
	seed           int64
	avatarHost     string
	defaultMetric  model.MetricKey
	defaultSort    bool
	enabledMetrics []model.MetricKey

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecordCount sets how many users each generation holds.
func WithRecordCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.recordCount = count
		}
	}
}

// WithSeed makes generation reproducible. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithAvatarHost sets the avatar image service host.
func WithAvatarHost(host string) Option {
	return func(s *Service) {
		if host != "" {
			s.avatarHost = host
		}
	}
}

// WithDefaultMetric sets the ranking metric of a fresh session.
func WithDefaultMetric(key model.MetricKey) Option {
	return func(s *Service) {
		if key.Valid() {
			s.defaultMetric = key
		}
	}
}

// WithDefaultSort enables sorting in a fresh session.
func WithDefaultSort(sort bool) Option {
	return func(s *Service) {
		s.defaultSort = sort
	}
}

// WithEnabledMetrics sets the visible metrics of a fresh session.
func WithEnabledMetrics(keys []model.MetricKey) Option {
	return func(s *Service) {
		if keys != nil {
			s.enabledMetrics = keys
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		recordCount:    generator.DefaultCount,
		avatarHost:     generator.DefaultAvatarHost,
		defaultMetric:  model.MetricTimeSpent,
		enabledMetrics: model.DefaultDescriptors().EnabledKeys(),
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start generates the first roster and opens the session.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting roster service...")

	gen := generator.New(
		generator.WithSeed(s.seed),
		generator.WithAvatarHost(s.avatarHost),
	)
	store, err := repository.NewSessionStore(ctx, gen,
		repository.WithRecordCount(s.recordCount),
		repository.WithEnabledMetrics(s.enabledMetrics),
		repository.WithViewState(repository.ViewState{Metric: s.defaultMetric, Sort: s.defaultSort}),
	)
	if err != nil {
		metrics.RecordErrorByComponent("service", "start")
		return fmt.Errorf("start: %w", err)
	}
	s.store = store

	s.started = true
	s.logger.Info(ctx, "roster service started",
		logger.Int("records", store.Count(ctx)),
		logger.Int64("seed", s.seed),
		logger.String("metric", string(s.defaultMetric)),
		logger.Bool("sort", s.defaultSort),
	)

	return nil
}

// Stop closes the session. A later Start generates a new roster.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.store = nil
	s.started = false
	s.logger.Info(context.Background(), "roster service stopped")
}

func (s *Service) session() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// query builds the derivation inputs from a snapshot and optional overrides.
func query(snap repository.Snapshot, o roster.Overrides) (roster.Query, error) {
	q := roster.Query{
		Metric:  snap.State.Metric,
		Sort:    snap.State.Sort,
		Search:  snap.State.Search,
		Enabled: snap.Descriptors.EnabledKeys(),
	}
	if o.Metric != nil {
		if !o.Metric.Valid() {
			return roster.Query{}, fmt.Errorf("%w: %q", ErrUnknownMetric, *o.Metric)
		}
		q.Metric = *o.Metric
	}
	if o.Sort != nil {
		q.Sort = *o.Sort
	}
	if o.Search != nil {
		q.Search = *o.Search
	}
	return q, nil
}

// Roster derives the displayed roster from the session state.
func (s *Service) Roster(ctx context.Context, o roster.Overrides) (roster.View, error) {
	store, err := s.session()
	if err != nil {
		return roster.View{}, err
	}

	start := time.Now()
	snap := store.Snapshot(ctx)
	q, err := query(snap, o)
	if err != nil {
		metrics.RecordErrorByComponent("service", "unknown_metric")
		return roster.View{}, err
	}

	view := roster.Derive(snap.Records, q)
	if o.Limit > 0 && len(view.Rows) > o.Limit {
		view.Rows = view.Rows[:o.Limit]
	}

	elapsed := time.Since(start)
	metrics.RecordDerivation(float64(elapsed.Microseconds())/1000, len(view.Rows), view.Search != "")
	s.logger.Debug(ctx, "roster derived",
		logger.String("generation", snap.Generation.ID),
		logger.String("metric", string(view.Metric)),
		logger.Bool("sorted", view.Sorted),
		logger.String("search", view.Search),
		logger.Int("rows", len(view.Rows)),
		logger.Int("total", view.Total),
		logger.Int64("elapsed_us", elapsed.Microseconds()),
	)

	return view, nil
}

// UserRank returns the row of one user under the current metric and sort.
// The search filter does not apply.
func (s *Service) UserRank(ctx context.Context, id string) (roster.Row, error) {
	store, err := s.session()
	if err != nil {
		return roster.Row{}, err
	}

	snap := store.Snapshot(ctx)
	for _, u := range roster.Rank(snap.Records, snap.State.Metric, snap.State.Sort) {
		if u.ID == id {
			return roster.NewRow(u, roster.Columns(snap.Descriptors.EnabledKeys())), nil
		}
	}

	metrics.RecordErrorByComponent("service", "not_found")
	return roster.Row{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Refresh regenerates the records. View state and descriptors are kept.
func (s *Service) Refresh(ctx context.Context) (repository.Generation, error) {
	store, err := s.session()
	if err != nil {
		return repository.Generation{}, err
	}

	g, err := store.Refresh(ctx)
	if err != nil {
		s.logger.Error(ctx, "roster refresh failed", logger.Error(err))
		return repository.Generation{}, err
	}
	s.logger.Info(ctx, "roster refreshed",
		logger.String("generation", g.ID),
		logger.Int("records", g.Records),
	)
	return g, nil
}

// Descriptors returns the metric descriptor list.
func (s *Service) Descriptors(ctx context.Context) (model.Descriptors, error) {
	store, err := s.session()
	if err != nil {
		return nil, err
	}
	return store.Descriptors(ctx), nil
}

// ToggleMetric flips the visibility of one metric column.
func (s *Service) ToggleMetric(ctx context.Context, key model.MetricKey) (model.Descriptors, error) {
	store, err := s.session()
	if err != nil {
		return nil, err
	}

	list, err := store.ToggleMetric(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "toggle rejected", logger.String("metric", string(key)), logger.Error(err))
		return list, err
	}
	s.logger.Debug(ctx, "metric toggled", logger.String("metric", string(key)))
	return list, nil
}

// SetSearch stores the session search text.
func (s *Service) SetSearch(ctx context.Context, search string) (repository.ViewState, error) {
	store, err := s.session()
	if err != nil {
		return repository.ViewState{}, err
	}
	return store.SetSearch(ctx, search), nil
}

// SelectMetric sets the session ranking metric.
func (s *Service) SelectMetric(ctx context.Context, key model.MetricKey) (repository.ViewState, error) {
	store, err := s.session()
	if err != nil {
		return repository.ViewState{}, err
	}
	return store.SelectMetric(ctx, key)
}

// SetSort enables or disables sorting for the session.
func (s *Service) SetSort(ctx context.Context, sort bool) (repository.ViewState, error) {
	store, err := s.session()
	if err != nil {
		return repository.ViewState{}, err
	}
	return store.SetSort(ctx, sort), nil
}

// UpdateState applies a partial view state change as one write.
func (s *Service) UpdateState(ctx context.Context, u repository.StateUpdate) (repository.ViewState, error) {
	store, err := s.session()
	if err != nil {
		return repository.ViewState{}, err
	}
	state, err := store.UpdateState(ctx, u)
	if err != nil {
		return state, err
	}
	s.logger.Debug(ctx, "view state updated",
		logger.String("metric", string(state.Metric)),
		logger.Bool("sort", state.Sort),
		logger.String("search", state.Search),
	)
	return state, nil
}

// State returns the session view state.
func (s *Service) State(ctx context.Context) (repository.ViewState, error) {
	store, err := s.session()
	if err != nil {
		return repository.ViewState{}, err
	}
	return store.ViewState(ctx), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"recordCount": s.recordCount,
		"seed":        s.seed,
		"avatarHost":  s.avatarHost,
	}

	if s.started {
		snap := s.store.Snapshot(context.Background())
		enabled := snap.Descriptors.EnabledKeys()
		names := make([]string, len(enabled))
		for i, k := range enabled {
			names[i] = string(k)
		}

		stats["totalUsers"] = len(snap.Records)
		stats["generationId"] = snap.Generation.ID
		stats["generatedAt"] = snap.Generation.At.Format(time.RFC3339)
		stats["metric"] = string(snap.State.Metric)
		stats["sort"] = snap.State.Sort
		stats["search"] = snap.State.Search
		stats["enabledMetrics"] = names
	}

	return stats
}
