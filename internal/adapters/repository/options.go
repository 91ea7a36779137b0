package repository

import (
	"time"

	"github.com/okian/roster/internal/domain/model"
)

// Option applies a configuration option to the SessionStore.
type Option func(*SessionStore)

// WithRecordCount sets how many users each generation holds.
func WithRecordCount(n int) Option {
	return func(s *SessionStore) {
		if n > 0 {
			s.recordCount = n
		}
	}
}

// WithEnabledMetrics sets the initially visible metrics.
func WithEnabledMetrics(keys []model.MetricKey) Option {
	return func(s *SessionStore) {
		s.descriptors = model.DefaultDescriptors().WithEnabled(keys)
	}
}

// WithViewState sets the initial view state. An unknown metric is ignored.
func WithViewState(state ViewState) Option {
	return func(s *SessionStore) {
		if !state.Metric.Valid() {
			state.Metric = s.state.Metric
		}
		s.state = state
	}
}

// WithClock overrides the time source used to stamp generations.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}
