package rostercli

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/roster/internal/domain/model"
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultTimeout = 10 * time.Second
)

// ErrInvalidFlag reports a flag value that cannot be used.
var ErrInvalidFlag = errors.New("invalid flag")

// Config holds the options of one CLI run.
type Config struct {
	BaseURL string        // Base URL of the roster service
	Search  string        // Search text; empty keeps the session value online
	Metric  string        // Ranking metric; empty keeps the session value online
	Sort    bool          // Sort by the ranking metric
	Metrics string        // Comma separated visible metrics; empty keeps the defaults
	Offline bool          // Generate and derive in-process instead of calling the service
	Refresh bool          // Regenerate the server roster before fetching it
	Seed    int64         // Generator seed for offline runs; zero seeds from the clock
	Count   int           // Users generated for offline runs
	Limit   int           // Maximum rows; zero shows all
	Plain   bool          // Disable colour
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log requests and timings to stderr
}

// metricKey returns the ranking metric, validated.
func (c *Config) metricKey() (model.MetricKey, error) {
	if c.Metric == "" {
		return "", nil
	}
	key := model.MetricKey(c.Metric)
	if !key.Valid() {
		return "", fmt.Errorf("%w: -metric %q: %w", ErrInvalidFlag, c.Metric, model.ErrUnknownMetric)
	}
	return key, nil
}

// enabledKeys returns the visible metrics, or nil when none were requested.
func (c *Config) enabledKeys() ([]model.MetricKey, error) {
	if c.Metrics == "" {
		return nil, nil
	}
	keys := model.ParseMetricKeys(c.Metrics)
	for _, k := range keys {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: -metrics %q: %w", ErrInvalidFlag, k, model.ErrUnknownMetric)
		}
	}
	return keys, nil
}

// Validate checks flag values before anything runs.
func (c *Config) Validate() error {
	if _, err := c.metricKey(); err != nil {
		return err
	}
	if _, err := c.enabledKeys(); err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: -limit must not be negative", ErrInvalidFlag)
	}
	if c.Offline && c.Count < 0 {
		return fmt.Errorf("%w: -count must not be negative", ErrInvalidFlag)
	}
	if !c.Offline && c.BaseURL == "" {
		return fmt.Errorf("%w: -url is required online", ErrInvalidFlag)
	}
	return nil
}
