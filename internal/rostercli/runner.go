package rostercli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/roster/internal/adapters/render"
	"github.com/okian/roster/internal/domain/generator"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/roster"
	"github.com/okian/roster/pkg/logger"
)

// Run derives one roster view and writes it to out.
// sortSet reports whether -sort was given explicitly; online runs only
// override the session sort flag in that case.
func Run(ctx context.Context, cfg *Config, sortSet bool, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	start := time.Now()
	var (
		view roster.View
		err  error
	)
	if cfg.Offline {
		view, err = runOffline(cfg)
	} else {
		view, err = runOnline(ctx, cfg, sortSet)
	}
	if err != nil {
		return err
	}

	logger.Get().Debug(ctx, "roster ready",
		logger.Bool("offline", cfg.Offline),
		logger.Int("rows", len(view.Rows)),
		logger.Int("total", view.Total),
		logger.String("elapsed", time.Since(start).String()))

	_, err = fmt.Fprintln(out, render.Table(view, render.Options{Plain: cfg.Plain}))
	return err
}

func runOffline(cfg *Config) (roster.View, error) {
	metric, _ := cfg.metricKey()
	if metric == "" {
		metric = model.MetricTimeSpent
	}
	enabled, _ := cfg.enabledKeys()
	if enabled == nil {
		enabled = model.DefaultDescriptors().EnabledKeys()
	}

	users := generator.New(generator.WithSeed(cfg.Seed)).Generate(cfg.Count)
	view := roster.Derive(users, roster.Query{
		Metric:  metric,
		Sort:    cfg.Sort,
		Search:  cfg.Search,
		Enabled: enabled,
	})
	return limitRows(view, cfg.Limit), nil
}

func runOnline(ctx context.Context, cfg *Config, sortSet bool) (roster.View, error) {
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	if cfg.Refresh {
		if err := client.refresh(ctx); err != nil {
			return roster.View{}, fmt.Errorf("refresh failed: %w", err)
		}
	}

	view, err := client.fetchRoster(ctx, cfg, sortSet)
	if err != nil {
		return roster.View{}, fmt.Errorf("roster request failed: %w", err)
	}

	// Visible metrics are a local display choice; rebuild the cells from the raw metrics.
	if enabled, _ := cfg.enabledKeys(); enabled != nil {
		columns := roster.Columns(enabled)
		for i, row := range view.Rows {
			view.Rows[i] = roster.NewRow(row.User, columns)
		}
	}
	return view, nil
}

func limitRows(view roster.View, limit int) roster.View {
	if limit > 0 && len(view.Rows) > limit {
		view.Rows = view.Rows[:limit]
	}
	return view
}
