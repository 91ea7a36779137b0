package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/roster/internal/rostercli"
)

const defaultCount = 100

func main() {
	var (
		baseURL = flag.String("url", rostercli.DefaultBaseURL, "Base URL of the service")
		search  = flag.String("search", "", "Case-insensitive username or handle filter")
		metric  = flag.String("metric", "", "Ranking metric")
		sortBy  = flag.Bool("sort", false, "Sort by the ranking metric")
		metrics = flag.String("metrics", "", "Comma separated visible metrics")
		offline = flag.Bool("offline", false, "Generate and rank users locally")
		refresh = flag.Bool("refresh", false, "Regenerate the server roster before fetching it")
		seed    = flag.Int64("seed", 0, "Generator seed for offline runs")
		count   = flag.Int("count", defaultCount, "Users generated for offline runs")
		limit   = flag.Int("limit", 0, "Maximum rows to print")
		plain   = flag.Bool("plain", false, "Disable colour")
		timeout = flag.Duration("timeout", rostercli.DefaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log requests and timings to stderr")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rostercli.ShowHelp(os.Stdout)
		return
	}

	if err := rostercli.SetupLogging(os.Stderr, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	sortSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "sort" {
			sortSet = true
		}
	})

	cfg := &rostercli.Config{
		BaseURL: *baseURL,
		Search:  *search,
		Metric:  *metric,
		Sort:    *sortBy,
		Metrics: *metrics,
		Offline: *offline,
		Refresh: *refresh,
		Seed:    *seed,
		Count:   *count,
		Limit:   *limit,
		Plain:   *plain,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout*2)
	err := rostercli.Run(ctx, cfg, sortSet, os.Stdout)
	cancel()
	if err != nil {
		os.Stderr.WriteString("roster-cli: " + err.Error() + "\n")
		os.Exit(1)
	}
}
