package rostercli

import (
	"io"
	"log/slog"

	"github.com/okian/roster/pkg/logger"
)

// SetupLogging sends log lines to w, at debug level when verbose.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWithWriter(w); err != nil {
		return err
	}
	if verbose {
		logger.SetLevel(slog.LevelDebug)
	} else {
		logger.SetLevel(slog.LevelWarn)
	}
	return nil
}

// ShowHelp prints usage information for the roster CLI.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Roster CLI
==========

Prints a ranked, filtered user roster, either from a running roster
service or generated locally.

Usage:
  go run ./cmd/roster-cli [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -search string
        Case-insensitive username or handle filter
  -metric string
        Ranking metric, e.g. revenue, likes, completionRate
  -sort
        Sort by the ranking metric, highest first
  -metrics string
        Comma separated visible metrics (default timeSpent,revenue)
  -offline
        Generate and rank users locally instead of calling the service
  -refresh
        Regenerate the server roster before fetching it
  -seed int
        Generator seed for -offline runs (default: clock)
  -count int
        Users generated for -offline runs (default 100)
  -limit int
        Maximum rows to print (default: all)
  -plain
        Disable colour
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log requests and timings to stderr
  -help
        Show this help message

Examples:
  # Top ten by revenue from the local service
  go run ./cmd/roster-cli -metric revenue -sort -limit 10

  # Reproducible offline roster
  go run ./cmd/roster-cli -offline -seed 42 -metrics likes,shares -sort -metric likes
`)
}
