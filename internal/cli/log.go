// Package cli implements the railing command-line interface.
//
// # Commands
//
//   - offsets: Compute baluster offsets for a span
//   - serve: Run the HTTP API
//   - cache: Manage the local layout cache
//   - config: Inspect or create the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes cache and placement events to the log.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// elapsed formats the time since start rounded for display.
func elapsed(start time.Time) string {
	d := time.Since(start)
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}
