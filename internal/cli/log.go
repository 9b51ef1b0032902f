// Package cli implements the statenet command-line interface.
//
// The commands mirror the stages of the pipeline package:
//   - paths: assemble itinerary legs into weighted paths
//   - states: expand paths into an order-k state network
//   - multilayer: merge per-period state networks
//   - filter: threshold path files and split them for validation
//   - render: draw a state network with Graphviz
//
// # Configuration
//
// Flags override the configuration file given with --config, which in turn
// overrides the pipeline defaults. Without --config the file at
// $XDG_CONFIG_HOME/statenet/config.toml is read when it exists.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Log lines go
// to stderr; result summaries go to stdout.
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

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 42 states (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
