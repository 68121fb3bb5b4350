// Package cli implements the spriteforge command-line interface.
//
// This package wires the pipeline packages into cobra commands. Commands load
// the TOML configuration, build a pipeline runner and report progress through
// charmbracelet/log and lipgloss.
//
// # Commands
//
// The main commands are:
//   - render: Draw the procedural catalog and export imagesets
//   - process: Key, crop and anchor generated artwork
//   - preview: Stack accessory layers on a base sprite
//   - config: Print or write the effective configuration
//
// # Logging
//
// The root command owns one logger on stderr, next to the spinner. --verbose
// (-v) lowers it to debug, which adds per-stage timings for every sprite. The
// logger travels on the command context and the runner tags it with the run ID.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Batch runs log from several workers at
// once, so timestamps carry hundredths of a second to keep sprites apart.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports how long a single command step took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time appended, as in
// "Stacked 3 layers (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx. PersistentPreRunE calls it once per command.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, falling back to log.Default
// for code paths run outside a cobra command, such as tests.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
