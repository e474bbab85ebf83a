// Package cli implements the clickmap command-line interface.
//
// Commands:
//   - map: draw one Clickventure article
//   - list: print the article URLs found on the listing pages
//   - batch: discover every article and draw each one
//   - cache: manage the page cache
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped ("15:04:05.00") lines to w at level and
// above. Library packages receive it through their WithLogger options.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs a finished step with its elapsed time, e.g.
// "Extracted 42 nodes (812ms)". Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the command's RunE.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default when the
// command ran without the root's PersistentPreRunE.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
