package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FabioUrbina/rdkit/pkg/observability"
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
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Drew 3 molecules (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// EnableTracing reports every pipeline stage and cache access to the
// CLI's logger at debug level.
func (c *CLI) EnableTracing() {
	observability.SetRenderHooks(observability.NewLogRenderHooks(c.Logger))
	observability.SetCacheHooks(observability.NewLogCacheHooks(c.Logger))
}
