// Package status reports interpreter progress outward: structured trace
// logging and the device status LED. The engine only notifies; nothing here
// is ever queried.
package status

import (
	"context"
	"log/slog"

	"github.com/ghostkey/ghostkey/internal/log"
	"github.com/ghostkey/ghostkey/internal/script"
)

// SlogTracer routes line-level trace events and the run summary to slog.
// Line events go to debug (or trace when debug output is off) so a normal
// run stays quiet.
type SlogTracer struct {
	logger *slog.Logger
	debug  bool
}

func NewSlogTracer(logger *slog.Logger, debug bool) *SlogTracer {
	return &SlogTracer{logger: logger, debug: debug}
}

func (t *SlogTracer) Line(num int, raw string, command string, executed bool) {
	level := log.LevelTrace
	if t.debug {
		level = slog.LevelDebug
	}
	t.logger.Log(context.Background(), level, "script line",
		"line", num,
		"raw", raw,
		"command", command,
		"executed", executed,
	)
}

func (t *SlogTracer) Done(s script.Summary) {
	t.logger.Info("script finished",
		"lines", s.LinesTotal,
		"executed", s.Executed,
		"skipped", s.Skipped,
		"elapsedMs", s.Elapsed.Milliseconds(),
	)
}
