package viewport

import (
	"log/slog"
	"os"
)

// dispatchStats counts per-frame dispatcher activity.
// Only logged when debug mode is on.
type dispatchStats struct {
	events   int
	consumed int
	faults   int
}

// defaultLogger writes text records at Info and above to stderr.
func defaultLogger() *slog.Logger {
	return newLogger(slog.LevelInfo)
}

func newLogger(level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", "viewport")
}

// debugLog prints the frame's dispatch counts.
func (d *Dispatcher) debugLog(frame int64) {
	if d.stats == (dispatchStats{}) {
		return
	}
	d.logger.Debug("frame",
		"frame", frame,
		"events", d.stats.events,
		"consumed", d.stats.consumed,
		"faults", d.stats.faults,
		"listeners", len(d.listeners))
}

// parseLevel maps a config log level name to a slog level. Unknown names
// fall back to Info.
func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
