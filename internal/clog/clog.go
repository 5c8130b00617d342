package clog

import (
	"log"
	"os"
)

// Logger gates trace output on Enabled; when Enabled is false every method
// is a no-op, so callers can unconditionally call Tracef without a
// surrounding `if opts.Trace` at every call site.
type Logger struct {
	Enabled bool
	out     *log.Logger
}

// New returns a Logger writing to stderr, enabled per the given flag
// (typically config.Options.Trace).
func New(enabled bool) *Logger {
	return &Logger{Enabled: enabled, out: log.New(os.Stderr, "corefront: ", log.Ltime)}
}

// Tracef logs a formatted trace line when the logger is enabled.
func (l *Logger) Tracef(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	l.out.Printf(format, args...)
}
