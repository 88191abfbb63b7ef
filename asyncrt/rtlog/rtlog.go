// Package rtlog adapts a logiface.Logger to the small Logger interface the
// threadpool package uses for diagnostics, using stumpy as the default
// low-overhead backend.
package rtlog

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger wraps a *logiface.Logger[*stumpy.Event], implementing
// threadpool.Logger (Debug/Error with alternating key/value pairs).
type Logger struct {
	l *logiface.Logger[*stumpy.Event]
}

// New wraps an existing logiface logger.
func New(l *logiface.Logger[*stumpy.Event]) *Logger { return &Logger{l: l} }

// Default constructs a Logger writing newline-delimited JSON to os.Stdout
// via stumpy, matching the zero-configuration backend described in
// SPEC_FULL.md's ambient logging section.
func Default() *Logger {
	return New(stumpy.L.New(stumpy.L.WithStumpy()))
}

// Debug logs msg at debug level with the given alternating key/value pairs.
func (a *Logger) Debug(msg string, keyvals ...any) { a.log(a.l.Debug(), msg, keyvals) }

// Error logs msg at error level with the given alternating key/value pairs.
func (a *Logger) Error(msg string, keyvals ...any) { a.log(a.l.Err(), msg, keyvals) }

func (a *Logger) log(b *logiface.Builder[*stumpy.Event], msg string, keyvals []any) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		b = b.Any(key, keyvals[i+1])
	}
	b.Log(msg)
}
