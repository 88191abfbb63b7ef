package rtlog

import (
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// ZerologLogger wraps a *logiface.Logger[*izerolog.Event], for call sites
// that want zerolog's console/JSON writers and sampling instead of
// stumpy's zero-dependency defaults. It implements the same Debug/Error
// contract as Logger.
type ZerologLogger struct {
	l *logiface.Logger[*izerolog.Event]
}

// NewZerolog wraps an existing logiface logger backed by zerolog.
func NewZerolog(l *logiface.Logger[*izerolog.Event]) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// DefaultZerolog constructs a ZerologLogger writing to os.Stderr through an
// ordinary zerolog.Logger.
func DefaultZerolog() *ZerologLogger {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return NewZerolog(izerolog.L.New(izerolog.L.WithZerolog(zl)))
}

// Debug logs msg at debug level with the given alternating key/value pairs.
func (a *ZerologLogger) Debug(msg string, keyvals ...any) { a.log(a.l.Debug(), msg, keyvals) }

// Error logs msg at error level with the given alternating key/value pairs.
func (a *ZerologLogger) Error(msg string, keyvals ...any) { a.log(a.l.Err(), msg, keyvals) }

func (a *ZerologLogger) log(b *logiface.Builder[*izerolog.Event], msg string, keyvals []any) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		b = b.Any(key, keyvals[i+1])
	}
	b.Log(msg)
}
