package threadpool

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// Logger is the minimal structured-logging sink ThreadPool uses for panic
// and task-completion diagnostics. *logiface.Logger[*stumpy.Event] (and any
// other logiface backend) satisfies this via a thin adapter; see
// asyncrt/examples for a worked example.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Option configures a ThreadPool constructed with New.
type Option interface {
	apply(*options)
}

type options struct {
	onPanic func(recovered any)
	logger  Logger
	limiter *catrate.Limiter
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithPanicHandler routes panics recovered from Task.Run to handler instead
// of re-panicking on the worker goroutine, isolating one bad Task from the
// rest of the pool.
func WithPanicHandler(handler func(recovered any)) Option {
	return optionFunc(func(o *options) { o.onPanic = handler })
}

// WithLogger attaches a structured logger used for panic and
// task-completion diagnostics.
func WithLogger(logger Logger) Option {
	return optionFunc(func(o *options) { o.logger = logger })
}

// WithOverloadRateLimit caps the rate of Submit calls the pool accepts,
// using a go-catrate Limiter configured with rates. Once the limit is
// exceeded, Submit returns ErrOverloaded instead of enqueueing the Task,
// giving callers an explicit backpressure signal analogous to eventloop's
// OnOverload hook.
func WithOverloadRateLimit(rates map[time.Duration]int) Option {
	return optionFunc(func(o *options) { o.limiter = catrate.NewLimiter(rates) })
}

func resolveOptions(opts []Option) options {
	var cfg options
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}
