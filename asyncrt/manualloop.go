package asyncrt

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joeycumines/asyncrt/internal/intrusive"
)

// ErrLoopClosed is returned by Submit once the loop has been closed.
var ErrLoopClosed = errors.New("asyncrt: loop closed")

// ManualLoop is a single-threaded, manually-driven task queue. Tasks
// submitted from any goroutine are appended to an internal FIFO; nothing
// runs until the owning goroutine calls RunOne or RunAll. This is the
// building block [RunLoop] wraps with its own goroutine and wakeup
// mechanism, and it is also useful standalone for tests and for embedding a
// cooperative scheduler inside code that already owns a driving loop (an
// existing poll/dispatch loop, a fiber's resumption point, and so on).
//
// ManualLoop implements [Scheduler] but not [SafeScheduler]: Submit takes an
// internal mutex, so it is safe to call concurrently, but it is not safe to
// call RunOne/RunAll concurrently with each other - only one goroutine
// may drive the loop at a time.
type ManualLoop struct {
	mu     sync.Mutex
	queue  intrusive.Queue[Task]
	closed bool

	onPanic func(recovered any)
}

// NewManualLoop constructs a ready-to-use ManualLoop. opts configure panic
// handling and other optional behavior; see [LoopOption].
func NewManualLoop(opts ...LoopOption) *ManualLoop {
	cfg := resolveLoopOptions(opts)
	return &ManualLoop{onPanic: cfg.onPanic}
}

// Submit enqueues task for execution on a future RunOne/RunAll call.
// Safe to call from any goroutine, including from within a Task currently
// executing on this loop. Returns ErrLoopClosed if the loop has been closed.
func (l *ManualLoop) Submit(task Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLoopClosed
	}
	l.queue.Push(task)
	return nil
}

// RunOne pops and runs a single pending Task, reporting whether one was
// available. Must only be called from the goroutine driving the loop.
func (l *ManualLoop) RunOne() bool {
	l.mu.Lock()
	task, ok := l.queue.Pop()
	l.mu.Unlock()
	if !ok {
		return false
	}
	l.safeRun(task)
	return true
}

// RunAll drains and runs every Task pending at the moment of the call,
// including any Tasks those Tasks themselves submit (a Task resubmitting
// itself or scheduling a follow-up is run in the same RunAll). It returns
// once the queue is observed empty.
func (l *ManualLoop) RunAll() {
	for l.RunOne() {
	}
}

// Pending reports the number of Tasks currently queued.
func (l *ManualLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// Close marks the loop closed: further Submit calls fail with
// ErrLoopClosed. Tasks already queued are not discarded; call RunAll before
// or after Close to drain them as needed.
func (l *ManualLoop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

func (l *ManualLoop) safeRun(task Task) {
	defer func() {
		if r := recover(); r != nil {
			if l.onPanic != nil {
				l.onPanic(r)
				return
			}
			panic(fmt.Errorf("asyncrt: unrecovered panic in Task: %v", r))
		}
	}()
	task.Run()
}

// LoopOption configures a ManualLoop or RunLoop. See WithPanicHandler.
type LoopOption interface {
	apply(*loopOptions)
}

type loopOptions struct {
	onPanic func(recovered any)
}

type loopOptionFunc func(*loopOptions)

func (f loopOptionFunc) apply(o *loopOptions) { f(o) }

// WithPanicHandler routes panics recovered from Task.Run to handler instead
// of re-panicking on the loop's goroutine. This mirrors eventloop's
// safeExecute behavior of isolating one faulty Task from the rest of the
// loop.
func WithPanicHandler(handler func(recovered any)) LoopOption {
	return loopOptionFunc(func(o *loopOptions) { o.onPanic = handler })
}

func resolveLoopOptions(opts []LoopOption) loopOptions {
	var cfg loopOptions
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}
