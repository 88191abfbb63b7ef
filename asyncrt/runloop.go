package asyncrt

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/asyncrt/internal/xsync"
)

// RunLoop states, numbered the same way eventloop.LoopState is: the ordering
// isn't load-bearing here (there's no legacy wire format to preserve), but
// keeping it lines up the two state machines for anyone cross-referencing.
const (
	runLoopCreated uint64 = iota
	runLoopRunning
	runLoopStopping
	runLoopStopped
)

// ErrRunLoopStopped is returned by Submit once the RunLoop has stopped
// accepting work.
var ErrRunLoopStopped = errors.New("asyncrt: run loop stopped")

// RunLoop is a [ManualLoop] driven by its own goroutine. Submit is safe to
// call from any goroutine and wakes the loop's goroutine if it is parked
// waiting for work, so RunLoop satisfies [SafeScheduler] where ManualLoop
// does not. It follows the same Created/Running/Stopping/Stopped lifecycle
// as [threadpool.ThreadPool].
type RunLoop struct {
	inner  *ManualLoop
	state  *xsync.State
	wake   chan struct{}
	done   chan struct{}
	woken  atomic.Bool
	stopWg sync.WaitGroup
}

func (*RunLoop) safeScheduler() {}

// NewRunLoop constructs a RunLoop in the Created state. Start must be called
// before Submit will schedule work for execution.
func NewRunLoop(opts ...LoopOption) *RunLoop {
	return &RunLoop{
		inner: NewManualLoop(opts...),
		state: xsync.NewState(runLoopCreated),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Start transitions the loop from Created to Running and launches the
// driving goroutine. Calling Start more than once panics.
func (l *RunLoop) Start() {
	if !l.state.CompareAndSwap(runLoopCreated, runLoopRunning) {
		panic("asyncrt: RunLoop.Start called more than once")
	}
	l.stopWg.Add(1)
	go l.run()
}

// Submit enqueues task for execution on the loop's goroutine, waking it if
// it is currently parked. Returns ErrRunLoopStopped once Stop has been
// called (or once the loop has stopped for any other reason).
func (l *RunLoop) Submit(task Task) error {
	if l.state.Load() >= runLoopStopping {
		return ErrRunLoopStopped
	}
	if err := l.inner.Submit(task); err != nil {
		return ErrRunLoopStopped
	}
	l.wakeUp()
	return nil
}

func (l *RunLoop) wakeUp() {
	if l.woken.CompareAndSwap(false, true) {
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}
}

func (l *RunLoop) run() {
	defer l.stopWg.Done()
	defer close(l.done)
	for {
		l.inner.RunAll()
		if l.state.Load() >= runLoopStopping {
			return
		}
		l.woken.Store(false)
		// Re-check after clearing woken, so a Submit racing with the
		// store above is never missed: either it observes woken==false
		// and sends on wake, or it happened before the store and its
		// work is already visible to the RunAll above... except the
		// race is exactly between those two, so check the queue once
		// more before parking.
		// The state is re-checked for the same reason: Stop's wakeUp is a
		// no-op while woken is still true from an earlier Submit.
		if l.inner.Pending() > 0 || l.state.Load() >= runLoopStopping {
			continue
		}
		select {
		case <-l.wake:
		case <-l.stopCh():
		}
		if l.state.Load() >= runLoopStopping {
			l.inner.RunAll()
			return
		}
	}
}

// stopCh is read by run() to notice a Stop call without introducing a
// second channel close race; Stop sends into it via wakeUp after marking
// the state, so run()'s select above always wakes promptly.
func (l *RunLoop) stopCh() <-chan struct{} { return l.wake }

// Stop transitions the loop to Stopping, preventing further Submit calls
// from scheduling new work, then blocks until the driving goroutine has
// drained whatever was already queued and exited. Stop on a loop that was
// never Started returns immediately. Stop is idempotent.
func (l *RunLoop) Stop() {
	if l.state.CompareAndSwap(runLoopCreated, runLoopStopped) || l.state.Load() == runLoopStopped {
		return
	}
	l.state.CompareAndSwap(runLoopRunning, runLoopStopping)
	l.wakeUp()
	<-l.done
	l.state.Store(runLoopStopped)
}

// Closed reports whether the RunLoop's goroutine has exited.
func (l *RunLoop) Closed() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

var _ fmt.Stringer = (*runLoopStateString)(nil)

type runLoopStateString uint64

func (s runLoopStateString) String() string {
	switch uint64(s) {
	case runLoopCreated:
		return "Created"
	case runLoopRunning:
		return "Running"
	case runLoopStopping:
		return "Stopping"
	case runLoopStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// State reports the loop's current lifecycle state as a human-readable
// string, primarily for logging and diagnostics.
func (l *RunLoop) State() string {
	return runLoopStateString(l.state.Load()).String()
}
