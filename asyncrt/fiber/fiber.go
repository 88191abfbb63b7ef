package fiber

import (
	"fmt"
	"sync/atomic"
)

type state int32

const (
	stateReady state = iota
	stateRunning
	stateSuspended
	stateDone
)

// Fiber is a cooperatively-scheduled coroutine. It is created suspended
// (nothing runs until the first Resume) and every Resume call blocks the
// caller until the fiber either calls Suspend or its body function returns.
//
// A Fiber must only ever be driven (Resumed) by one goroutine at a time;
// concurrent Resume calls on the same Fiber are a programming error. The
// body function, conversely, always runs on the same carrier goroutine for
// the fiber's entire lifetime, so goroutine-local state (recover, runtime
// locked OS thread, and so on) behaves exactly as it would in any other
// long-running goroutine.
type Fiber struct {
	resume chan struct{}
	parked chan struct{}
	state  atomic.Int32
	panicV any
}

// New creates a Fiber that will run fn, passed the Fiber itself so fn can
// call Suspend. The fiber does not start running until the first Resume.
func New(fn func(self *Fiber)) *Fiber {
	f := &Fiber{
		resume: make(chan struct{}),
		parked: make(chan struct{}),
	}
	f.state.Store(int32(stateReady))
	dispatch(f, fn)
	return f
}

// Resume runs the fiber until it next calls Suspend or returns, and reports
// whether the fiber is still alive (false once its body has returned,
// including by panicking). Calling Resume on a Fiber that has
// already finished is a no-op that returns false.
func (f *Fiber) Resume() bool {
	if f.Done() {
		return false
	}
	f.state.Store(int32(stateRunning))
	f.resume <- struct{}{}
	<-f.parked
	return !f.Done()
}

// Suspend yields control back to whichever goroutine called Resume, and
// blocks until Resume is called again. It must only be called from inside
// the fiber's own body function (with the *Fiber the body was invoked
// with), never from another goroutine.
func (f *Fiber) Suspend() {
	f.state.Store(int32(stateSuspended))
	f.parked <- struct{}{}
	<-f.resume
	f.state.Store(int32(stateRunning))
}

// Done reports whether the fiber's body function has returned.
func (f *Fiber) Done() bool {
	return state(f.state.Load()) == stateDone
}

// PanicValue returns the value the fiber's body panicked with, or nil if it
// hasn't finished or finished without panicking. Recovering the panic
// inside the carrier (rather than letting it kill the carrier goroutine)
// is what lets the carrier be returned to the pool; callers that want the
// panic to propagate should re-panic with PanicValue after Resume reports
// the fiber is Done.
func (f *Fiber) PanicValue() any { return f.panicV }

// Rethrow re-panics with the fiber's stored panic value, if any, and is a
// no-op otherwise. Convenient at the call site that drives a fiber to
// completion and wants panics treated as if they'd happened inline.
func (f *Fiber) Rethrow() {
	if f.panicV != nil {
		panic(fmt.Errorf("fiber: panic in fiber body: %v", f.panicV))
	}
}
