package future

import (
	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/internal/xsync"
)

// state is the shared, two-arrival rendezvous behind every Contract: the
// producer (Promise.SetValue/SetError) and the consumer (SetCallback, via
// Future.Map/FlatMap/Get/Detach) can each show up first; whichever arrives
// second schedules the callback. Mirrors future_state.hpp's
// Rendezvous::Arrive gate.
type state[V any] struct {
	rendezvous xsync.Rendezvous
	scheduler  asyncrt.Scheduler
	result     Result[V]
	callback   func(Result[V])
}

func newState[V any]() *state[V] {
	return &state[V]{scheduler: asyncrt.Inline}
}

func (s *state[V]) setScheduler(where asyncrt.Scheduler) { s.scheduler = where }

func (s *state[V]) setResult(r Result[V]) {
	s.result = r
	s.trySchedule()
}

func (s *state[V]) setCallback(cb func(Result[V])) {
	s.callback = cb
	s.trySchedule()
}

func (s *state[V]) trySchedule() {
	if s.rendezvous.Arrive() {
		scheduler := s.scheduler
		if scheduler == nil {
			scheduler = asyncrt.Inline
		}
		cb := s.callback
		result := s.result
		_ = scheduler.Submit(asyncrt.TaskFunc(func() { cb(result) }))
	}
}

// Promise is the write side of a Contract: SetValue/SetError resolve the
// paired SemiFuture exactly once. Resolving a Promise more than once is a
// programming error.
type Promise[V any] struct {
	state *state[V]
}

// SetValue resolves the future with a successful value.
func (p Promise[V]) SetValue(v V) { p.state.setResult(Ok(v)) }

// SetError resolves the future with an error.
func (p Promise[V]) SetError(err Error) { p.state.setResult(Err[V](err)) }

// SetResult resolves the future with r directly.
func (p Promise[V]) SetResult(r Result[V]) { p.state.setResult(r) }

// SemiFuture is a future not yet bound to a scheduler: it must be passed to
// Via before a callback (Map, FlatMap, Get, Detach, ...) can run, since
// those all need to know where to run the continuation.
type SemiFuture[V any] struct {
	state *state[V]
}

// Via binds f to sched, returning a Future whose continuations run on
// sched. Via must be called at most once per SemiFuture.
func (f SemiFuture[V]) Via(sched asyncrt.Scheduler) Future[V] {
	f.state.setScheduler(sched)
	return Future[V]{SemiFuture: f}
}

// InlineFuture binds f to the synchronous Inline scheduler, for the common
// case of a continuation that should run wherever the result becomes
// available rather than hopping to another executor.
func (f SemiFuture[V]) InlineFuture() Future[V] { return f.Via(asyncrt.Inline) }

// Future is a SemiFuture bound to a scheduler. Combinators (Map, FlatMap,
// Recover, ...) are defined on Future rather than SemiFuture because they
// need somewhere to run the continuation.
type Future[V any] struct {
	SemiFuture[V]
}

// Contract is a fresh, linked {SemiFuture, Promise} pair over one shared
// state, mirroring the reference implementation's Contract<T>: a single
// allocation wrapped as both halves.
type Contract[V any] struct {
	Future  SemiFuture[V]
	Promise Promise[V]
}

// NewContract allocates a Contract[V].
func NewContract[V any]() Contract[V] {
	s := newState[V]()
	return Contract[V]{
		Future:  SemiFuture[V]{state: s},
		Promise: Promise[V]{state: s},
	}
}

// Just returns an already-resolved SemiFuture holding result.
func Just[V any](result Result[V]) SemiFuture[V] {
	c := NewContract[V]()
	c.Promise.SetResult(result)
	return c.Future
}

// Value returns an already-resolved, successful SemiFuture.
func Value[V any](v V) SemiFuture[V] { return Just(Ok(v)) }

// Failure returns an already-resolved, failed SemiFuture.
func Failure[V any](err Error) SemiFuture[V] { return Just(Err[V](err)) }

// Spawn runs fn on sched, resolving the returned SemiFuture with fn's
// result (or with the Error recovered from a panic, via CaptureError).
func Spawn[V any](sched asyncrt.Scheduler, fn func() V) SemiFuture[V] {
	c := NewContract[V]()
	_ = sched.Submit(asyncrt.TaskFunc(func() {
		var v V
		err, panicked := CaptureError(func() { v = fn() })
		if panicked {
			c.Promise.SetError(err)
			return
		}
		c.Promise.SetValue(v)
	}))
	return c.Future
}
