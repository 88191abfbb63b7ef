package future

import (
	"context"
	"sync"
	"time"

	"github.com/joeycumines/asyncrt"
)

// Map runs fn on f's value when it resolves, producing a new SemiFuture
// bound to no scheduler yet. If f resolves with an error, fn is skipped and
// the error propagates unchanged. A panic inside fn is captured as the
// result's Error, same as Spawn.
func Map[V, R any](f Future[V], fn func(V) R) SemiFuture[R] {
	c := NewContract[R]()
	f.state.setCallback(func(r Result[V]) {
		if !r.IsOk() {
			c.Promise.SetError(r.Error())
			return
		}
		var out R
		err, panicked := CaptureError(func() { out = fn(r.Value()) })
		if panicked {
			c.Promise.SetError(err)
			return
		}
		c.Promise.SetValue(out)
	})
	return c.Future
}

// FlatMap runs fn on f's value when it resolves, and chains through the
// SemiFuture fn returns, so the result of FlatMap resolves only once the
// inner future does too. This is the sequential composition the reference
// implementation calls Flatten/FlatMap (combine/seq/flatten.hpp).
func FlatMap[V, R any](f Future[V], fn func(V) SemiFuture[R]) SemiFuture[R] {
	c := NewContract[R]()
	f.state.setCallback(func(r Result[V]) {
		if !r.IsOk() {
			c.Promise.SetError(r.Error())
			return
		}
		var inner SemiFuture[R]
		err, panicked := CaptureError(func() { inner = fn(r.Value()) })
		if panicked {
			c.Promise.SetError(err)
			return
		}
		inner.state.setScheduler(asyncrt.Inline)
		inner.state.setCallback(func(innerResult Result[R]) {
			c.Promise.SetResult(innerResult)
		})
	})
	return c.Future
}

// Recover substitutes fn's return value for an error result, passing
// through successful results unchanged. A panic inside fn becomes the new
// error.
func Recover[V any](f Future[V], fn func(Error) V) SemiFuture[V] {
	c := NewContract[V]()
	f.state.setCallback(func(r Result[V]) {
		if r.IsOk() {
			c.Promise.SetResult(r)
			return
		}
		var out V
		err, panicked := CaptureError(func() { out = fn(r.Error()) })
		if panicked {
			c.Promise.SetError(err)
			return
		}
		c.Promise.SetValue(out)
	})
	return c.Future
}

// InvokeWith chains f into a new future produced by calling fn with f's
// resolved value and the supplied extra arguments, analogous to the
// reference implementation's combine/seq/invoke_with.hpp: it behaves like
// FlatMap, except fn additionally receives args, which is convenient for
// reusing one handler across several pipeline stages that otherwise only
// differ by a parameter.
func InvokeWith[V, R, A any](f Future[V], args A, fn func(V, A) SemiFuture[R]) SemiFuture[R] {
	return FlatMap(f, func(v V) SemiFuture[R] { return fn(v, args) })
}

// Get blocks the calling goroutine until f resolves and returns its Result.
// Get is meant for the boundary between the future pipeline and ordinary
// blocking code (main, tests); pipeline stages should use Map/FlatMap
// instead of Get so they don't tie up a goroutine waiting.
func Get[V any](f Future[V]) Result[V] {
	var wg sync.WaitGroup
	wg.Add(1)
	var out Result[V]
	f.state.setCallback(func(r Result[V]) {
		out = r
		wg.Done()
	})
	wg.Wait()
	return out
}

// Await returns a channel that receives f's Result exactly once and is then
// closed, for select-based consumption without a blocking terminal Get.
// Grounded on the teacher's ChainedPromise.ToChannel, generalized from a JS
// promise's settle channel to this runtime's Result[V]. Await does not stop
// f when ctx is cancelled (this runtime has no cancellation primitive to
// stop it with - see First's doc); cancelling ctx instead closes the
// returned channel early, without a value, so a caller waiting on it is not
// stuck forever if it gives up on the future.
func (f Future[V]) Await(ctx context.Context) <-chan Result[V] {
	ch := make(chan Result[V], 1)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		select {
		case <-ctx.Done():
			once.Do(func() { close(ch) })
		case <-stop:
		}
	}()
	f.state.setCallback(func(r Result[V]) {
		once.Do(func() {
			if ctx.Err() == nil {
				ch <- r
			}
			close(ch)
		})
		close(stop)
	})
	return ch
}

// unobservedErrorHandler receives errors from futures resolved via Detach
// that nobody otherwise inspected, analogous to eventloop's unhandled
// rejection tracking (registry.go, checkUnhandledRejections).
var unobservedErrorHandler struct {
	mu sync.Mutex
	fn func(Error)
}

// OnUnobservedError installs fn to be called with the Error of any future
// that resolves with an error after being Detach-ed. Passing nil disables
// reporting. Not installing a handler means Detach silently discards
// errors, same as the zero-value behavior of most fire-and-forget APIs.
func OnUnobservedError(fn func(Error)) {
	unobservedErrorHandler.mu.Lock()
	unobservedErrorHandler.fn = fn
	unobservedErrorHandler.mu.Unlock()
}

// Detach resolves f without anyone waiting on its result, routing any
// terminal error to the handler installed with OnUnobservedError. This is
// the fire-and-forget terminator mentioned in the reference
// implementation's terminate/detach.hpp.
func Detach[V any](f Future[V]) {
	f.state.setCallback(func(r Result[V]) {
		if r.IsOk() {
			return
		}
		unobservedErrorHandler.mu.Lock()
		fn := unobservedErrorHandler.fn
		unobservedErrorHandler.mu.Unlock()
		if fn != nil {
			fn(r.Error())
		}
	})
}

// After returns a SemiFuture that resolves with Unit{} once d has elapsed.
// It is the future-pipeline analogue of eventloop's timer scheduling,
// resolved from a standalone time.AfterFunc timer rather than from a loop's
// own tick, so it can be used whether or not the caller is driving a
// ManualLoop/RunLoop.
func After(d time.Duration) SemiFuture[Unit] {
	c := NewContract[Unit]()
	time.AfterFunc(d, func() { c.Promise.SetValue(Unit{}) })
	return c.Future
}

// Settle waits for every future in fs to resolve, collecting every Result
// (success or failure, in argument order) without ever failing the join
// itself - the "never fails" counterpart to All2/All3's fail-fast tuples,
// grounded on the teacher's JS.AllSettled (eventloop/promise.go). Useful
// when a caller wants to inspect every outcome of a same-typed batch rather
// than stop at the first error.
func Settle[V any](fs ...Future[V]) SemiFuture[[]Result[V]] {
	c := NewContract[[]Result[V]]()
	if len(fs) == 0 {
		c.Promise.SetValue(nil)
		return c.Future
	}
	results := make([]Result[V], len(fs))
	var mu sync.Mutex
	remaining := len(fs)
	for i, f := range fs {
		i := i
		f.state.setCallback(func(r Result[V]) {
			mu.Lock()
			results[i] = r
			remaining--
			done := remaining == 0
			mu.Unlock()
			if done {
				c.Promise.SetValue(results)
			}
		})
	}
	return c.Future
}

// Tuple2 holds the heterogeneous result of All2: the successful value of
// each joined future, in argument order.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Tuple3 holds the heterogeneous result of All3.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// joinAll is the shared fail-fast join core behind All2/All3: it resolves
// once every future has succeeded, or surfaces the first error observed
// and discards every later completion (success or error) past that point.
// Matching the reference implementation's AllState (combine/concur/all.hpp),
// Go's lack of variadic generics means each arity gets its own All-N
// wrapper around this core instead of one variadic template.
type joinAll struct {
	mu        sync.Mutex
	done      bool
	remaining int
}

// fail reports err as the join's terminal error, unless the join has
// already completed (by success or by an earlier error). Returns whether
// this call won and should actually resolve the promise.
func (j *joinAll) fail() bool {
	j.mu.Lock()
	won := !j.done
	j.done = true
	j.mu.Unlock()
	return won
}

// succeed records one more successful arrival and reports whether this was
// the last one needed to complete the join (and the join has not already
// failed).
func (j *joinAll) succeed() bool {
	j.mu.Lock()
	j.remaining--
	won := !j.done && j.remaining == 0
	j.done = j.done || won
	j.mu.Unlock()
	return won
}

// All2 joins two heterogeneous futures into a Tuple2, matching spec.md
// §4.5's all(f1..fn): the tuple resolves once both f1 and f2 succeed; the
// first error cancels the tuple and is surfaced immediately, discarding
// any later completion (Testable Property 10).
func All2[A, B any](f1 Future[A], f2 Future[B]) SemiFuture[Tuple2[A, B]] {
	c := NewContract[Tuple2[A, B]]()
	j := &joinAll{remaining: 2}
	var out Tuple2[A, B]
	f1.state.setCallback(func(r Result[A]) {
		if !r.IsOk() {
			if j.fail() {
				c.Promise.SetError(r.Error())
			}
			return
		}
		out.V1 = r.Value()
		if j.succeed() {
			c.Promise.SetValue(out)
		}
	})
	f2.state.setCallback(func(r Result[B]) {
		if !r.IsOk() {
			if j.fail() {
				c.Promise.SetError(r.Error())
			}
			return
		}
		out.V2 = r.Value()
		if j.succeed() {
			c.Promise.SetValue(out)
		}
	})
	return c.Future
}

// All3 joins three heterogeneous futures into a Tuple3. See All2 for the
// join semantics; S6 (`All(value(1), value(2), spawn(TP, λ. 3)) → (1,2,3)`)
// is the three-future case this function implements directly.
func All3[A, B, C any](f1 Future[A], f2 Future[B], f3 Future[C]) SemiFuture[Tuple3[A, B, C]] {
	c := NewContract[Tuple3[A, B, C]]()
	j := &joinAll{remaining: 3}
	var out Tuple3[A, B, C]
	f1.state.setCallback(func(r Result[A]) {
		if !r.IsOk() {
			if j.fail() {
				c.Promise.SetError(r.Error())
			}
			return
		}
		out.V1 = r.Value()
		if j.succeed() {
			c.Promise.SetValue(out)
		}
	})
	f2.state.setCallback(func(r Result[B]) {
		if !r.IsOk() {
			if j.fail() {
				c.Promise.SetError(r.Error())
			}
			return
		}
		out.V2 = r.Value()
		if j.succeed() {
			c.Promise.SetValue(out)
		}
	})
	f3.state.setCallback(func(r Result[C]) {
		if !r.IsOk() {
			if j.fail() {
				c.Promise.SetError(r.Error())
			}
			return
		}
		out.V3 = r.Value()
		if j.succeed() {
			c.Promise.SetValue(out)
		}
	})
	return c.Future
}

// First resolves with the value of whichever same-typed future in fs
// succeeds first, discarding every other completion past that point. If
// every future fails, First resolves with the last error observed,
// matching Testable Property 11. The other futures are left to resolve on
// their own; First does not cancel them (this runtime's Task/Scheduler
// contract has no cancellation primitive to cancel them with).
func First[V any](fs ...Future[V]) SemiFuture[V] {
	c := NewContract[V]()
	if len(fs) == 0 {
		panic("future: First requires at least one future")
	}
	var (
		mu        sync.Mutex
		done      bool
		failures  int
		lastError Error
	)
	total := len(fs)
	for _, f := range fs {
		f.state.setCallback(func(r Result[V]) {
			mu.Lock()
			if done {
				mu.Unlock()
				return
			}
			if r.IsOk() {
				done = true
				mu.Unlock()
				c.Promise.SetValue(r.Value())
				return
			}
			failures++
			lastError = r.Error()
			allFailed := failures == total
			if allFailed {
				done = true
			}
			mu.Unlock()
			if allFailed {
				c.Promise.SetError(lastError)
			}
		})
	}
	return c.Future
}
