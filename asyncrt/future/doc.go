// Package future implements a composable future/promise pipeline: a
// SemiFuture[V] becomes a Future[V] once bound to a scheduler with Via, and
// Future[V] supports a small combinator algebra (Map, FlatMap, Recover,
// InvokeWith, All2/All3, First, Settle) for building pipelines without
// blocking any goroutine until something actually calls Get, Await, or
// Detach.
//
// All2/All3 join heterogeneous futures into a Tuple2/Tuple3 and fail fast:
// the first error discards the tuple and any later completion, matching
// the reference implementation's all() (there a single variadic template
// over std::tuple<Ts...>; Go has no variadic generics, so each arity gets
// its own function). First requires same-typed futures and resolves with
// the first success, or the last error if every future fails. Settle is the
// never-fails counterpart to All2/All3: it collects every same-typed
// future's Result, success or failure, without short-circuiting.
//
// Get blocks the calling goroutine for a terminal Result; Await instead
// returns a channel for select-based consumption. WithDebugStacks toggles
// creation-stack capture on Errors, for diagnosing futures that never
// resolve or that fail unexpectedly during development.
//
// The producer/consumer handoff (SetResult racing SetCallback) is a
// two-arrival rendezvous, the same design the reference implementation's
// future_state.hpp uses: whichever of "the value arrived" and "someone
// wants to know" happens second is the one that schedules the callback, so
// neither side ever blocks waiting for the other. See
// internal/xsync.Rendezvous.
//
// Go has no operator overloading, so the reference implementation's
// `future | op` pipe syntax (syntax/pipe.hpp, `operator|(F f, Op op) {
// return op.Apply(f); }`) has no literal equivalent here: combinators are
// ordinary functions applied to a SemiFuture/Future value, e.g.
// `future.Map(f, fn)` instead of `f | future.Map(fn)`.
package future
