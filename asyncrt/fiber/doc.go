// Package fiber emulates stackful coroutines on top of goroutines.
//
// A real stackful fiber implementation (the one this package's design is
// modeled on) allocates a dedicated machine stack per fiber and switches
// between them with hand-written assembly, so suspending a fiber costs a
// register save/restore and nothing else. Go gives user code no access to
// its own stack switching, so this package emulates a Fiber with a real
// goroutine blocked on a pair of unbuffered channels: Resume hands control
// to the fiber's goroutine and blocks until it either suspends or finishes;
// Suspend (called from inside the fiber body) hands control back and blocks
// until the fiber is Resumed again. This is an asymmetric resume/suspend
// handoff realized with channels instead of a context switch; there is no
// symmetric transfer from one fiber straight to another - the sync
// primitives wake a fiber by submitting its Resume to a Scheduler (see
// sync.go).
//
// Trading a hand-rolled stack for a goroutine is not a downgrade everywhere:
// Go's runtime already grows/shrinks the goroutine stack and provides guard
// pages, so the original design's stack allocator and guard-page handling
// have no analogue here - the runtime does it unconditionally. And because
// the fiber's code still runs on a normal goroutine stack, a panic raised
// while the fiber is suspended several frames deep propagates exactly the
// way it would on any other goroutine; the original C++ design has to treat
// exceptions crossing a suspension point as at best restricted, since its
// hand-switched stacks don't interact with the platform unwinder that way.
//
// Idle fiber carriers (goroutines between one fiber's completion and the
// next fiber's dispatch) are pooled in a spinlock-guarded LIFO, mirroring
// the chunk-pool recycling eventloop.ChunkedIngress uses for its queue
// nodes: reuse what's cheap to reuse, pool it, don't reallocate.
package fiber
