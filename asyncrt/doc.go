// Package asyncrt provides the core task/scheduler contract shared by every
// execution backend in the runtime: the single-threaded ManualLoop and
// RunLoop, plus the building blocks (ThreadPool, Strand, Fiber, Future)
// implemented in sibling packages.
//
// # Task and Scheduler
//
// A [Task] is a one-shot unit of work: once Run is called, the Task is
// consumed and must not be submitted again. A [Scheduler] accepts Tasks for
// execution, possibly on another goroutine, possibly later. [SafeScheduler]
// is the subset of schedulers whose Submit is safe to call from arbitrary
// goroutines, including from within a running Task - this is the contract
// [strand.New] (see the strand package) requires of its underlying
// scheduler.
//
// # Loops
//
// [ManualLoop] is a single-threaded, manually-driven scheduler: nothing runs
// until the owning goroutine calls RunOne or RunAll. [RunLoop] builds on
// ManualLoop, adding a dedicated goroutine, a channel-based wakeup when work
// is submitted, and a Created/Running/Stopping/Stopped lifecycle mirroring
// [threadpool.ThreadPool]. Neither loop has timers.
//
// Every exported type in this package is safe for concurrent use unless
// documented otherwise.
package asyncrt
