package asyncrt

// Task is a one-shot unit of work submitted to a [Scheduler]. Run is called
// at most once; after Run returns, the Task is considered consumed and must
// not be resubmitted. Implementations that need to run again should
// construct a fresh Task (or reuse the underlying storage only after Run has
// returned).
//
// Run must not panic for programming errors that the caller cannot recover
// from a cleaner way. ThreadPool and the loops recover a panic from Run and
// pass it to their configured panic handler (ThreadPool also logs it to its
// configured logger); with no handler configured they re-panic. Strand does
// not recover panics itself: a panicking section unwinds into the
// underlying scheduler's worker.
type Task interface {
	Run()
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func()

// Run implements Task.
func (f TaskFunc) Run() { f() }

// Link is an intrusive forward-list node: a single next pointer. No queue in
// this module links Tasks through it; the loops store Tasks by value in
// internal/intrusive's chunked Queue.
type Link struct {
	next *Link
}

// Scheduler accepts Tasks for execution. Submit must not block the caller
// waiting for the Task to run; it either enqueues the Task for later
// execution or returns an error if it cannot accept more work (for example,
// a stopped ThreadPool or a terminated RunLoop).
type Scheduler interface {
	Submit(Task) error
}

// SafeScheduler is a Scheduler whose Submit is safe to call concurrently
// from any goroutine, including from within a Task currently executing on
// the scheduler itself. [strand.New] requires its underlying scheduler to
// satisfy this contract, since Strand.Submit may be called from any
// goroutine, including from a Task running on the underlying scheduler, and
// the submitter that finds the strand empty calls the underlying Submit
// directly.
//
// ThreadPool, Inline, and RunLoop all satisfy SafeScheduler. ManualLoop does
// not: its Submit is safe to call from any goroutine, but submitted Tasks
// only run when the owning goroutine calls RunOne or RunAll, so it only
// implements Scheduler.
type SafeScheduler interface {
	Scheduler
	// safeScheduler is unexported so external types cannot accidentally
	// satisfy this interface without an explicit, documented opt-in.
	safeScheduler()
}

// SubmitFunc submits f to s wrapped as a Task, for the common case of
// scheduling a plain closure instead of a standalone Task implementation.
func SubmitFunc(s Scheduler, f func()) error {
	return s.Submit(TaskFunc(f))
}
