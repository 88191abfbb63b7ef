// Package strand implements a wait-free serialization decorator over an
// asyncrt.SafeScheduler: tasks submitted through a Strand run one at a time,
// in submission order, without any submitter ever blocking on another.
//
// The design is the reference implementation's Strand protocol exactly
// (include/exe/runtime/strand.hpp's description, §4.3 of the runtime's own
// design notes): the strand keeps a virtual singly-linked chain of pending
// critical sections and one atomic tail pointer. A submitter does a single
// atomic exchange of the tail; if it observes a non-nil previous tail, it
// links itself after it and is done - no lock, no CAS loop, no call into the
// underlying scheduler. Only the submitter that observes a nil previous tail
// (the "head") pays the cost of scheduling a runner task. The runner walks
// the chain, running one section at a time, and detects the chain going
// empty by a CompareAndSwap(tail, current, nil) race against the next
// submitter's exchange; if a submitter has already exchanged in a new tail
// but hasn't yet linked (a store still in flight), the runner spins briefly
// on that link instead of giving up, since the linker is guaranteed to land
// its store (it already won the tail exchange).
package strand

import (
	"runtime"
	"sync/atomic"

	"github.com/joeycumines/asyncrt"
)

// section is one node of the strand's virtual chain: a pending Task plus
// the pointer the next submitter links through.
type section struct {
	next atomic.Pointer[section]
	task asyncrt.Task
}

// Strand decorates an asyncrt.SafeScheduler, serializing Tasks submitted
// through it: at most one Task runs at a time, in submission order, even
// though the underlying scheduler may run Tasks concurrently across
// multiple goroutines (a ThreadPool, for instance). Strand itself satisfies
// asyncrt.SafeScheduler.
type Strand struct {
	underlying asyncrt.SafeScheduler
	tail       atomic.Pointer[section]
}

func (*Strand) safeScheduler() {}

// New wraps underlying in a Strand. underlying must satisfy
// asyncrt.SafeScheduler, since Submit may be called from any goroutine
// (including from a Task running on underlying), and the submitter that
// finds the strand empty calls underlying.Submit directly.
func New(underlying asyncrt.SafeScheduler) *Strand {
	return &Strand{underlying: underlying}
}

// Underlying returns the scheduler this Strand wraps.
func (s *Strand) Underlying() asyncrt.SafeScheduler { return s.underlying }

// Submit chains task onto the strand. Submission is wait-free: one atomic
// exchange of the tail, plus - only for the 2nd and later concurrent
// submitter - a single release store linking the previous tail to this
// section. Only the submitter that finds the strand empty (a nil previous
// tail) calls into the underlying scheduler at all.
func (s *Strand) Submit(task asyncrt.Task) error {
	sec := &section{task: task}
	prev := s.tail.Swap(sec)
	if prev != nil {
		prev.next.Store(sec)
		return nil
	}
	return s.underlying.Submit(asyncrt.TaskFunc(func() { s.drain(sec) }))
}

// drain runs the chain starting at current until it observes the chain
// empty, per the protocol in the package doc: run current, then try to
// advance to current.next; if that's nil, race a CompareAndSwap(tail,
// current, nil) against any submitter that has already exchanged in a new
// tail - win means the chain was actually empty and this runner exits, lose
// means a linker is in flight and its store is spun on until it lands.
func (s *Strand) drain(current *section) {
	for {
		current.task.Run()

		next := current.next.Load()
		if next == nil {
			if s.tail.CompareAndSwap(current, nil) {
				return
			}
			for next == nil {
				runtime.Gosched()
				next = current.next.Load()
			}
		}
		current = next
	}
}
