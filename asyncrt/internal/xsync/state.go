// Package xsync holds the small lock-free primitives shared by the asyncrt
// root package (RunLoop), and the threadpool, fiber, and future packages: a
// cache-line padded atomic state machine, a two-arrival rendezvous gate, and
// a CAS spinlock.
package xsync

import "sync/atomic"

// State is a lock-free, cache-line padded state machine. Instances must not
// be copied after first use.
type State struct { //nolint:govet
	_ [64]byte
	v atomic.Uint64
	_ [56]byte
}

// NewState returns a State initialized to initial.
func NewState(initial uint64) *State {
	s := &State{}
	s.v.Store(initial)
	return s
}

// Load returns the current value.
func (s *State) Load() uint64 { return s.v.Load() }

// Store unconditionally sets the value. Only use this for irreversible
// (terminal) transitions; reversible transitions must go through
// CompareAndSwap to avoid racing with a concurrent transition out of the
// expected source state.
func (s *State) Store(v uint64) { s.v.Store(v) }

// CompareAndSwap attempts to move the state from "from" to "to", returning
// whether it succeeded.
func (s *State) CompareAndSwap(from, to uint64) bool {
	return s.v.CompareAndSwap(from, to)
}

// TransitionAny attempts a CompareAndSwap from any of validFrom to to,
// trying each candidate source in order until one succeeds.
func (s *State) TransitionAny(validFrom []uint64, to uint64) bool {
	for _, from := range validFrom {
		if s.v.CompareAndSwap(from, to) {
			return true
		}
	}
	return false
}
