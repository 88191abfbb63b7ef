package xsync

import "sync/atomic"

// Rendezvous is a two-arrival gate: the first of the producer and the
// consumer to Arrive loses the race and simply returns false, leaving the
// second arrival (whichever side it turns out to be) to proceed. It is the
// primitive behind the future package's shared state (its producer/consumer
// handoff) - modeled
// on the Rendezvous used by the reference implementation's future_state to
// decide, without a lock, whether a callback should be scheduled
// immediately (both sides have already arrived) or deferred until the other
// side shows up.
//
// The zero value is a rendezvous with nobody arrived yet.
type Rendezvous struct {
	count atomic.Int32
}

// Arrive records one arrival and reports whether this call was the second
// (winning) one. It must not be called more than twice on the same
// Rendezvous.
func (r *Rendezvous) Arrive() bool {
	return r.count.Add(1) == 2
}
