package xsync

import (
	"runtime"
	"sync/atomic"
)

// Spinlock is a CAS-based mutual exclusion lock for critical sections short
// enough that parking on a channel or sync.Mutex would cost more than a few
// spins. fiber's carrierCache uses one to guard its idle-carrier freelist,
// mirroring the cache-line-padded, pure-atomic style of [State].
//
// The zero value is an unlocked Spinlock.
type Spinlock struct {
	locked atomic.Bool
}

// Lock spins until the lock is acquired.
func (s *Spinlock) Lock() {
	for !s.locked.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Unlock on an already-unlocked Spinlock is a
// programming error and panics, same as sync.Mutex.
func (s *Spinlock) Unlock() {
	if !s.locked.CompareAndSwap(true, false) {
		panic("xsync: unlock of unlocked Spinlock")
	}
}
