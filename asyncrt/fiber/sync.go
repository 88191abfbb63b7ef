package fiber

import (
	"sync"

	"github.com/joeycumines/asyncrt"
)

// waiter pairs a suspended fiber with the scheduler that should resume it.
// Every fiber-aware primitive in this file keeps an intrusive-style list of
// waiters and, instead of calling Resume directly (which would block the
// waking goroutine until the woken fiber next suspends - a direct
// "symmetric transfer" handoff that is cheap on a hand-switched stack but
// not on a goroutine), hands the resumption off to a Scheduler as a Task.
// This keeps Unlock/Signal/Done non-blocking, at the cost of one extra hop
// through the scheduler versus the reference implementation's inline
// handoff.
type waiter struct {
	fiber *Fiber
	sched asyncrt.Scheduler
}

func (w waiter) wake() {
	_ = w.sched.Submit(asyncrt.TaskFunc(func() { w.fiber.Resume() }))
}

// Mutex is a fiber-aware mutual exclusion lock: Lock suspends the calling
// fiber, instead of blocking its carrier goroutine, if the lock is already
// held.
type Mutex struct {
	mu      sync.Mutex
	locked  bool
	waiters []waiter
}

// Lock acquires the mutex, suspending self (via sched to resume it later)
// if it is already held.
func (m *Mutex) Lock(self *Fiber, sched asyncrt.Scheduler) {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.mu.Unlock()
		return
	}
	m.waiters = append(m.waiters, waiter{self, sched})
	m.mu.Unlock()
	self.Suspend()
}

// Unlock releases the mutex, waking the longest-waiting fiber (if any) via
// its scheduler. The lock is considered still held, on the woken fiber's
// behalf, until that fiber itself calls Unlock.
func (m *Mutex) Unlock() {
	m.mu.Lock()
	if len(m.waiters) == 0 {
		m.locked = false
		m.mu.Unlock()
		return
	}
	next := m.waiters[0]
	m.waiters = m.waiters[1:]
	m.mu.Unlock()
	next.wake()
}

// Event is a fiber-aware one-shot gate: fibers that Wait before Set is
// called suspend until it is; Wait after Set returns immediately.
type Event struct {
	mu      sync.Mutex
	set     bool
	waiters []waiter
}

// Wait suspends self until Set has been called, or returns immediately if
// it already has.
func (e *Event) Wait(self *Fiber, sched asyncrt.Scheduler) {
	e.mu.Lock()
	if e.set {
		e.mu.Unlock()
		return
	}
	e.waiters = append(e.waiters, waiter{self, sched})
	e.mu.Unlock()
	self.Suspend()
}

// Set marks the event signaled, waking every fiber currently waiting. Set
// is idempotent; subsequent calls are no-ops.
func (e *Event) Set() {
	e.mu.Lock()
	if e.set {
		e.mu.Unlock()
		return
	}
	e.set = true
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()
	for _, w := range waiters {
		w.wake()
	}
}

// WaitGroup is a fiber-aware analogue of sync.WaitGroup: Wait suspends the
// calling fiber instead of blocking its carrier goroutine.
type WaitGroup struct {
	mu      sync.Mutex
	count   int
	waiters []waiter
}

// Add adjusts the counter by delta. Add must not race with Wait observing a
// counter of zero, same as sync.WaitGroup.
func (g *WaitGroup) Add(delta int) {
	g.mu.Lock()
	g.count += delta
	if g.count < 0 {
		g.mu.Unlock()
		panic("fiber: negative WaitGroup counter")
	}
	done := g.count == 0
	waiters := g.waiters
	if done {
		g.waiters = nil
	}
	g.mu.Unlock()
	if done {
		for _, w := range waiters {
			w.wake()
		}
	}
}

// Done decrements the counter by one.
func (g *WaitGroup) Done() { g.Add(-1) }

// Wait suspends self until the counter reaches zero.
func (g *WaitGroup) Wait(self *Fiber, sched asyncrt.Scheduler) {
	g.mu.Lock()
	if g.count == 0 {
		g.mu.Unlock()
		return
	}
	g.waiters = append(g.waiters, waiter{self, sched})
	g.mu.Unlock()
	self.Suspend()
}

// Barrier is a fiber-aware N-party rendezvous: every participant suspends
// in Arrive until the Nth participant arrives, at which point all are woken
// together.
type Barrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	waiters []waiter
}

// NewBarrier constructs a Barrier for n participants.
func NewBarrier(n int) *Barrier {
	if n < 1 {
		panic("fiber: Barrier requires at least one participant")
	}
	return &Barrier{n: n}
}

// Arrive suspends self until every participant has called Arrive, then
// resets the barrier for reuse.
func (b *Barrier) Arrive(self *Fiber, sched asyncrt.Scheduler) {
	b.mu.Lock()
	b.arrived++
	if b.arrived < b.n {
		b.waiters = append(b.waiters, waiter{self, sched})
		b.mu.Unlock()
		self.Suspend()
		return
	}
	waiters := b.waiters
	b.waiters = nil
	b.arrived = 0
	b.mu.Unlock()
	for _, w := range waiters {
		w.wake()
	}
}

// CondVar is a fiber-aware condition variable, paired with an external
// Mutex the caller must hold across Wait, same contract as sync.Cond.
type CondVar struct {
	mu      sync.Mutex
	waiters []waiter
}

// Wait releases guard, suspends self until Signal or Broadcast wakes it,
// then reacquires guard before returning - mirroring sync.Cond.Wait's
// "release, wait, reacquire" contract.
func (c *CondVar) Wait(self *Fiber, sched asyncrt.Scheduler, guard *Mutex) {
	c.mu.Lock()
	c.waiters = append(c.waiters, waiter{self, sched})
	c.mu.Unlock()

	guard.Unlock()
	self.Suspend()
	guard.Lock(self, sched)
}

// Signal wakes one waiting fiber, if any.
func (c *CondVar) Signal() {
	c.mu.Lock()
	if len(c.waiters) == 0 {
		c.mu.Unlock()
		return
	}
	next := c.waiters[0]
	c.waiters = c.waiters[1:]
	c.mu.Unlock()
	next.wake()
}

// Broadcast wakes every waiting fiber.
func (c *CondVar) Broadcast() {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range waiters {
		w.wake()
	}
}
