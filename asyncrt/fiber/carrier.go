package fiber

import "github.com/joeycumines/asyncrt/internal/xsync"

// job is the unit of work handed to a carrier: run fn on behalf of fiber.
type job struct {
	fiber *Fiber
	fn    func(*Fiber)
}

// carrier is a goroutine reused across fibers: between one fiber's
// completion and the next fiber's dispatch, the carrier goroutine sits idle
// in the cache rather than exiting, so a steady stream of short-lived
// fibers doesn't pay a goroutine-spawn cost each time.
type carrier struct {
	jobs chan job
}

func newCarrier() *carrier {
	c := &carrier{jobs: make(chan job)}
	go c.loop()
	return c
}

func (c *carrier) loop() {
	for j := range c.jobs {
		runJob(j)
		cache.put(c)
	}
}

func runJob(j job) {
	defer func() {
		if r := recover(); r != nil {
			j.fiber.panicV = r
		}
		j.fiber.state.Store(int32(stateDone))
		j.fiber.parked <- struct{}{}
	}()
	<-j.fiber.resume
	j.fn(j.fiber)
}

// dispatch assigns fn to run on behalf of f, using an idle carrier from the
// cache if one is available, or spawning a new one otherwise.
func dispatch(f *Fiber, fn func(*Fiber)) {
	cache.get().jobs <- job{fiber: f, fn: fn}
}

var cache = newCarrierCache()

// carrierCache is a spinlock-protected LIFO of idle carriers, mirroring the
// cache-line-padded, pure-atomic style used elsewhere in this runtime for
// hot, short critical sections.
type carrierCache struct {
	mu    xsync.Spinlock
	idle  []*carrier
}

func newCarrierCache() *carrierCache { return &carrierCache{} }

func (c *carrierCache) get() *carrier {
	c.mu.Lock()
	n := len(c.idle)
	if n == 0 {
		c.mu.Unlock()
		return newCarrier()
	}
	cr := c.idle[n-1]
	c.idle[n-1] = nil
	c.idle = c.idle[:n-1]
	c.mu.Unlock()
	return cr
}

func (c *carrierCache) put(cr *carrier) {
	c.mu.Lock()
	c.idle = append(c.idle, cr)
	c.mu.Unlock()
}
