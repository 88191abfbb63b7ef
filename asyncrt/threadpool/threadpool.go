package threadpool

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/internal/xsync"
	catrate "github.com/joeycumines/go-catrate"
)

const (
	stateCreated uint64 = iota
	stateRunning
	stateStopping
	stateStopped
)

// ErrStopped is returned by Submit once the pool has stopped accepting
// work.
var ErrStopped = errors.New("threadpool: stopped")

// ThreadPool runs Tasks on a fixed number of worker goroutines, all reading
// from one shared queue. It satisfies asyncrt.SafeScheduler: Submit may be
// called from any goroutine, including from a Task currently running on the
// pool itself.
type ThreadPool struct {
	mu      sync.Mutex
	cond    sync.Cond
	queue   []asyncrt.Task
	state   *xsync.State
	workers int
	wg      sync.WaitGroup
	onPanic func(recovered any)
	logger  Logger
	limiter *catrate.Limiter
}

func (*ThreadPool) safeScheduler() {}

type threadpoolKey struct{}

// Current returns the ThreadPool the calling goroutine is a worker of, and
// true, or (nil, false) if the calling goroutine is not a pool worker. Each
// worker registers its goroutine ID (parsed from the runtime.Stack header,
// see goroutineID) for the lifetime of its run loop, so it is only populated
// for code running inside Task.Run on a worker goroutine spawned by this
// package.
func Current() (*ThreadPool, bool) {
	p, ok := currentPool.Load().(*ThreadPool)
	return p, ok
}

var currentPool threadLocal

// threadLocal is a minimal goroutine-scoped slot: a mutex-guarded map keyed
// by goroutine ID. A per-goroutine token stored in a context would be the
// idiomatic alternative, but Current() is meant to be callable without
// threading a context through every Task, matching how eventloop's
// isLoopThread answers "am I on the loop goroutine" without a context
// parameter. Workers record themselves for the lifetime of their run loop.
type threadLocal struct {
	mu sync.Mutex
	m  map[int64]*ThreadPool
}

func (t *threadLocal) set(id int64, p *ThreadPool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m == nil {
		t.m = make(map[int64]*ThreadPool)
	}
	if p == nil {
		delete(t.m, id)
		return
	}
	t.m[id] = p
}

func (t *threadLocal) Load() any {
	id := goroutineID()
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.m[id]; ok {
		return p
	}
	return nil
}

// New constructs a ThreadPool with the given number of workers (minimum 1)
// in the Created state. Tasks submitted before Start are queued and run once
// Start has spawned the workers.
func New(workers int, opts ...Option) *ThreadPool {
	if workers < 1 {
		workers = 1
	}
	cfg := resolveOptions(opts)
	p := &ThreadPool{
		state:   xsync.NewState(stateCreated),
		workers: workers,
		onPanic: cfg.onPanic,
		logger:  cfg.logger,
		limiter: cfg.limiter,
	}
	p.cond.L = &p.mu
	return p
}

// Start transitions the pool from Created to Running and spawns its worker
// goroutines. Calling Start more than once panics.
func (p *ThreadPool) Start() {
	if !p.state.CompareAndSwap(stateCreated, stateRunning) {
		panic("threadpool: Start called more than once")
	}
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker()
	}
}

// Submit enqueues task for execution by whichever worker goroutine becomes
// available first. Returns ErrStopped once Stop has been called.
func (p *ThreadPool) Submit(task asyncrt.Task) error {
	if p.state.Load() >= stateStopping {
		return ErrStopped
	}
	if p.limiter != nil {
		if _, ok := p.limiter.Allow("submit"); !ok {
			return fmt.Errorf("threadpool: %w", ErrOverloaded)
		}
	}
	p.mu.Lock()
	if p.state.Load() >= stateStopping {
		p.mu.Unlock()
		return ErrStopped
	}
	p.queue = append(p.queue, task)
	p.mu.Unlock()
	p.cond.Signal()
	return nil
}

// ErrOverloaded is returned by Submit when an optional rate limiter
// configured with WithOverloadRateLimit rejects the submission.
var ErrOverloaded = errors.New("submission rate exceeded")

// Stop transitions the pool to Stopping so Submit stops accepting new work,
// then blocks until every already-queued Task has run and every worker
// goroutine has exited. Stop is idempotent.
func (p *ThreadPool) Stop() {
	if p.state.Load() == stateCreated {
		p.state.Store(stateStopped)
		return
	}
	p.state.TransitionAny([]uint64{stateRunning}, stateStopping)
	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
	p.state.Store(stateStopped)
}

func (p *ThreadPool) worker() {
	defer p.wg.Done()
	id := goroutineID()
	currentPool.set(id, p)
	defer currentPool.set(id, nil)

	for {
		task, ok := p.next()
		if !ok {
			return
		}
		p.runSafely(task)
	}
}

// next blocks until a Task is available, or the pool is stopping and the
// queue has been drained, in which case ok is false.
func (p *ThreadPool) next() (asyncrt.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 {
		if p.state.Load() >= stateStopping {
			return nil, false
		}
		p.cond.Wait()
	}
	task := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return task, true
}

func (p *ThreadPool) runSafely(task asyncrt.Task) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("threadpool: panic in task", "panic", r)
			}
			if p.onPanic != nil {
				p.onPanic(r)
				return
			}
			panic(fmt.Errorf("threadpool: unrecovered panic in Task: %v", r))
		}
	}()
	task.Run()
	if p.logger != nil {
		p.logger.Debug("threadpool: task completed", "duration", time.Since(start))
	}
}
