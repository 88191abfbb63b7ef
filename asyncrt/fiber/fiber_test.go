package fiber_test

import (
	"sync"
	"testing"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/fiber"
	"github.com/joeycumines/asyncrt/threadpool"
	"github.com/stretchr/testify/require"
)

func TestFiber_SuspendResumeOrdering(t *testing.T) {
	var trace []string
	f := fiber.New(func(self *fiber.Fiber) {
		trace = append(trace, "a")
		self.Suspend()
		trace = append(trace, "b")
		self.Suspend()
		trace = append(trace, "c")
	})

	require.True(t, f.Resume())
	require.Equal(t, []string{"a"}, trace)

	require.True(t, f.Resume())
	require.Equal(t, []string{"a", "b"}, trace)

	require.False(t, f.Resume())
	require.Equal(t, []string{"a", "b", "c"}, trace)
	require.True(t, f.Done())
}

func TestFiber_PanicIsRecoveredAndReportable(t *testing.T) {
	f := fiber.New(func(self *fiber.Fiber) {
		panic("boom")
	})
	require.False(t, f.Resume())
	require.True(t, f.Done())
	require.Equal(t, "boom", f.PanicValue())
	require.Panics(t, f.Rethrow)
}

func TestFiber_CarriersAreReused(t *testing.T) {
	// Run many short fibers sequentially; if carriers are pooled, this
	// should not leak goroutines proportional to the fiber count. This is
	// a smoke test, not a goroutine-count assertion (which would be
	// flaky), so it just exercises the reuse path for races.
	for i := 0; i < 64; i++ {
		f := fiber.New(func(self *fiber.Fiber) {
			self.Suspend()
		})
		f.Resume()
		f.Resume()
		require.True(t, f.Done())
	}
}

func TestMutex_SerializesFiberCriticalSections(t *testing.T) {
	pool := threadpool.New(4)
	pool.Start()
	defer pool.Stop()

	var mu fiber.Mutex
	var shared int
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		require.NoError(t, asyncrt.SubmitFunc(pool, func() {
			f := fiber.New(func(self *fiber.Fiber) {
				mu.Lock(self, pool)
				shared++
				mu.Unlock()
				wg.Done()
			})
			f.Resume()
		}))
	}

	wg.Wait()
	require.Equal(t, n, shared)
}

func TestEvent_WakesWaiters(t *testing.T) {
	pool := threadpool.New(2)
	pool.Start()
	defer pool.Stop()

	var ev fiber.Event
	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, asyncrt.SubmitFunc(pool, func() {
			f := fiber.New(func(self *fiber.Fiber) {
				ev.Wait(self, pool)
				wg.Done()
			})
			f.Resume()
		}))
	}

	ev.Set()
	wg.Wait()
}
