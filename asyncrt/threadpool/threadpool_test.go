package threadpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/threadpool"
	"github.com/stretchr/testify/require"
)

func TestThreadPool_RunsSubmittedTasks(t *testing.T) {
	pool := threadpool.New(4)
	pool.Start()
	defer pool.Stop()

	const n = 200
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, asyncrt.SubmitFunc(pool, func() {
			count.Add(1)
			wg.Done()
		}))
	}
	wg.Wait()
	require.EqualValues(t, n, count.Load())
}

func TestThreadPool_StopDrainsQueueThenRejects(t *testing.T) {
	pool := threadpool.New(1)
	pool.Start()

	var ran atomic.Bool
	require.NoError(t, asyncrt.SubmitFunc(pool, func() { ran.Store(true) }))
	pool.Stop()
	require.True(t, ran.Load())

	err := asyncrt.SubmitFunc(pool, func() {})
	require.ErrorIs(t, err, threadpool.ErrStopped)
}

func TestThreadPool_DoubleStartPanics(t *testing.T) {
	pool := threadpool.New(1)
	pool.Start()
	defer pool.Stop()
	require.Panics(t, func() { pool.Start() })
}

func TestThreadPool_PanicHandlerIsolatesFaultyTask(t *testing.T) {
	var recovered atomic.Value
	pool := threadpool.New(1, threadpool.WithPanicHandler(func(r any) {
		recovered.Store(r)
	}))
	pool.Start()
	defer pool.Stop()

	require.NoError(t, asyncrt.SubmitFunc(pool, func() { panic("boom") }))

	var ok bool
	var ranAfter atomic.Bool
	for i := 0; i < 100; i++ {
		if recovered.Load() != nil {
			ok = true
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, ok, "panic handler should have been invoked")
	require.Equal(t, "boom", recovered.Load())

	require.NoError(t, asyncrt.SubmitFunc(pool, func() { ranAfter.Store(true) }))
	for i := 0; i < 100 && !ranAfter.Load(); i++ {
		time.Sleep(time.Millisecond)
	}
	require.True(t, ranAfter.Load(), "pool should keep running after an isolated panic")
}

func TestThreadPool_CurrentIdentifiesWorkerGoroutine(t *testing.T) {
	pool := threadpool.New(1)
	pool.Start()
	defer pool.Stop()

	var gotSelf bool
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, asyncrt.SubmitFunc(pool, func() {
		defer wg.Done()
		p, ok := threadpool.Current()
		gotSelf = ok && p == pool
	}))
	wg.Wait()
	require.True(t, gotSelf)

	_, ok := threadpool.Current()
	require.False(t, ok, "calling goroutine is not a worker")
}
