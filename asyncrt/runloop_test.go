package asyncrt_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeycumines/asyncrt"
	"github.com/stretchr/testify/require"
)

func TestRunLoop_SubmitWakesParkedGoroutine(t *testing.T) {
	loop := asyncrt.NewRunLoop()
	loop.Start()
	defer loop.Stop()

	// Give the driving goroutine a chance to park before we submit.
	time.Sleep(10 * time.Millisecond)

	var ran atomic.Bool
	done := make(chan struct{})
	require.NoError(t, asyncrt.SubmitFunc(loop, func() {
		ran.Store(true)
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for submitted task to run")
	}
	require.True(t, ran.Load())
}

func TestRunLoop_StopDrainsThenRejects(t *testing.T) {
	loop := asyncrt.NewRunLoop()
	loop.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, asyncrt.SubmitFunc(loop, func() { wg.Done() }))
	wg.Wait()

	loop.Stop()
	require.True(t, loop.Closed())

	err := asyncrt.SubmitFunc(loop, func() {})
	require.ErrorIs(t, err, asyncrt.ErrRunLoopStopped)
}

func TestRunLoop_StopWithoutStartIsNoop(t *testing.T) {
	loop := asyncrt.NewRunLoop()
	loop.Stop()
}
