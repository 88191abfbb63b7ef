package future_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joeycumines/asyncrt/future"
	"github.com/joeycumines/asyncrt/threadpool"
	"github.com/stretchr/testify/require"
)

func TestFuture_MapChain(t *testing.T) {
	f := future.Value(2).InlineFuture()
	g := future.Map(f, func(v int) int { return v * 3 })
	result := future.Get(g.InlineFuture())
	require.True(t, result.IsOk())
	require.Equal(t, 6, result.Value())
}

func TestFuture_MapPropagatesError(t *testing.T) {
	f := future.Failure[int](future.MakeError(errors.New("boom"))).InlineFuture()
	g := future.Map(f, func(v int) int { return v * 3 })
	result := future.Get(g.InlineFuture())
	require.False(t, result.IsOk())
	require.EqualError(t, result.Error(), "boom")
}

func TestFuture_FlatMapChainsInnerFuture(t *testing.T) {
	f := future.Value(2).InlineFuture()
	g := future.FlatMap(f, func(v int) future.SemiFuture[string] {
		if v > 1 {
			return future.Value("big")
		}
		return future.Value("small")
	})
	result := future.Get(g.InlineFuture())
	require.True(t, result.IsOk())
	require.Equal(t, "big", result.Value())
}

func TestFuture_Recover(t *testing.T) {
	f := future.Failure[int](future.MakeError(errors.New("boom"))).InlineFuture()
	g := future.Recover(f, func(err future.Error) int { return -1 })
	result := future.Get(g.InlineFuture())
	require.True(t, result.IsOk())
	require.Equal(t, -1, result.Value())
}

func TestFuture_MapPanicBecomesError(t *testing.T) {
	f := future.Value(1).InlineFuture()
	g := future.Map(f, func(v int) int { panic("nope") })
	result := future.Get(g.InlineFuture())
	require.False(t, result.IsOk())
	require.Contains(t, result.Error().Error(), "nope")
}

func TestFuture_ViaRunsOnSpecifiedScheduler(t *testing.T) {
	pool := threadpool.New(1)
	pool.Start()
	defer pool.Stop()

	c := future.NewContract[int]()
	var ranOnPool bool
	done := make(chan struct{})

	f := c.Future.Via(pool)
	mapped := future.Map(f, func(v int) int {
		_, ranOnPool = threadpool.Current()
		close(done)
		return v
	})
	future.Detach(mapped.InlineFuture())

	c.Promise.SetValue(1)
	<-done
	require.True(t, ranOnPool)
}

func TestFuture_All3CompletesTupleWhenAllSucceed(t *testing.T) {
	pool := threadpool.New(1)
	pool.Start()
	defer pool.Stop()

	// S6: All(value(1), value(2), spawn(TP, λ. 3)) | get() → (1,2,3).
	a := future.Value(1).InlineFuture()
	b := future.Value(2).InlineFuture()
	c := future.Spawn(pool, func() int { return 3 }).Via(pool)

	result := future.Get(future.All3(a, b, c).InlineFuture())
	require.True(t, result.IsOk())
	tuple := result.Value()
	require.Equal(t, 1, tuple.V1)
	require.Equal(t, 2, tuple.V2)
	require.Equal(t, 3, tuple.V3)
}

func TestFuture_All3ShortCircuitsOnFirstError(t *testing.T) {
	a := future.Value(1).InlineFuture()
	b := future.Failure[int](future.MakeError(errors.New("bad"))).InlineFuture()
	c := future.Value(3).InlineFuture()

	result := future.Get(future.All3(a, b, c).InlineFuture())
	require.False(t, result.IsOk())
	require.EqualError(t, result.Error(), "bad")
}

func TestFuture_FirstSucceedsDespiteEarlierFailure(t *testing.T) {
	// S6: First(failure<int>(e), value(5), value(6)) | get() ∈ {5,6}.
	failed := future.Failure[int](future.MakeError(errors.New("e"))).InlineFuture()
	five := future.Value(5).InlineFuture()
	six := future.Value(6).InlineFuture()

	result := future.Get(future.First(failed, five, six).InlineFuture())
	require.True(t, result.IsOk())
	require.Contains(t, []int{5, 6}, result.Value())
}

func TestFuture_FirstSurfacesLastErrorWhenAllFail(t *testing.T) {
	a := future.Failure[int](future.MakeError(errors.New("first"))).InlineFuture()
	b := future.Failure[int](future.MakeError(errors.New("second"))).InlineFuture()

	result := future.Get(future.First(a, b).InlineFuture())
	require.False(t, result.IsOk())
	require.EqualError(t, result.Error(), "second")
}

func TestFuture_SettleCollectsEveryResultWithoutFailing(t *testing.T) {
	a := future.Value(1).InlineFuture()
	b := future.Value(2).InlineFuture()
	c := future.Failure[int](future.MakeError(errors.New("bad"))).InlineFuture()

	result := future.Get(future.Settle(a, b, c).InlineFuture())
	require.True(t, result.IsOk())
	rs := result.Value()
	require.Len(t, rs, 3)
	require.True(t, rs[0].IsOk())
	require.True(t, rs[1].IsOk())
	require.False(t, rs[2].IsOk())
}

func TestFuture_AwaitReceivesResultOnChannel(t *testing.T) {
	c := future.NewContract[int]()
	f := c.Future.InlineFuture()

	ch := f.Await(context.Background())
	c.Promise.SetValue(7)

	select {
	case r := <-ch:
		require.True(t, r.IsOk())
		require.Equal(t, 7, r.Value())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Await channel")
	}
}

func TestFuture_AwaitRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := future.NewContract[int]()
	f := c.Future.InlineFuture()

	ch := f.Await(ctx)
	cancel()
	c.Promise.SetValue(1)

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Await channel to close")
	}
}

func TestFuture_WithDebugStacksAttachesCreationStack(t *testing.T) {
	future.WithDebugStacks(true)
	defer future.WithDebugStacks(false)

	err := future.MakeError(errors.New("boom"))
	require.NotEmpty(t, err.Stack())
	require.Contains(t, err.Stack(), "future_test.go")
}

func TestFuture_Spawn(t *testing.T) {
	pool := threadpool.New(1)
	pool.Start()
	defer pool.Stop()

	f := future.Spawn(pool, func() int { return 42 })
	result := future.Get(f.InlineFuture())
	require.True(t, result.IsOk())
	require.Equal(t, 42, result.Value())
}

func TestFuture_DetachRoutesUnobservedErrors(t *testing.T) {
	done := make(chan future.Error, 1)
	future.OnUnobservedError(func(err future.Error) { done <- err })
	defer future.OnUnobservedError(nil)

	future.Detach(future.Failure[int](future.MakeError(errors.New("ignored"))).InlineFuture())

	select {
	case err := <-done:
		require.EqualError(t, err, "ignored")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unobserved error")
	}
}
