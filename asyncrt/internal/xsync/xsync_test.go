package xsync_test

import (
	"sync"
	"testing"

	"github.com/joeycumines/asyncrt/internal/xsync"
	"github.com/stretchr/testify/require"
)

func TestRendezvous_OnlySecondArrivalWins(t *testing.T) {
	var r xsync.Rendezvous
	require.False(t, r.Arrive())
	require.True(t, r.Arrive())
}

func TestRendezvous_ConcurrentArrivalsExactlyOneWinner(t *testing.T) {
	for i := 0; i < 1000; i++ {
		var r xsync.Rendezvous
		var wins int32
		var wg sync.WaitGroup
		wg.Add(2)
		for j := 0; j < 2; j++ {
			go func() {
				defer wg.Done()
				if r.Arrive() {
					wins++
				}
			}()
		}
		wg.Wait()
		require.EqualValues(t, 1, wins)
	}
}

func TestState_TransitionAny(t *testing.T) {
	s := xsync.NewState(0)
	require.True(t, s.TransitionAny([]uint64{0, 1}, 2))
	require.EqualValues(t, 2, s.Load())
	require.False(t, s.TransitionAny([]uint64{0, 1}, 3))
}

func TestSpinlock_MutualExclusion(t *testing.T) {
	var mu xsync.Spinlock
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 100, counter)
}
