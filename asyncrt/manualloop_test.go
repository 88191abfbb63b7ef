package asyncrt_test

import (
	"testing"

	"github.com/joeycumines/asyncrt"
	"github.com/stretchr/testify/require"
)

func TestManualLoop_RunAllDrainsResubmittedWork(t *testing.T) {
	loop := asyncrt.NewManualLoop()

	var trace []int
	var submit func(n int)
	submit = func(n int) {
		trace = append(trace, n)
		if n < 3 {
			require.NoError(t, asyncrt.SubmitFunc(loop, func() { submit(n + 1) }))
		}
	}
	require.NoError(t, asyncrt.SubmitFunc(loop, func() { submit(0) }))

	loop.RunAll()
	require.Equal(t, []int{0, 1, 2, 3}, trace)
}

func TestManualLoop_RunOneRunsSingleTask(t *testing.T) {
	loop := asyncrt.NewManualLoop()
	var n int
	require.NoError(t, asyncrt.SubmitFunc(loop, func() { n++ }))
	require.NoError(t, asyncrt.SubmitFunc(loop, func() { n++ }))

	require.True(t, loop.RunOne())
	require.Equal(t, 1, n)
	require.True(t, loop.RunOne())
	require.Equal(t, 2, n)
	require.False(t, loop.RunOne())
}

func TestManualLoop_ClosedRejectsSubmit(t *testing.T) {
	loop := asyncrt.NewManualLoop()
	loop.Close()
	err := asyncrt.SubmitFunc(loop, func() {})
	require.ErrorIs(t, err, asyncrt.ErrLoopClosed)
}

func TestManualLoop_PanicHandlerIsolatesTask(t *testing.T) {
	var recovered any
	loop := asyncrt.NewManualLoop(asyncrt.WithPanicHandler(func(r any) { recovered = r }))
	require.NoError(t, asyncrt.SubmitFunc(loop, func() { panic("boom") }))

	var ranAfter bool
	require.NoError(t, asyncrt.SubmitFunc(loop, func() { ranAfter = true }))

	loop.RunAll()
	require.Equal(t, "boom", recovered)
	require.True(t, ranAfter)
}
