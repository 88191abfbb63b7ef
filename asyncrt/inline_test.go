package asyncrt_test

import (
	"testing"

	"github.com/joeycumines/asyncrt"
	"github.com/stretchr/testify/require"
)

func TestInline_RunsSynchronously(t *testing.T) {
	var ran bool
	require.NoError(t, asyncrt.SubmitFunc(asyncrt.Inline, func() { ran = true }))
	require.True(t, ran)
}
