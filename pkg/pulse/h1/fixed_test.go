package h1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrainFixedLengthExactMatchEmitsFinalChunk(t *testing.T) {
	var emits []emission
	rest, remaining := drainFixedLength([]byte("hello"), 5, func(moreBody bool, data []byte) {
		emits = append(emits, emission{moreBody, append([]byte(nil), data...)})
	})
	require.Empty(t, rest)
	require.Equal(t, int64(0), remaining)
	require.Len(t, emits, 1)
	require.False(t, emits[0].moreBody)
	require.Equal(t, "hello", string(emits[0].data))
}

func TestDrainFixedLengthPartialBelowFloorWaits(t *testing.T) {
	var emits []emission
	rest, remaining := drainFixedLength([]byte("hel"), 100, func(moreBody bool, data []byte) {
		emits = append(emits, emission{moreBody, data})
	})
	require.Equal(t, "hel", string(rest))
	require.Equal(t, int64(100), remaining)
	require.Empty(t, emits)
}

func TestDrainFixedLengthPartialOverFloorFlushes(t *testing.T) {
	big := make([]byte, MinFlush+1)
	for i := range big {
		big[i] = 'x'
	}
	var emits []emission
	rest, remaining := drainFixedLength(big, int64(MinFlush*10), func(moreBody bool, data []byte) {
		emits = append(emits, emission{moreBody, append([]byte(nil), data...)})
	})
	require.Empty(t, rest)
	require.Equal(t, int64(MinFlush*10-(MinFlush+1)), remaining)
	require.Len(t, emits, 1)
	require.True(t, emits[0].moreBody)
	require.Len(t, emits[0].data, MinFlush+1)
}

func TestDrainFixedLengthMoreThanRemainingTrimsExcessToNextRequest(t *testing.T) {
	rest, remaining := drainFixedLength([]byte("helloEXTRA"), 5, func(moreBody bool, data []byte) {
		require.Equal(t, "hello", string(data))
	})
	require.Equal(t, "EXTRA", string(rest))
	require.Equal(t, int64(0), remaining)
}
