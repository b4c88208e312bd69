package h1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type emission struct {
	moreBody bool
	data     []byte
}

func TestChunkedFramerSingleChunkInOneCall(t *testing.T) {
	var f chunkedFramer
	var emits []emission
	buf := []byte("5\r\nhello\r\n0\r\n\r\n")
	finished, err := f.drain(&buf, func(moreBody bool, data []byte) {
		emits = append(emits, emission{moreBody, append([]byte(nil), data...)})
	})
	require.NoError(t, err)
	require.True(t, finished)
	require.Len(t, emits, 1)
	require.False(t, emits[0].moreBody)
	require.Equal(t, "hello", string(emits[0].data))
	require.Empty(t, buf)
}

func TestChunkedFramerSplitAcrossThreeReads(t *testing.T) {
	var f chunkedFramer
	var emits []emission
	collect := func(moreBody bool, data []byte) {
		emits = append(emits, emission{moreBody, append([]byte(nil), data...)})
	}

	// First read: only the chunk-size line and part of the body arrive.
	buf := []byte("5\r\nhel")
	finished, err := f.drain(&buf, collect)
	require.NoError(t, err)
	require.False(t, finished)
	require.Empty(t, emits)

	// Second read completes the chunk body and trailing CRLF, but the
	// buffer is re-sliced fresh from the connection's perspective: the
	// framer only ever sees what has not yet been consumed, so the
	// unresolved partial chunk is retried from the start with the
	// remainder appended.
	buf = append([]byte("5\r\nhel"), []byte("lo\r\n")...)
	finished, err = f.drain(&buf, collect)
	require.NoError(t, err)
	require.False(t, finished)

	// Third read: terminating zero-chunk.
	buf = []byte("0\r\n\r\n")
	finished, err = f.drain(&buf, collect)
	require.NoError(t, err)
	require.True(t, finished)
	require.NotEmpty(t, emits)

	var body []byte
	for _, e := range emits {
		body = append(body, e.data...)
	}
	require.Equal(t, "hello", string(body))
}

func TestChunkedFramerFlushesStagingOverFloor(t *testing.T) {
	var f chunkedFramer
	var emits []emission
	big := make([]byte, MinFlush+10)
	for i := range big {
		big[i] = 'a'
	}
	f.staging = big

	buf := []byte("incomplete-chunk-size-line-without-crlf")
	finished, err := f.drain(&buf, func(moreBody bool, data []byte) {
		emits = append(emits, emission{moreBody, data})
	})
	require.NoError(t, err)
	require.False(t, finished)
	require.Len(t, emits, 1)
	require.True(t, emits[0].moreBody)
	require.Len(t, emits[0].data, MinFlush+10)
	require.Nil(t, f.staging)
}

func TestChunkedFramerRejectsInvalidChunkSize(t *testing.T) {
	var f chunkedFramer
	buf := []byte("zz\r\nbody\r\n")
	_, err := f.drain(&buf, func(bool, []byte) {})
	require.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestChunkedFramerRejectsBadChunkTerminator(t *testing.T) {
	var f chunkedFramer
	buf := []byte("5\r\nhelloXX0\r\n\r\n")
	_, err := f.drain(&buf, func(bool, []byte) {})
	require.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestParseHexChunkSize(t *testing.T) {
	n, ok := parseHexChunkSize([]byte("1a"))
	require.True(t, ok)
	require.Equal(t, 26, n)

	_, ok = parseHexChunkSize([]byte("zz"))
	require.False(t, ok)

	_, ok = parseHexChunkSize([]byte(""))
	require.False(t, ok)
}
