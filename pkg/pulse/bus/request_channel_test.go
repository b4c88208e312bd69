package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestChannelHandoffOnSubscribedWaker(t *testing.T) {
	ch := NewRequestChannel()
	var got RequestMessage
	var gotOK bool
	ch.Subscribe(func(msg RequestMessage, ok bool) {
		got = msg
		gotOK = ok
	})

	outcome := ch.TrySend(RequestMessage{MoreBody: true, Bytes: []byte("hello")})
	require.Equal(t, SendOK, outcome)
	require.True(t, gotOK)
	require.Equal(t, "hello", string(got.Bytes))

	// The waker was consumed by hand-off; a recv now finds nothing queued.
	_, recvOutcome := ch.TryRecv()
	require.Equal(t, RecvEmpty, recvOutcome)
}

func TestRequestChannelQueuesWithoutWaker(t *testing.T) {
	ch := NewRequestChannel()
	require.Equal(t, SendOK, ch.TrySend(RequestMessage{Bytes: []byte("a")}))
	require.Equal(t, SendOK, ch.TrySend(RequestMessage{Bytes: []byte("b")}))
	require.Equal(t, SendFull, ch.TrySend(RequestMessage{Bytes: []byte("c")}))

	msg, outcome := ch.TryRecv()
	require.Equal(t, RecvOK, outcome)
	require.Equal(t, "a", string(msg.Bytes))

	msg, outcome = ch.TryRecv()
	require.Equal(t, RecvOK, outcome)
	require.Equal(t, "b", string(msg.Bytes))

	_, outcome = ch.TryRecv()
	require.Equal(t, RecvEmpty, outcome)
}

func TestRequestChannelCloseWakesPendingSubscriber(t *testing.T) {
	ch := NewRequestChannel()
	fired := false
	ch.Subscribe(func(_ RequestMessage, ok bool) {
		fired = true
		require.False(t, ok)
	})
	ch.Close()
	require.True(t, fired)

	_, outcome := ch.TryRecv()
	require.Equal(t, RecvClosed, outcome)
}

func TestRequestChannelSendAfterCloseIsAbsorbed(t *testing.T) {
	ch := NewRequestChannel()
	ch.Close()
	outcome := ch.TrySend(RequestMessage{Bytes: []byte("x")})
	require.Equal(t, SendClosed, outcome)
}
