package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairCloseAllClosesBothDirections(t *testing.T) {
	p := NewPair()
	require.False(t, p.Requests.Closed())
	require.False(t, p.Responses.Closed())

	p.CloseAll()

	require.True(t, p.Requests.Closed())
	require.True(t, p.Responses.Closed())

	_, outcome := p.Requests.TryRecv()
	require.Equal(t, RecvClosed, outcome)

	_, outcome = p.Responses.Drain()
	require.Equal(t, RecvClosed, outcome)
}

func TestPairWiresIndependentChannels(t *testing.T) {
	p := NewPair()
	require.Equal(t, SendOK, p.Requests.TrySend(RequestMessage{Bytes: []byte("req")}))
	require.Equal(t, SendOK, p.Responses.TrySend(ResponseMessage{Bytes: []byte("resp")}))

	msg, outcome := p.Requests.TryRecv()
	require.Equal(t, RecvOK, outcome)
	require.Equal(t, "req", string(msg.Bytes))

	msgs, outcome := p.Responses.Drain()
	require.Equal(t, RecvOK, outcome)
	require.Len(t, msgs, 1)
	require.Equal(t, "resp", string(msgs[0].Bytes))
}
