package proto

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/pulse/pkg/pulse/bridge"
	"github.com/yourusername/pulse/pkg/pulse/transport"
)

type recordingProtocol struct {
	received     [][]byte
	writeOut     []byte
	lostCalled   bool
	nextErr      error
}

func (p *recordingProtocol) DataReceived(buf *[]byte) error {
	p.received = append(p.received, append([]byte(nil), *buf...))
	*buf = (*buf)[:0]
	return p.nextErr
}

func (p *recordingProtocol) FillWriteBuffer(out *[]byte) {
	*out = append(*out, p.writeOut...)
}

func (p *recordingProtocol) ConnectionLost() { p.lostCalled = true }

func newTestAutoProtocol(p Protocol) *AutoProtocol {
	lb := bridge.New(bridge.Hooks{}, 3, 0)
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}
	tr := transport.New(lb, addr, addr, false)
	return New(tr, p)
}

func TestReadBufferAcquireGrantsSpareCapacity(t *testing.T) {
	a := newTestAutoProtocol(&recordingProtocol{})
	tail := a.ReadBufferAcquire()
	require.GreaterOrEqual(t, len(tail), minSpare)
}

func TestReadBufferFilledDispatchesExactBytesReceived(t *testing.T) {
	rp := &recordingProtocol{}
	a := newTestAutoProtocol(rp)

	tail := a.ReadBufferAcquire()
	n := copy(tail, []byte("hello"))
	require.NoError(t, a.ReadBufferFilled(n))

	require.Len(t, rp.received, 1)
	require.Equal(t, "hello", string(rp.received[0]))
}

func TestReadBufferFilledCompactsUnconsumedRemainder(t *testing.T) {
	rp := &recordingProtocol{}
	a := newTestAutoProtocol(rp)
	// Leave the tail half of what's delivered unconsumed, the way a
	// partial head parse would.
	rp2 := &partialConsumer{keepLast: 3}
	a.protocol = rp2

	tail := a.ReadBufferAcquire()
	n := copy(tail, []byte("abcdef"))
	require.NoError(t, a.ReadBufferFilled(n))
	require.Equal(t, "def", string(a.readBuf.B))
}

type partialConsumer struct {
	keepLast int
}

func (p *partialConsumer) DataReceived(buf *[]byte) error {
	if len(*buf) > p.keepLast {
		*buf = (*buf)[len(*buf)-p.keepLast:]
	}
	return nil
}
func (p *partialConsumer) FillWriteBuffer(out *[]byte) {}
func (p *partialConsumer) ConnectionLost()             {}

func TestWriteBufferAcquireDrainsProtocolOutput(t *testing.T) {
	rp := &recordingProtocol{writeOut: []byte("response")}
	a := newTestAutoProtocol(rp)

	out := a.WriteBufferAcquire()
	require.Equal(t, "response", string(out))
}

func TestWriteBufferDrainedRemovesWrittenPrefix(t *testing.T) {
	rp := &recordingProtocol{writeOut: []byte("0123456789")}
	a := newTestAutoProtocol(rp)
	a.WriteBufferAcquire()

	a.WriteBufferDrained(4)
	require.Equal(t, "456789", string(a.writeBuf.B))
}

func TestWriteBufferDrainedPausesWritingWhenEmpty(t *testing.T) {
	var paused bool
	hooks := bridge.Hooks{DisarmWriter: func(fd int) { paused = true }}
	lb := bridge.New(hooks, 3, 0)
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}
	tr := transport.New(lb, addr, addr, false)
	lb.ArmWriter()

	rp := &recordingProtocol{writeOut: []byte("ab")}
	a := New(tr, rp)
	a.WriteBufferAcquire()
	a.WriteBufferDrained(2)
	require.True(t, paused)
}

func TestConnectionLostClearsBuffersAndNotifiesProtocol(t *testing.T) {
	rp := &recordingProtocol{}
	a := newTestAutoProtocol(rp)
	tail := a.ReadBufferAcquire()
	copy(tail, []byte("pending"))
	a.readBuf.B = a.readBuf.B[:len("pending")]

	a.ConnectionLost()
	require.True(t, rp.lostCalled)
	require.Empty(t, a.readBuf.B)
	require.Empty(t, a.writeBuf.B)
}

func TestMaybeSwitchAlwaysReportsNoSwitch(t *testing.T) {
	a := newTestAutoProtocol(&recordingProtocol{})
	require.Equal(t, NoSwitch, a.MaybeSwitch())
}
