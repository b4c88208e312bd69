// Package proto implements AutoProtocol (spec.md §4.7): the per-connection
// read/write buffer owner that dispatches filled bytes to whichever
// protocol is currently selected. There is exactly one protocol in this
// revision (HTTP/1.1); maybe_switch is a reserved hook for a future
// upgrade negotiation (spec.md Non-goals: "HTTP/2 and WebSocket
// multiplexing... reserves a switch point but does not implement them").
package proto

import (
	"github.com/valyala/bytebufferpool"

	"github.com/yourusername/pulse/pkg/pulse/transport"
)

// minSpare is the minimum spare tail capacity ReadBufferAcquire guarantees,
// close to the teacher's 4 KiB pooled read chunk (http11/parser.go's
// tmpBufPool) but grown lazily rather than fixed, since reads here land
// straight into the connection's own buffer instead of a scratch pool.
const minSpare = 4096

// Protocol is the interface AutoProtocol dispatches to. h1.Protocol is the
// only implementation in this revision.
type Protocol interface {
	DataReceived(buf *[]byte) error
	FillWriteBuffer(out *[]byte)
	ConnectionLost()
}

// SwitchResult is maybe_switch's return type (spec.md §4.7).
type SwitchResult uint8

const (
	NoSwitch SwitchResult = iota
)

// AutoProtocol owns the read and write buffers for one connection and
// forwards filled/drained events to Protocol (spec.md §4.7).
type AutoProtocol struct {
	transport transport.Transport
	protocol  Protocol

	readBuf  *bytebufferpool.ByteBuffer
	writeBuf *bytebufferpool.ByteBuffer
}

// New binds an AutoProtocol to a transport and the protocol instance that
// will own this connection for its lifetime.
func New(t transport.Transport, p Protocol) *AutoProtocol {
	return &AutoProtocol{
		transport: t,
		protocol:  p,
		readBuf:   bytebufferpool.Get(),
		writeBuf:  bytebufferpool.Get(),
	}
}

// ReadBufferAcquire returns a mutable tail reference with at least
// minSpare bytes of capacity for Stream.Read to fill (spec.md §4.7).
func (a *AutoProtocol) ReadBufferAcquire() []byte {
	b := a.readBuf.B
	if cap(b)-len(b) < minSpare {
		grown := make([]byte, len(b), len(b)+minSpare)
		copy(grown, b)
		a.readBuf.B = grown
		b = a.readBuf.B
	}
	return b[len(b):cap(b)]
}

// ReadBufferFilled extends the buffer by n bytes and dispatches to
// Protocol.DataReceived, then compacts whatever the protocol left
// unconsumed back to the front of the buffer (spec.md §3: "bytes already
// consumed... are removed from the front before the next acquisition").
func (a *AutoProtocol) ReadBufferFilled(n int) error {
	a.readBuf.B = a.readBuf.B[:len(a.readBuf.B)+n]
	view := a.readBuf.B
	if err := a.protocol.DataReceived(&view); err != nil {
		return err
	}
	copy(a.readBuf.B, view)
	a.readBuf.B = a.readBuf.B[:len(view)]
	return nil
}

// WriteBufferAcquire first drains the protocol's pending response bytes
// into the write buffer, then returns the whole buffer for the socket to
// write from (spec.md §4.7).
func (a *AutoProtocol) WriteBufferAcquire() []byte {
	a.protocol.FillWriteBuffer(&a.writeBuf.B)
	return a.writeBuf.B
}

// WriteBufferDrained removes the written prefix. If nothing was written,
// or nothing remains, writing is paused until more is enqueued (spec.md
// §4.7).
func (a *AutoProtocol) WriteBufferDrained(n int) {
	if n > 0 {
		rest := a.writeBuf.B[n:]
		copy(a.writeBuf.B, rest)
		a.writeBuf.B = a.writeBuf.B[:len(rest)]
	}
	if n == 0 || len(a.writeBuf.B) == 0 {
		a.transport.PauseWriting()
	}
}

// ConnectionLost pauses both directions, clears both buffers, and
// notifies the protocol (spec.md §4.7).
func (a *AutoProtocol) ConnectionLost() {
	a.transport.PauseReading()
	a.transport.PauseWriting()
	a.readBuf.Reset()
	a.writeBuf.Reset()
	a.protocol.ConnectionLost()
}

// EOFReceived is treated identically to ConnectionLost (spec.md §4.7).
func (a *AutoProtocol) EOFReceived() { a.ConnectionLost() }

// MaybeSwitch always reports NoSwitch in this revision.
func (a *AutoProtocol) MaybeSwitch() SwitchResult { return NoSwitch }

// Release returns both buffers to the pool. The connection manager does
// not call it when a handler's slot is freed.
func (a *AutoProtocol) Release() {
	bytebufferpool.Put(a.readBuf)
	bytebufferpool.Put(a.writeBuf)
}
