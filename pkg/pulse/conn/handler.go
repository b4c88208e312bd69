// Package conn implements the per-connection state machine and the dense
// slab that owns every live handler (spec.md §4.8 ConnectionHandler, §4.9
// ConnectionManager). Everything here runs on the host loop's single
// thread — no atomics are needed the way the teacher's Connection uses
// them, since nothing but the host loop ever touches a handler's state
// (spec.md §5: "no internal thread pool and no concurrent mutation of
// the manager, handlers, protocols, or buffers").
package conn

import (
	"net"
	"time"

	"github.com/yourusername/pulse/pkg/pulse/bridge"
	"github.com/yourusername/pulse/pkg/pulse/proto"
	"github.com/yourusername/pulse/pkg/pulse/socket"
)

// Handler binds one accepted connection's Stream, LoopBridge and
// AutoProtocol for the lifetime of that connection (spec.md §3:
// ConnectionHandler). IsIdle is sticky-true once set; IsFree only becomes
// true once the manager's sweep has observed IsIdle and called SetFree.
type Handler struct {
	stream *socket.Stream
	bridge *bridge.LoopBridge
	auto   *proto.AutoProtocol

	PeerAddr  net.Addr
	LocalAddr net.Addr

	isIdle bool
	isFree bool

	lastActivity time.Time
	idleSince    time.Time
}

// NewHandler constructs a handler for a freshly accepted connection. The
// caller is expected to have already armed the reader on b.
func NewHandler(stream *socket.Stream, b *bridge.LoopBridge, auto *proto.AutoProtocol, peer, local net.Addr) *Handler {
	return &Handler{
		stream:       stream,
		bridge:       b,
		auto:         auto,
		PeerAddr:     peer,
		LocalAddr:    local,
		lastActivity: time.Now(),
	}
}

// PollRead implements the on poll_read transition of spec.md §4.8.
func (h *Handler) PollRead() error {
	if h.isIdle {
		return nil
	}

	buf := h.auto.ReadBufferAcquire()
	res := h.stream.Read(buf)

	switch res.State {
	case socket.StateWouldBlock:
		return nil
	case socket.StateComplete:
		if res.N == 0 {
			h.teardown()
			return nil
		}
		if err := h.auto.ReadBufferFilled(res.N); err != nil {
			h.teardown()
			return err
		}
		h.lastActivity = time.Now()
		h.auto.MaybeSwitch()
		return nil
	case socket.StateDisconnect:
		h.teardown()
		return nil
	default:
		return res.Err
	}
}

// PollWrite implements the on poll_write transition of spec.md §4.8.
func (h *Handler) PollWrite() error {
	if h.isIdle {
		return nil
	}

	buf := h.auto.WriteBufferAcquire()
	res := h.stream.Write(buf)

	switch res.State {
	case socket.StateWouldBlock:
		return nil
	case socket.StateComplete:
		h.auto.WriteBufferDrained(res.N)
		h.lastActivity = time.Now()
		return nil
	case socket.StateDisconnect:
		h.teardown()
		return nil
	default:
		return res.Err
	}
}

// PollClose implements the on poll_close transition: stream.shutdown plus
// notify connection_lost, idempotent via teardown's isIdle guard.
func (h *Handler) PollClose() error {
	h.teardown()
	return nil
}

// PollKeepAlive tears the handler down unconditionally if it has been idle
// for at least timeout (spec.md §4.8).
func (h *Handler) PollKeepAlive(now time.Time, timeout time.Duration) {
	if h.isIdle {
		return
	}
	if now.Sub(h.lastActivity) >= timeout {
		h.teardown()
	}
}

// Shutdown is the manager-wide teardown entry point; idempotent.
func (h *Handler) Shutdown() { h.teardown() }

func (h *Handler) teardown() {
	if h.isIdle {
		return
	}
	h.stream.Shutdown()
	h.auto.ConnectionLost()
	h.isIdle = true
	h.idleSince = time.Now()
}

// IsIdle reports whether the handle is closed or half-closed and will not
// produce further reads (spec.md §3).
func (h *Handler) IsIdle() bool { return h.isIdle }

// IsFree reports whether the manager has finalized this handler and may
// release its slot.
func (h *Handler) IsFree() bool { return h.isFree }

// SetFree marks the handler finalized; only the manager's sweep calls
// this, and only after observing IsIdle (spec.md §4.9).
func (h *Handler) SetFree() { h.isFree = true }

// IdleSince returns the timestamp IsIdle became true, zero if still active.
func (h *Handler) IdleSince() time.Time { return h.idleSince }
