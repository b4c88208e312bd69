// Package bus implements the bounded single-producer/single-consumer
// request and response channels that carry body bytes between H1Protocol
// and the application callback (spec.md §4.4: ChannelPair). Everything
// here runs on the single host-loop thread — no locks, no atomics; the
// "bounded MPSC-of-one-producer" requirement from spec.md §5 is satisfied
// trivially because there is never more than one goroutine in play.
package bus

// Capacity is the fixed depth of both channels (spec.md §4.4:
// "capacity 2").
const Capacity = 2

// RequestMessage is one body chunk flowing engine→app (spec.md §3).
type RequestMessage struct {
	MoreBody bool
	Bytes    []byte
}

// ResponseMessage is one response chunk flowing app→engine (spec.md §3).
type ResponseMessage struct {
	MoreBody  bool
	KeepAlive bool
	Bytes     []byte
}

// SendOutcome is the tri-state try_send result shared by both channel
// directions (spec.md §4.4: "Ok / Full / Closed").
type SendOutcome uint8

const (
	SendOK SendOutcome = iota
	SendFull
	SendClosed
)

// RecvOutcome is the tri-state try_recv result (spec.md §4.4:
// "Ok / Empty / Closed").
type RecvOutcome uint8

const (
	RecvOK RecvOutcome = iota
	RecvEmpty
	RecvClosed
)

// Waker is an opaque callback the application registers to be invoked
// exactly once when a channel transitions from not-ready to ready
// (GLOSSARY). Only ResponseChannel uses it: its wakers fire on drain or
// close. RequestChannel subscribers are RequestWakers, which always receive
// the payload (or the closed notification) directly.
type Waker func()

// RequestWaker is invoked either as a plain arrival notification
// (ok==true, msg carries the payload directly — the hand-off fast path
// of spec.md §4.4) or, on channel close while a waker is still pending, as
// a closed notification (ok==false).
type RequestWaker func(msg RequestMessage, ok bool)

// ring is a tiny fixed-capacity FIFO used by both channel types. It is not
// exported; RequestChannel and ResponseChannel each wrap one.
type ring struct {
	buf   [Capacity]any
	head  int
	count int
}

func (r *ring) len() int { return r.count }

func (r *ring) full() bool { return r.count == Capacity }

func (r *ring) push(v any) {
	idx := (r.head + r.count) % Capacity
	r.buf[idx] = v
	r.count++
}

func (r *ring) pop() any {
	v := r.buf[r.head]
	r.buf[r.head] = nil
	r.head = (r.head + 1) % Capacity
	r.count--
	return v
}
