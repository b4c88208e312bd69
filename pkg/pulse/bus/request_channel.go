package bus

// RequestChannel carries body chunks engine→app (spec.md §4.4). Its
// distinguishing trait is waker hand-off: if exactly one waker is
// registered at send time, TrySend pops that waker and invokes it with the
// payload directly instead of enqueueing — the payload never touches the
// ring in the common "app already waiting" case. Only when no waker is
// registered does the message sit in the bounded ring until TryRecv picks
// it up.
type RequestChannel struct {
	q      ring
	waker  RequestWaker
	closed bool
}

// NewRequestChannel returns an empty, open channel.
func NewRequestChannel() *RequestChannel {
	return &RequestChannel{}
}

// TrySend is called from the engine side (H1Protocol feeding body bytes to
// the app). Sending on a closed channel is absorbed, never an error
// (spec.md §4.4: "send after the underlying connection is lost must not
// raise").
func (c *RequestChannel) TrySend(msg RequestMessage) SendOutcome {
	if c.closed {
		return SendClosed
	}
	if c.waker != nil {
		w := c.waker
		c.waker = nil
		w(msg, true)
		return SendOK
	}
	if c.q.full() {
		return SendFull
	}
	c.q.push(msg)
	return SendOK
}

// TryRecv is called from the app side. It does not touch a pending waker;
// a waker is only ever pending while the ring is empty, because Subscribe
// takes a queued message immediately and TrySend hands off to a waker
// instead of queueing.
func (c *RequestChannel) TryRecv() (RequestMessage, RecvOutcome) {
	if c.q.len() > 0 {
		return c.q.pop().(RequestMessage), RecvOK
	}
	if c.closed {
		return RequestMessage{}, RecvClosed
	}
	return RequestMessage{}, RecvEmpty
}

// Subscribe registers w to be invoked on the next arrival or on close. At
// most one waker may be pending at a time — a second Subscribe call
// replaces the first, matching the "single in-flight waker" invariant
// tested in spec.md §8 (only one host call per arm transition).
func (c *RequestChannel) Subscribe(w RequestWaker) {
	if c.closed {
		w(RequestMessage{}, false)
		return
	}
	if c.q.len() > 0 {
		msg := c.q.pop().(RequestMessage)
		w(msg, true)
		return
	}
	c.waker = w
}

// Close marks the channel closed and, if a waker is pending, fires it with
// ok==false so the app is not left waiting forever (spec.md §4.4, §7).
func (c *RequestChannel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.waker != nil {
		w := c.waker
		c.waker = nil
		w(RequestMessage{}, false)
	}
}

// Closed reports whether Close has been called.
func (c *RequestChannel) Closed() bool { return c.closed }
