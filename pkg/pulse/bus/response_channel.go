package bus

// ResponseChannel carries body chunks app→engine (spec.md §4.4). Unlike
// RequestChannel it does not hand off single payloads: drains notify every
// registered waker, since the engine's sole consumer (fill_write_buffer)
// just wants to know "there is something to drain now" rather than
// receiving any particular chunk directly.
type ResponseChannel struct {
	q      ring
	wakers []Waker
	closed bool
}

// NewResponseChannel returns an empty, open channel.
func NewResponseChannel() *ResponseChannel {
	return &ResponseChannel{}
}

// TrySend is called from the app side. Sending on a closed channel is
// absorbed (spec.md §4.4).
func (c *ResponseChannel) TrySend(msg ResponseMessage) SendOutcome {
	if c.closed {
		return SendClosed
	}
	if c.q.full() {
		return SendFull
	}
	c.q.push(msg)
	return SendOK
}

// Drain is called from the engine side (H1Protocol.fill_write_buffer) to
// pull everything currently buffered, oldest first. This is the full→
// not-full transition a subscribed app is waiting on, so every pending
// waker fires here, not on TrySend.
func (c *ResponseChannel) Drain() ([]ResponseMessage, RecvOutcome) {
	if c.q.len() == 0 {
		if c.closed {
			return nil, RecvClosed
		}
		return nil, RecvEmpty
	}
	out := make([]ResponseMessage, 0, c.q.len())
	for c.q.len() > 0 {
		out = append(out, c.q.pop().(ResponseMessage))
	}
	c.notifyAll()
	return out, RecvOK
}

// Subscribe registers w to be invoked the next time the channel drains
// from full back to having room, or closes. Multiple wakers may be
// registered simultaneously — notify-all, not hand-off (the defining
// asymmetry with RequestChannel, spec.md §4.4).
func (c *ResponseChannel) Subscribe(w Waker) {
	if c.closed {
		w()
		return
	}
	c.wakers = append(c.wakers, w)
}

// Close marks the channel closed and fires every pending waker.
func (c *ResponseChannel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.notifyAll()
}

// Closed reports whether Close has been called.
func (c *ResponseChannel) Closed() bool { return c.closed }

func (c *ResponseChannel) notifyAll() {
	if len(c.wakers) == 0 {
		return
	}
	pending := c.wakers
	c.wakers = nil
	for _, w := range pending {
		w()
	}
}
