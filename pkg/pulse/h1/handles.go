package h1

import "github.com/yourusername/pulse/pkg/pulse/bus"

// ResponseSender is the handle an application callback uses to write a
// response (spec.md §6: response_sender). It owns the serialization rules
// from §4.6.5/§4.6.6 and forwards finished frames to the engine side of
// the response channel.
type ResponseSender struct {
	ch               *bus.ResponseChannel
	keepAliveDefault bool
	keepAlive        bool
	started          bool
	hasContentLength bool
	contentLength    int64
}

func newResponseSender(ch *bus.ResponseChannel, keepAliveDefault bool) *ResponseSender {
	return &ResponseSender{ch: ch, keepAliveDefault: keepAliveDefault, keepAlive: keepAliveDefault}
}

// SendStart serializes and enqueues the status line + headers as the
// first response-channel message (spec.md §4.6.5).
func (s *ResponseSender) SendStart(status int, headers []HeaderKV) error {
	sr, err := serializeStart(status, headers, s.keepAliveDefault)
	if err != nil {
		return err
	}
	s.started = true
	s.keepAlive = sr.KeepAlive
	s.hasContentLength = sr.HasContentLength
	s.contentLength = sr.ContentLength

	switch s.ch.TrySend(bus.ResponseMessage{MoreBody: true, KeepAlive: sr.KeepAlive, Bytes: sr.Bytes}) {
	case bus.SendFull:
		return ErrWouldBlock
	default:
		return nil
	}
}

// SendBody enqueues a body chunk (spec.md §4.6.6). A no-op when no
// (non-zero) content-length was declared at send_start.
func (s *ResponseSender) SendBody(moreBody bool, data []byte) error {
	if !s.hasContentLength || s.contentLength == 0 {
		return nil
	}
	switch s.ch.TrySend(bus.ResponseMessage{MoreBody: moreBody, KeepAlive: s.keepAlive, Bytes: data}) {
	case bus.SendFull:
		return ErrWouldBlock
	default:
		return nil
	}
}

// Subscribe registers w to fire once the response channel drains from
// full back to having room (spec.md §6: response_sender.subscribe).
func (s *ResponseSender) Subscribe(w bus.Waker) { s.ch.Subscribe(w) }

// RequestReceiver is the handle an application callback uses to read the
// request body (spec.md §6: request_receiver).
type RequestReceiver struct {
	ch *bus.RequestChannel
}

// TryRecv returns the next buffered body chunk, or Empty/Closed.
func (r *RequestReceiver) TryRecv() (bus.RequestMessage, bus.RecvOutcome) {
	return r.ch.TryRecv()
}

// Subscribe registers w to fire on the next arrival or on close.
func (r *RequestReceiver) Subscribe(w bus.RequestWaker) { r.ch.Subscribe(w) }
