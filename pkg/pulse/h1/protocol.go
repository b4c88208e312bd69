package h1

import (
	"github.com/yourusername/pulse/pkg/pulse/bus"
	"github.com/yourusername/pulse/pkg/pulse/transport"
)

// AppCallback is invoked once per request head with the parsed scope and
// the two channel handles (spec.md §6). It must not block.
type AppCallback func(scope RequestScope, sender *ResponseSender, receiver *RequestReceiver) error

// Protocol implements spec.md §4.6: request parsing, body framing, scope
// construction, response serialization, and the keep-alive decision for
// one connection across its lifetime. NewConnection resets and rebinds it;
// the engine constructs a new Protocol for each accepted connection.
type Protocol struct {
	app       AppCallback
	transport transport.Transport
	tls       bool

	expectedContentLength int64
	chunked               bool
	chunkedFramer         chunkedFramer
	keepAlive             bool
	inFlight              bool

	pair     *bus.Pair
	sender   *ResponseSender
	receiver *RequestReceiver
}

// New constructs a protocol bound to app. Call NewConnection before first
// use and again every time the owning slot is recycled for a new peer.
func New(app AppCallback) *Protocol {
	return &Protocol{app: app}
}

// NewConnection resets all mutable state and rebinds the transport
// capability (spec.md §4.6: "State reset on new_connection").
func (p *Protocol) NewConnection(t transport.Transport, tls bool) {
	p.transport = t
	p.tls = tls
	p.expectedContentLength = 0
	p.chunked = false
	p.chunkedFramer = chunkedFramer{}
	p.keepAlive = true
	p.inFlight = false
	p.pair = nil
	p.sender = nil
	p.receiver = nil
}

// DataReceived implements spec.md §4.6's data_received(buf) steps. buf is
// consumed in place; the caller (AutoProtocol) keeps whatever remains.
func (p *Protocol) DataReceived(buf *[]byte) error {
	if p.expectedContentLength == 0 && !p.chunked && !p.inFlight {
		head, consumed, err := parseHead(*buf)
		if err != nil {
			return err
		}
		if head == nil {
			return nil
		}
		*buf = (*buf)[consumed:]
		if err := p.onHeadParsed(head); err != nil {
			return err
		}
	}

	switch {
	case p.chunked:
		finished, err := p.chunkedFramer.drain(buf, p.emitRequest)
		if err != nil {
			return err
		}
		if finished {
			p.chunked = false
			p.inFlight = false
		}
	case p.expectedContentLength > 0:
		rest, remaining := drainFixedLength(*buf, p.expectedContentLength, p.emitRequest)
		*buf = rest
		p.expectedContentLength = remaining
		if remaining == 0 {
			p.inFlight = false
		}
	default:
		if p.inFlight {
			p.emitRequest(false, nil)
			p.inFlight = false
		}
	}

	p.transport.ResumeWriting()
	return nil
}

// onHeadParsed implements spec.md §4.6.1.
func (p *Protocol) onHeadParsed(head *RequestHead) error {
	p.keepAlive = head.VersionByte == 1
	p.chunked = false
	p.expectedContentLength = 0
	p.chunkedFramer = chunkedFramer{}

	head.Headers.each(func(name, value []byte) {
		if equalFoldASCII(name, "content-length") {
			if n, ok := parseUintStrict(value); ok {
				p.expectedContentLength = n
			}
		}
		if equalFoldASCII(name, "transfer-encoding") {
			if containsTokenFold(value, headerChunkedToken) {
				p.chunked = true
			}
		}
	})

	scope := buildScope(head, p.tls, p.transport.ClientAddr, p.transport.ServerAddr)

	p.pair = bus.NewPair()
	p.sender = newResponseSender(p.pair.Responses, p.keepAlive)
	p.receiver = &RequestReceiver{ch: p.pair.Requests}
	p.inFlight = true

	return p.app(scope, p.sender, p.receiver)
}

func (p *Protocol) emitRequest(moreBody bool, data []byte) {
	if p.pair == nil {
		return
	}
	p.pair.Requests.TrySend(bus.RequestMessage{MoreBody: moreBody, Bytes: cloneBytes(data)})
}

// FillWriteBuffer implements spec.md §4.6.4: drain the response channel
// non-blockingly and append everything to out.
func (p *Protocol) FillWriteBuffer(out *[]byte) {
	if p.pair == nil {
		return
	}
	msgs, outcome := p.pair.Responses.Drain()
	if outcome != bus.RecvOK {
		return
	}
	for _, m := range msgs {
		*out = append(*out, m.Bytes...)
		p.keepAlive = m.KeepAlive
		if !m.MoreBody && !m.KeepAlive {
			p.transport.Close()
		}
	}
}

// ConnectionLost drops the engine's ends of the channel pair so any app
// handles still held surface Closed/absorbed behavior (spec.md §5).
func (p *Protocol) ConnectionLost() {
	if p.pair != nil {
		p.pair.CloseAll()
	}
}

// KeepAlive reports the connection's current keep-alive decision.
func (p *Protocol) KeepAlive() bool { return p.keepAlive }
