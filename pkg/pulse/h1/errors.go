package h1

import "errors"

// Parser faults. All are fatal-for-connection per spec.md §7: a malformed
// head closes the connection rather than producing a 4xx response (open
// question in spec.md §9 left unresolved — see DESIGN.md).
var (
	ErrInvalidRequestLine = errors.New("h1: invalid request line")
	ErrInvalidMethod      = errors.New("h1: invalid HTTP method")
	ErrInvalidPath        = errors.New("h1: invalid request path")
	ErrInvalidProtocol    = errors.New("h1: invalid or unsupported protocol version")
	ErrInvalidHeader      = errors.New("h1: invalid header")
	ErrTooManyHeaders     = errors.New("h1: too many headers")
	ErrRequestLineTooLarge = errors.New("h1: request line too large")
	ErrHeadersTooLarge    = errors.New("h1: headers too large")
	ErrURITooLong         = errors.New("h1: URI too long")
	ErrInvalidContentLength = errors.New("h1: invalid content-length")

	// ErrContentLengthWithTransferEncoding and ErrDuplicateContentLength
	// guard against CL.TE / duplicate-CL request smuggling (RFC 7230
	// §3.3.3), same protection as the teacher's blocking parser.
	ErrContentLengthWithTransferEncoding = errors.New("h1: both content-length and transfer-encoding present")
	ErrDuplicateContentLength            = errors.New("h1: duplicate content-length headers disagree")

	// ErrInvalidChunkSize indicates a malformed chunk-size line.
	ErrInvalidChunkSize = errors.New("h1: invalid chunk size")
)

// Response-serialization faults. Per spec.md §7 these are "programmer
// error in the application": surfaced as a fatal fault upward, never
// silently corrected.
var (
	ErrInvalidStatusCode  = errors.New("h1: invalid status code")
	ErrInvalidHeaderName  = errors.New("h1: invalid response header name")
	ErrInvalidHeaderValue = errors.New("h1: invalid response header value")
)

// ErrWouldBlock is returned to the application when a response channel
// send could not be buffered because the channel is Full (spec.md §4.6.5,
// §4.6.6, §7: "signaled as WouldBlock to the app; the app must register a
// waker").
var ErrWouldBlock = errors.New("h1: would block, subscribe and retry")
