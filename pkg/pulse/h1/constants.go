// Package h1 implements the HTTP/1.1 request parser, body framer, and
// response serializer (spec.md §4.6: H1Protocol). Unlike a blocking
// io.Reader-based parser, every entry point here resumes across
// non-blocking data_received calls: partial input is never an error, it is
// "come back with more bytes".
package h1

// Header and request limits, widened from the teacher's inline 32-header
// table to the 100-header ceiling named in spec.md §4.6 and §6.
const (
	MaxHeaders         = 100
	MaxHeaderName      = 64
	MaxHeaderValue     = 256
	MaxRequestLineSize = 8192
	MaxURILength       = 8192
	MaxHeadersSize     = 8192
)

// MinFlush and BodyStagingCap govern how eagerly partially-received bodies
// are handed to the application (spec.md §4.6: "MIN_FLUSH=64 KiB;
// BODY_STAGING_CAP=128 KiB").
const (
	MinFlush       = 64 * 1024
	BodyStagingCap = 128 * 1024
)

var (
	crlf       = []byte("\r\n")
	colonSpace = []byte(": ")
	http11Line = []byte("HTTP/1.1")
	http10Line = []byte("HTTP/1.0")
)

var (
	headerContentLength    = []byte("content-length")
	headerTransferEncoding = []byte("transfer-encoding")
	headerConnection       = []byte("connection")
	headerChunkedToken     = []byte("chunked")
	headerCloseToken       = []byte("close")
)
