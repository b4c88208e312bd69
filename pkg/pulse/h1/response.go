package h1

import (
	"strconv"
	"time"
)

// ServerProductName is emitted as the "server:" header value (spec.md
// §4.6.5 step 4).
const ServerProductName = "pulse"

// HeaderKV is one caller-supplied response header (spec.md §6:
// "send_start(status, headers:[(bytes,bytes)])").
type HeaderKV struct {
	Name  []byte
	Value []byte
}

// SerializedStart is the result of serializing a response head: the bytes
// to enqueue on the wire, plus the decisions derived from iterating the
// headers (spec.md §4.6.5 steps 2 and 6).
type SerializedStart struct {
	Bytes            []byte
	Chunked          bool
	KeepAlive        bool
	ContentLength    int64
	HasContentLength bool
}

// serializeStart builds a status line + header block + date + server +
// terminating CRLF, per spec.md §4.6.5. keepAliveDefault is the
// connection's HTTP-version-derived keep-alive decision; an explicit
// "connection: close" response header overrides it to false, and a
// "transfer-encoding: chunked" response header is detected by exact
// byte-for-byte token match (no case-folding), matching the wire-exactness
// called for in spec.md §4.6.5 step 2.
func serializeStart(status int, headers []HeaderKV, keepAliveDefault bool) (SerializedStart, error) {
	if status < 100 || status > 599 {
		return SerializedStart{}, ErrInvalidStatusCode
	}

	out := make([]byte, 0, 256)
	out = append(out, statusLine(status)...)

	result := SerializedStart{KeepAlive: keepAliveDefault}

	for _, h := range headers {
		if !isValidToken(h.Name) {
			return SerializedStart{}, ErrInvalidHeaderName
		}
		if !isValidHeaderValue(h.Value) {
			return SerializedStart{}, ErrInvalidHeaderValue
		}

		if equalFoldASCII(h.Name, "content-length") {
			n, ok := parseUintStrict(h.Value)
			if ok {
				result.ContentLength = n
				result.HasContentLength = true
			}
		}
		if bytesEqualExact(h.Name, headerTransferEncoding) && bytesEqualExact(h.Value, headerChunkedToken) {
			result.Chunked = true
		}
		if bytesEqualExact(h.Name, headerConnection) && bytesEqualExact(h.Value, headerCloseToken) {
			result.KeepAlive = false
		}

		out = append(out, h.Name...)
		out = append(out, colonSpace...)
		out = append(out, h.Value...)
		out = append(out, crlf...)
	}

	out = append(out, "date: "...)
	out = append(out, httpDate(time.Now())...)
	out = append(out, crlf...)

	out = append(out, "server: "...)
	out = append(out, ServerProductName...)
	out = append(out, crlf...)

	out = append(out, crlf...)

	result.Bytes = out
	return result, nil
}

func bytesEqualExact(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isValidToken(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c <= 0x20 || c == 0x7f || c == ':' {
			return false
		}
	}
	return true
}

func isValidHeaderValue(b []byte) bool {
	for _, c := range b {
		if c == '\r' || c == '\n' || c == 0 {
			return false
		}
	}
	return true
}

// rfc7231DateFormat is the IMF-fixdate layout from RFC 7231 §7.1.1.1, e.g.
// "Sun, 06 Nov 1994 08:49:37 GMT".
const rfc7231DateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

func httpDate(t time.Time) string {
	return t.UTC().Format(rfc7231DateFormat)
}

// statusLine returns "HTTP/1.1 {code} {reason}\r\n"; unknown codes use an
// empty reason phrase (spec.md §4.6.5 step 1).
func statusLine(code int) []byte {
	return []byte("HTTP/1.1 " + strconv.Itoa(code) + " " + reasonPhrase(code) + "\r\n")
}
