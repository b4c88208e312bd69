package h1

import "bytes"

// RequestHead is the result of a completed head parse: request line plus
// headers. Every byte slice here is a private copy, not a view into the
// connection's read buffer — the buffer's front gets trimmed and reused
// immediately after parsing, so anything the app or H1Protocol keeps past
// that point must own its bytes.
type RequestHead struct {
	MethodBytes []byte
	PathBytes   []byte
	QueryBytes  []byte
	VersionByte uint8 // 0 = HTTP/1.0, 1 = HTTP/1.1
	Headers     headerTable
}

// parseHead attempts to parse one request head from the front of buf.
// Returns (head, consumed, nil) on success, (nil, 0, nil) when buf holds
// an incomplete head (caller should wait for more bytes), or (nil, 0, err)
// on a malformed head.
func parseHead(buf []byte) (*RequestHead, int, error) {
	headerEnd := bytes.Index(buf, []byte("\r\n\r\n"))
	if headerEnd == -1 {
		if len(buf) > MaxRequestLineSize+MaxHeadersSize {
			return nil, 0, ErrHeadersTooLarge
		}
		return nil, 0, nil
	}
	consumed := headerEnd + 4
	// Keep the CRLF that ends the last line so every line, including the
	// request line of a head with no headers, is CRLF-terminated.
	raw := buf[:headerEnd+2]

	lineEnd := bytes.Index(raw, crlf)
	if lineEnd == -1 {
		return nil, 0, ErrInvalidRequestLine
	}
	line := raw[:lineEnd]
	if len(line) > MaxRequestLineSize {
		return nil, 0, ErrRequestLineTooLarge
	}

	head := &RequestHead{}

	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return nil, 0, ErrInvalidRequestLine
	}
	method := line[:sp]
	if len(method) == 0 {
		return nil, 0, ErrInvalidMethod
	}
	head.MethodBytes = cloneBytes(method)

	line = line[sp+1:]
	sp = bytes.IndexByte(line, ' ')
	if sp == -1 {
		return nil, 0, ErrInvalidRequestLine
	}
	uri := line[:sp]
	if len(uri) > MaxURILength {
		return nil, 0, ErrURITooLong
	}
	if len(uri) == 0 || (uri[0] != '/' && uri[0] != '*') {
		return nil, 0, ErrInvalidPath
	}
	if q := bytes.IndexByte(uri, '?'); q != -1 {
		head.PathBytes = cloneBytes(uri[:q])
		head.QueryBytes = cloneBytes(uri[q+1:])
	} else {
		head.PathBytes = cloneBytes(uri)
		head.QueryBytes = nil
	}

	proto := line[sp+1:]
	switch {
	case bytes.Equal(proto, http11Line):
		head.VersionByte = 1
	case bytes.Equal(proto, http10Line):
		head.VersionByte = 0
	default:
		return nil, 0, ErrInvalidProtocol
	}

	if err := parseHeaderBlock(&head.Headers, raw[lineEnd+2:]); err != nil {
		return nil, 0, err
	}

	return head, consumed, nil
}

// parseHeaderBlock parses "Name: Value\r\n" lines and applies the same
// CL.TE / duplicate-Content-Length smuggling protections as the teacher's
// blocking parser (RFC 7230 §3.3.3).
func parseHeaderBlock(t *headerTable, buf []byte) error {
	pos := 0
	var hasCL, hasTE bool
	var clValue int64 = -1

	for pos < len(buf) {
		lineEnd := bytes.Index(buf[pos:], crlf)
		if lineEnd == -1 {
			return ErrInvalidHeader
		}
		lineEnd += pos
		line := buf[pos:lineEnd]
		pos = lineEnd + 2

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			return ErrInvalidHeader
		}
		name := line[:colon]
		value := line[colon+1:]

		// RFC 7230 §3.2: no whitespace allowed between field name and colon.
		if colon > 0 && (name[colon-1] == ' ' || name[colon-1] == '\t') {
			return ErrInvalidHeader
		}
		if bytes.IndexByte(name, ' ') != -1 || bytes.IndexByte(name, '\t') != -1 {
			return ErrInvalidHeader
		}
		value = trimOWS(value)

		if len(name) > MaxHeaderName || len(value) > MaxHeaderValue {
			return ErrInvalidHeader
		}

		if equalFoldASCII(name, "content-length") {
			n, ok := parseUintStrict(value)
			if !ok {
				return ErrInvalidContentLength
			}
			if hasCL {
				if clValue != n {
					return ErrDuplicateContentLength
				}
			} else {
				hasCL = true
				clValue = n
			}
		}
		if equalFoldASCII(name, "transfer-encoding") {
			hasTE = true
		}

		if err := t.add(cloneBytes(name), cloneBytes(value)); err != nil {
			return err
		}
	}

	if hasCL && hasTE {
		return ErrContentLengthWithTransferEncoding
	}
	return nil
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

func parseUintStrict(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
		if n < 0 {
			return 0, false
		}
	}
	return n, true
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
