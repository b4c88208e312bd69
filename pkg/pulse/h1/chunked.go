package h1

import "bytes"

// chunkedFramer incrementally reassembles a chunked request body across
// however many data_received calls it takes, per spec.md §4.6.2. Unlike
// the teacher's blocking ChunkedReader (which pulls from an io.Reader
// until satisfied), every step here either makes progress on the bytes
// already in hand or returns asking for more — it never blocks.
type chunkedFramer struct {
	staging []byte
}

// drain consumes as many complete chunks as are available at the front of
// *buf, appending their bodies to the staging buffer and calling emit
// whenever staging reaches MinFlush or the terminating zero-chunk is
// reached. Returns finished=true once the zero-chunk's trailing CRLF has
// been consumed, at which point the framer is spent and a fresh one is
// needed for the next request.
func (f *chunkedFramer) drain(buf *[]byte, emit func(moreBody bool, data []byte)) (finished bool, err error) {
	for {
		data := *buf
		idx := bytes.Index(data, crlf)
		if idx == -1 {
			f.flushStagingIfOverFloor(emit)
			return false, nil
		}

		size, ok := parseHexChunkSize(data[:idx])
		if !ok {
			return false, ErrInvalidChunkSize
		}

		if size == 0 {
			rest := data[idx+2:]
			if len(rest) < 2 {
				return false, nil
			}
			if rest[0] != '\r' || rest[1] != '\n' {
				return false, ErrInvalidChunkSize
			}
			*buf = rest[2:]
			emit(false, f.staging)
			f.staging = nil
			return true, nil
		}

		need := idx + 2 + size + 2
		if len(data) < need {
			f.flushStagingIfOverFloor(emit)
			return false, nil
		}

		body := data[idx+2 : idx+2+size]
		trailer := data[idx+2+size : need]
		if trailer[0] != '\r' || trailer[1] != '\n' {
			return false, ErrInvalidChunkSize
		}

		f.staging = append(f.staging, body...)
		*buf = data[need:]

		if len(f.staging) >= MinFlush {
			emit(true, f.staging)
			f.staging = nil
		}
	}
}

// flushStagingIfOverFloor implements spec.md §4.6.2's "On partial: if
// accumulated staging ≤ MIN_FLUSH, return None. Else, flush" rule.
func (f *chunkedFramer) flushStagingIfOverFloor(emit func(moreBody bool, data []byte)) {
	if len(f.staging) > MinFlush {
		emit(true, f.staging)
		f.staging = nil
	}
}

// parseHexChunkSize parses a "HEX" chunk-size line (chunk extensions after
// ';' are not supported and reject the request — this engine never emits
// them and accepting unknown extensions invites smuggling-style ambiguity).
func parseHexChunkSize(b []byte) (int, bool) {
	if len(b) == 0 || len(b) > 8 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'a' && c <= 'f':
			v = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = int(c-'A') + 10
		default:
			return 0, false
		}
		n = n*16 + v
		if n < 0 || n > BodyStagingCap*4 {
			return 0, false
		}
	}
	return n, true
}
