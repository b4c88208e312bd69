package h1

// drainFixedLength implements spec.md §4.6.3's fixed-length body framing.
// buf is consumed in place (the returned slice is the remainder the
// caller should keep for the next call); remaining is the
// expected_content_length counter the caller owns and mutates across
// calls.
func drainFixedLength(buf []byte, remaining int64, emit func(moreBody bool, data []byte)) (rest []byte, newRemaining int64) {
	if int64(len(buf)) >= remaining {
		chunk := buf[:remaining]
		emit(false, chunk)
		return buf[remaining:], 0
	}
	if int64(len(buf)) >= MinFlush {
		emit(true, buf)
		return buf[:0], remaining - int64(len(buf))
	}
	return buf, remaining
}
