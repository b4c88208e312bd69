// Package socket owns the non-blocking acceptor and byte-stream primitives
// the engine lays its protocol state machine on top of (spec.md §4.1-4.2:
// Listener, Stream). Every fd here is set O_NONBLOCK at creation time and
// stays that way for its whole life — the host's readiness notifier, not
// the Go runtime netpoller, decides when to call back in.
package socket

import (
	"golang.org/x/sys/unix"
)

// TuningConfig holds the socket options applied to accepted connections and
// to the listening socket itself. Adapted from the teacher's cross-platform
// socket.Config, narrowed to the options that matter for a non-blocking
// reactor (buffer sizing, Nagle, defer-accept) and re-targeted at raw fds
// instead of net.Conn, since the engine never holds a net.Conn.
type TuningConfig struct {
	NoDelay     bool
	RecvBuffer  int
	SendBuffer  int
	QuickAck    bool // Linux only
	DeferAccept bool // Linux only
	KeepAlive   bool
}

// DefaultTuning mirrors the teacher's DefaultConfig() defaults.
func DefaultTuning() TuningConfig {
	return TuningConfig{
		NoDelay:     true,
		RecvBuffer:  256 * 1024,
		SendBuffer:  256 * 1024,
		QuickAck:    true,
		DeferAccept: true,
		KeepAlive:   true,
	}
}

// applyConn applies connection-level options to an accepted socket fd.
// Non-critical options are best-effort; only TCP_NODELAY failures are
// surfaced, matching the teacher's Apply() behavior.
func applyConn(fd int, cfg TuningConfig) error {
	if cfg.NoDelay {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
			return err
		}
	}
	if cfg.RecvBuffer > 0 {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, cfg.RecvBuffer)
	}
	if cfg.SendBuffer > 0 {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF, cfg.SendBuffer)
	}
	if cfg.KeepAlive {
		_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
	}
	applyPlatformConnOptions(fd, cfg)
	return nil
}

// setNonblock flips O_NONBLOCK on fd. Bind calls it once on the listening
// fd; accepted fds get O_NONBLOCK from accept4's SOCK_NONBLOCK flag.
func setNonblock(fd int) error {
	return unix.SetNonblock(fd, true)
}

// isWouldBlock reports whether err is the non-blocking "try again" signal
// from a read(2)/write(2)/accept(2) syscall.
func isWouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

// isDisconnect reports whether err indicates the peer is gone rather than
// a genuine I/O failure.
func isDisconnect(err error) bool {
	switch err {
	case unix.ECONNRESET, unix.EPIPE, unix.ECONNABORTED, unix.ENOTCONN, unix.ETIMEDOUT:
		return true
	default:
		return false
	}
}
