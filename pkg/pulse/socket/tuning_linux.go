//go:build linux

package socket

import "golang.org/x/sys/unix"

// applyPlatformConnOptions applies Linux-only socket options. Adapted from
// the teacher's socket/tuning_linux.go; TCP_FASTOPEN is dropped here since
// it belongs on the listener, not on accepted connections.
func applyPlatformConnOptions(fd int, cfg TuningConfig) {
	if cfg.QuickAck {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1)
	}
}

// applyPlatformListenerOptions applies Linux-only listener options.
func applyPlatformListenerOptions(fd int, cfg TuningConfig) {
	if cfg.DeferAccept {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_DEFER_ACCEPT, 5)
	}
}
