package socket

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// IOState is the tri-state every Stream operation resolves to, per
// spec.md §4.2: WouldBlock, Complete(n), or Disconnect. Any other OS error
// is surfaced separately as a failure.
type IOState uint8

const (
	StateWouldBlock IOState = iota
	StateComplete
	StateDisconnect
)

// Result is returned by Read and Write. N is only meaningful when State is
// StateComplete. Err is only set on a genuine (non-disconnect,
// non-would-block) failure.
type Result struct {
	State IOState
	N     int
	Err   error
}

// Stream wraps one non-blocking connection fd. It performs no buffering of
// its own — ReadBuffer/WriteBuffer ownership belongs to AutoProtocol
// (spec.md §4.7); Stream only ever does one read(2)/write(2) per call.
type Stream struct {
	fd int
}

// New wraps an already non-blocking fd (as produced by Listener.Accept).
func New(fd int) *Stream {
	return &Stream{fd: fd}
}

// FD returns the underlying descriptor for readiness registration.
func (s *Stream) FD() int { return s.fd }

// Read performs one read(2) into dst, retrying internally on EINTR (the
// host never gets a fresh readiness event for a signal interruption, so
// surfacing it as WouldBlock would stall the connection). Complete(0)
// signals peer EOF per spec.md §4.2 ("n=0 on read signals peer EOF").
func (s *Stream) Read(dst []byte) Result {
	for {
		n, err := unix.Read(s.fd, dst)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if isWouldBlock(err) {
				return Result{State: StateWouldBlock}
			}
			if isDisconnect(err) {
				return Result{State: StateDisconnect}
			}
			return Result{Err: fmt.Errorf("socket: read(2): %w", err)}
		}
		if n < 0 {
			// Defensive: unix.Read never returns n<0 without err, but the
			// tri-state contract must never propagate a negative count.
			n = 0
		}
		return Result{State: StateComplete, N: n}
	}
}

// Write performs one write(2) of src, retrying internally on EINTR. The
// caller is responsible for removing the written prefix from its own
// buffer (spec.md §4.2: "Writes remove the consumed prefix from the
// buffer").
func (s *Stream) Write(src []byte) Result {
	if len(src) == 0 {
		return Result{State: StateComplete, N: 0}
	}
	for {
		n, err := unix.Write(s.fd, src)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if isWouldBlock(err) {
				return Result{State: StateWouldBlock}
			}
			if isDisconnect(err) {
				return Result{State: StateDisconnect}
			}
			return Result{Err: fmt.Errorf("socket: write(2): %w", err)}
		}
		return Result{State: StateComplete, N: n}
	}
}

// Shutdown closes the fd. Safe to call more than once; subsequent calls
// return the EBADF error from the kernel, which callers should ignore —
// idempotent teardown is handled one layer up by ConnectionHandler.
func (s *Stream) Shutdown() error {
	return unix.Close(s.fd)
}
