package socket

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// AcceptOutcome is the tri-state result of Listener.Accept, per spec.md
// §4.1: {Accepted(handle), WouldBlock, Failed(io_err)}.
type AcceptOutcome uint8

const (
	Accepted AcceptOutcome = iota
	WouldBlock
	Failed
)

// AcceptResult carries the outcome plus whichever payload applies.
type AcceptResult struct {
	Outcome AcceptOutcome
	Handle  *Handle
	Err     error
}

// Handle is a freshly accepted, non-blocking connection fd plus its
// addresses — spec.md §3's ConnectionHandle, minus the tls_flag which the
// caller stamps on (the listener has no TLS awareness).
type Handle struct {
	FD         int
	PeerAddr   net.Addr
	LocalAddr  net.Addr
}

// Listener binds one local address, sets it non-blocking, and accepts up
// to a caller-supplied backlog per wakeup (spec.md §4.1).
type Listener struct {
	fd   int
	addr net.Addr
}

// Bind creates a non-blocking listening socket for "host:port". Only
// tcp4/tcp6 are supported; the address family is inferred from the parsed
// IP, matching the teacher's net.Listen-based style but operating on a raw
// fd so the caller can register it with an external readiness notifier.
func Bind(address string, tuning TuningConfig) (*Listener, error) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return nil, fmt.Errorf("socket: invalid bind address %q: %w", address, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("socket: invalid port in %q: %w", address, err)
	}

	domain := unix.AF_INET
	ip := net.ParseIP(host)
	if ip == nil && host != "" {
		return nil, fmt.Errorf("socket: bind address %q is not a literal IP", host)
	}
	if ip != nil && strings.Contains(ip.String(), ":") {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("socket: socket(2): %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: SO_REUSEADDR: %w", err)
	}

	var sa unix.Sockaddr
	if domain == unix.AF_INET6 {
		var a unix.SockaddrInet6
		copy(a.Addr[:], ip.To16())
		a.Port = port
		sa = &a
	} else {
		var a unix.SockaddrInet4
		if ip != nil {
			copy(a.Addr[:], ip.To4())
		}
		a.Port = port
		sa = &a
	}

	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: bind(2): %w", err)
	}

	applyPlatformListenerOptions(fd, tuning)

	if err := unix.Listen(fd, tuningBacklog(tuning)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: listen(2): %w", err)
	}

	if err := setNonblock(fd); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: set non-blocking: %w", err)
	}

	local, err := unix.Getsockname(fd)
	var localAddr net.Addr
	if err == nil {
		localAddr = sockaddrToTCPAddr(local)
	}

	return &Listener{fd: fd, addr: localAddr}, nil
}

// tuningBacklog picks a sane listen(2) backlog; the configured accept
// backlog (spec.md §6 Configuration surface) governs per-wakeup accept
// attempts, not the kernel SYN queue, so this stays fixed.
func tuningBacklog(TuningConfig) int { return 1024 }

// FD returns the underlying descriptor for registration with the host's
// readiness notifier (spec.md §4.1 "fd() returns the underlying descriptor").
func (l *Listener) FD() int { return l.fd }

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr { return l.addr }

// Accept performs one non-blocking accept4(2). The caller is expected to
// loop this up to the configured backlog per readiness wakeup and stop at
// the first WouldBlock (spec.md §4.1).
func (l *Listener) Accept(tuning TuningConfig) AcceptResult {
	connFD, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK)
	if err != nil {
		if isWouldBlock(err) {
			return AcceptResult{Outcome: WouldBlock}
		}
		return AcceptResult{Outcome: Failed, Err: fmt.Errorf("socket: accept4(2): %w", err)}
	}

	if err := applyConn(connFD, tuning); err != nil {
		unix.Close(connFD)
		return AcceptResult{Outcome: Failed, Err: fmt.Errorf("socket: tune accepted conn: %w", err)}
	}

	peer := sockaddrToTCPAddr(sa)
	local, lerr := unix.Getsockname(connFD)
	var localAddr net.Addr
	if lerr == nil {
		localAddr = sockaddrToTCPAddr(local)
	}

	return AcceptResult{
		Outcome: Accepted,
		Handle: &Handle{
			FD:        connFD,
			PeerAddr:  peer,
			LocalAddr: localAddr,
		},
	}
}

// Close releases the listening socket.
func (l *Listener) Close() error {
	return unix.Close(l.fd)
}

func sockaddrToTCPAddr(sa unix.Sockaddr) net.Addr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	case *unix.SockaddrInet6:
		return &net.TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	default:
		return nil
	}
}
