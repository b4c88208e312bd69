// Package engine implements Server (spec.md §4.10): the façade the host
// loop drives directly. It owns the listeners, the connection manager, and
// the application callback, and exposes exactly the verbs spec.md §6
// promises the host.
package engine

import (
	"fmt"
	"time"

	"github.com/yourusername/pulse/pkg/pulse/bridge"
	"github.com/yourusername/pulse/pkg/pulse/conn"
	"github.com/yourusername/pulse/pkg/pulse/h1"
	"github.com/yourusername/pulse/pkg/pulse/plog"
	"github.com/yourusername/pulse/pkg/pulse/proto"
	"github.com/yourusername/pulse/pkg/pulse/socket"
	"github.com/yourusername/pulse/pkg/pulse/transport"
)

// Server owns every listener, the handler slab, and the application
// callback (spec.md §4.10).
type Server struct {
	config  Config
	tuning  socket.TuningConfig
	app     h1.AppCallback
	log     plog.Logger
	tls     bool

	listeners []*socket.Listener
	manager   *conn.Manager
	hooks     bridge.Hooks
	stats     Stats
}

// New constructs a Server bound to app; call Ignite to bind addresses and
// Init to wire host hooks before driving any poll_* verb.
func New(cfg Config, app h1.AppCallback) *Server {
	return &Server{
		config:  cfg,
		tuning:  socket.DefaultTuning(),
		app:     app,
		log:     plog.New(),
		manager: conn.NewManager(),
	}
}

// Ignite binds every configured address and, for each listener index i,
// invokes acceptCallback(fd, i) so the host can register read readiness
// (spec.md §4.10: "ignite(accept_callback)").
func (s *Server) Ignite(acceptCallback func(fd int, index int)) error {
	for _, addr := range s.config.BindAddresses {
		l, err := socket.Bind(addr, s.tuning)
		if err != nil {
			return fmt.Errorf("engine: bind %s: %w", addr, err)
		}
		idx := len(s.listeners)
		s.listeners = append(s.listeners, l)
		s.log.Info("listener bound", "addr", addr, "index", idx)
		acceptCallback(l.FD(), idx)
	}
	s.stats.StartTime = time.Now()
	return nil
}

// Init stores the five host hooks used by every LoopBridge the engine
// creates for accepted connections (spec.md §4.10, §6).
func (s *Server) Init(hooks bridge.Hooks) {
	s.hooks = hooks
}

// PollAccept drains listener i up to the configured backlog, forwarding
// each accepted handle to the connection manager (spec.md §4.10, §4.1).
func (s *Server) PollAccept(i int) error {
	if i < 0 || i >= len(s.listeners) {
		return conn.ErrNoSuchClient
	}
	l := s.listeners[i]

	for attempts := 0; attempts < s.backlog(); attempts++ {
		res := l.Accept(s.tuning)
		switch res.Outcome {
		case socket.WouldBlock:
			return nil
		case socket.Failed:
			s.stats.ConnectionErrors.Add(1)
			s.log.Warn("accept failed", "listener", i, "err", res.Err)
			return res.Err
		case socket.Accepted:
			s.admit(res.Handle)
		}
	}
	return nil
}

func (s *Server) backlog() int {
	if s.config.Backlog > 0 {
		return s.config.Backlog
	}
	return 1024
}

func (s *Server) admit(h *socket.Handle) {
	s.manager.HandleConnection(func(index int) *conn.Handler {
		lb := bridge.New(s.hooks, h.FD, index)
		stream := socket.New(h.FD)
		t := transport.New(lb, h.PeerAddr, h.LocalAddr, s.tls)
		protocol := h1.New(s.app)
		protocol.NewConnection(t, s.tls)
		ap := proto.New(t, protocol)
		handler := conn.NewHandler(stream, lb, ap, h.PeerAddr, h.LocalAddr)
		lb.ArmReader()
		return handler
	})
	s.stats.TotalConnections.Add(1)
	s.stats.ActiveConnections.Add(1)
}

// PollRead forwards a read-readiness event to handler index i.
func (s *Server) PollRead(i int) error {
	return s.manager.Route(i, func(h *conn.Handler) error { return h.PollRead() })
}

// PollWrite forwards a write-readiness event to handler index i.
func (s *Server) PollWrite(i int) error {
	return s.manager.Route(i, func(h *conn.Handler) error { return h.PollWrite() })
}

// PollClose forwards a scheduled close to handler index i.
func (s *Server) PollClose(i int) error {
	return s.manager.Route(i, func(h *conn.Handler) error { return h.PollClose() })
}

// PollKeepAlive runs the manager's sweep (spec.md §4.10, §4.9).
func (s *Server) PollKeepAlive() {
	s.manager.Sweep(time.Now(), s.config.KeepAlive)
}

// Shutdown tears every handler and listener down.
func (s *Server) Shutdown() {
	s.manager.Shutdown()
	for _, l := range s.listeners {
		l.Close()
	}
}

// LenClients returns the manager's slab size (spec.md §4.10).
func (s *Server) LenClients() int { return s.manager.Len() }

// StatsSnapshot exposes the engine's lifetime counters.
func (s *Server) StatsSnapshot() *Stats { return &s.stats }
