// Package transport implements the per-connection capability handed to
// H1Protocol (spec.md §4.5: Transport). It is an immutable, cloneable
// bundle of addresses plus a LoopBridge — the protocol never talks to the
// readiness notifier directly, only through this capability.
package transport

import (
	"net"

	"github.com/yourusername/pulse/pkg/pulse/bridge"
)

// Transport is deliberately small and copyable by value: ClientAddr,
// ServerAddr and TLS are plain data, and LoopBridge is a pointer shared
// with the owning ConnectionHandler (spec.md §4.5: "Immutable cloneable
// capability").
type Transport struct {
	ClientAddr net.Addr
	ServerAddr net.Addr
	TLS        bool
	bridge     *bridge.LoopBridge
}

// New builds a Transport bound to the given bridge and addresses.
func New(b *bridge.LoopBridge, client, server net.Addr, tls bool) Transport {
	return Transport{ClientAddr: client, ServerAddr: server, TLS: tls, bridge: b}
}

// PauseReading disarms the reader so the host stops delivering
// data_received callbacks — used for read-side backpressure (spec.md §4.5).
func (t Transport) PauseReading() { t.bridge.DisarmReader() }

// ResumeReading re-arms the reader.
func (t Transport) ResumeReading() { t.bridge.ArmReader() }

// PauseWriting disarms the writer.
func (t Transport) PauseWriting() { t.bridge.DisarmWriter() }

// ResumeWriting re-arms the writer — called at the end of data_received
// per spec.md §4.6's step 5 so the response path gets a chance to run.
func (t Transport) ResumeWriting() { t.bridge.ArmWriter() }

// Close asks the host to schedule the owning connection for teardown.
func (t Transport) Close() { t.bridge.ScheduleClose() }
