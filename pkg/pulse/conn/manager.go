package conn

import (
	"errors"
	"time"
)

// ErrNoSuchClient is returned by Route when the host names an index the
// manager has no handler for (spec.md §4.9, §7: "Missing handler index
// from host: surfaced as a hard fault").
var ErrNoSuchClient = errors.New("conn: no such client")

// Manager holds the dense slab of handlers keyed by stable HandlerIndex
// (spec.md §4.9). Capacity is hinted, not enforced — the slab grows like
// any Go slice past 512 entries.
type Manager struct {
	slots []*Handler
	free  []int
}

// NewManager returns an empty manager pre-sized to the capacity hint from
// spec.md §2.
func NewManager() *Manager {
	return &Manager{slots: make([]*Handler, 0, 512)}
}

// HandleConnection allocates a fresh index and installs the handler build
// returns, bound to that index. Indices freed by Sweep are only reused on
// a later HandleConnection call, never mid-sweep (spec.md §4.9 tie-break
// rule: "no reuse of indices pending removal in the same sweep").
func (m *Manager) HandleConnection(build func(index int) *Handler) int {
	var i int
	if n := len(m.free); n > 0 {
		i = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		i = len(m.slots)
		m.slots = append(m.slots, nil)
	}
	m.slots[i] = build(i)
	return i
}

// Route forwards one readiness event to the handler at index i.
func (m *Manager) Route(i int, fn func(*Handler) error) error {
	if i < 0 || i >= len(m.slots) || m.slots[i] == nil {
		return ErrNoSuchClient
	}
	return fn(m.slots[i])
}

// Sweep implements the keep-alive sweep of spec.md §4.9: idle handlers are
// finalized and their slots freed for reuse; everything else is offered a
// poll_keep_alive check against timeout.
func (m *Manager) Sweep(now time.Time, timeout time.Duration) {
	for i, h := range m.slots {
		if h == nil {
			continue
		}
		if h.IsIdle() {
			if !h.IsFree() {
				h.SetFree()
			}
			m.slots[i] = nil
			m.free = append(m.free, i)
			continue
		}
		h.PollKeepAlive(now, timeout)
	}
}

// Shutdown tears down every live handler (spec.md §4.9).
func (m *Manager) Shutdown() {
	for _, h := range m.slots {
		if h != nil {
			h.Shutdown()
		}
	}
}

// Len returns the slab size — occupied slots plus empty placeholders
// (spec.md §4.10: "len_clients(): slab size").
func (m *Manager) Len() int { return len(m.slots) }
