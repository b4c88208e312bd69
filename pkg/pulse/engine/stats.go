package engine

import (
	"sync/atomic"
	"time"
)

// Stats tracks lifetime engine counters, grounded on the teacher's
// atomic-counter Stats struct (server/server.go) — these fields ARE read
// from outside the host loop thread (an operator dashboard, a metrics
// scrape goroutine), unlike the rest of the engine's single-threaded
// state, so they keep the teacher's atomic types.
type Stats struct {
	TotalConnections  atomic.Uint64
	ActiveConnections atomic.Int64
	TotalRequests     atomic.Uint64
	ConnectionErrors  atomic.Uint64
	StartTime         time.Time
}

// Uptime returns the time since the engine was ignited.
func (s *Stats) Uptime() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime)
}
