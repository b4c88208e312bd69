package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatsUptimeZeroBeforeStart(t *testing.T) {
	var s Stats
	require.Equal(t, time.Duration(0), s.Uptime())
}

func TestStatsUptimeAdvancesAfterStart(t *testing.T) {
	var s Stats
	s.StartTime = time.Now().Add(-time.Minute)
	require.GreaterOrEqual(t, s.Uptime(), time.Minute)
}

func TestStatsCountersAreIndependentAtomics(t *testing.T) {
	var s Stats
	s.TotalConnections.Add(3)
	s.ActiveConnections.Add(2)
	s.TotalRequests.Add(5)
	s.ConnectionErrors.Add(1)

	require.Equal(t, uint64(3), s.TotalConnections.Load())
	require.Equal(t, int64(2), s.ActiveConnections.Load())
	require.Equal(t, uint64(5), s.TotalRequests.Load())
	require.Equal(t, uint64(1), s.ConnectionErrors.Load())
}
