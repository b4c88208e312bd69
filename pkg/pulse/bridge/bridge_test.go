package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArmReaderIsIdempotent(t *testing.T) {
	calls := 0
	b := New(Hooks{ArmReader: func(fd, index int) { calls++ }}, 7, 1)

	b.ArmReader()
	b.ArmReader()
	require.Equal(t, 1, calls)
	require.True(t, b.ReaderArmed())
}

func TestDisarmReaderIsIdempotent(t *testing.T) {
	calls := 0
	b := New(Hooks{
		ArmReader:    func(fd, index int) {},
		DisarmReader: func(fd int) { calls++ },
	}, 7, 1)

	b.ArmReader()
	b.DisarmReader()
	b.DisarmReader()
	require.Equal(t, 1, calls)
	require.False(t, b.ReaderArmed())
}

func TestDisarmReaderWithoutPriorArmIsNoOp(t *testing.T) {
	calls := 0
	b := New(Hooks{DisarmReader: func(fd int) { calls++ }}, 7, 1)
	b.DisarmReader()
	require.Equal(t, 0, calls)
}

func TestArmDisarmWriterSymmetricToReader(t *testing.T) {
	armCalls, disarmCalls := 0, 0
	b := New(Hooks{
		ArmWriter:    func(fd, index int) { armCalls++ },
		DisarmWriter: func(fd int) { disarmCalls++ },
	}, 7, 1)

	b.ArmWriter()
	b.ArmWriter()
	require.Equal(t, 1, armCalls)
	require.True(t, b.WriterArmed())

	b.DisarmWriter()
	b.DisarmWriter()
	require.Equal(t, 1, disarmCalls)
	require.False(t, b.WriterArmed())
}

func TestScheduleCloseInvokesHookWithBoundIndex(t *testing.T) {
	var gotIndex int
	b := New(Hooks{ScheduleClose: func(index int) { gotIndex = index }}, 7, 42)
	b.ScheduleClose()
	require.Equal(t, 42, gotIndex)
}

func TestRebindClearsArmStateAndUpdatesFDIndex(t *testing.T) {
	b := New(Hooks{
		ArmReader: func(fd, index int) {},
		ArmWriter: func(fd, index int) {},
	}, 7, 1)
	b.ArmReader()
	b.ArmWriter()
	require.True(t, b.ReaderArmed())
	require.True(t, b.WriterArmed())

	b.Rebind(9, 2)
	require.False(t, b.ReaderArmed())
	require.False(t, b.WriterArmed())
	require.Equal(t, 9, b.FD())
	require.Equal(t, 2, b.Index())
}

func TestHooksAreOptionalAndSafeToOmit(t *testing.T) {
	b := New(Hooks{}, 7, 1)
	require.NotPanics(t, func() {
		b.ArmReader()
		b.DisarmReader()
		b.ArmWriter()
		b.DisarmWriter()
		b.ScheduleClose()
	})
}
