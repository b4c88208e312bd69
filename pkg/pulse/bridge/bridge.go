// Package bridge implements the façade over the host's readiness
// multiplexer (spec.md §4.3: LoopBridge). It records (fd, handler index)
// and exposes idempotent arm/disarm/close operations the host callbacks
// key off of.
package bridge

// Hooks are the five host-provided callbacks from spec.md §6: arm/disarm
// reader and writer, and schedule-close. They are stored once at
// Server.init and shared by every LoopBridge the engine creates — the
// teacher's "callback-holding objects become value types carrying function
// references" re-architecture note (spec.md §9) applied directly.
type Hooks struct {
	ArmReader     func(fd int, index int)
	DisarmReader  func(fd int)
	ArmWriter     func(fd int, index int)
	DisarmWriter  func(fd int)
	ScheduleClose func(index int)
}

// LoopBridge binds one (fd, handler index) pair to the shared Hooks and
// tracks its own arm state so repeated arm/disarm calls are no-ops
// (spec.md §4.3, §8 "arm_reader followed by arm_reader makes exactly one
// host call").
type LoopBridge struct {
	hooks Hooks
	fd    int
	index int

	readerArmed bool
	writerArmed bool
}

// New binds a LoopBridge to fd/index using the shared Hooks.
func New(hooks Hooks, fd, index int) *LoopBridge {
	return &LoopBridge{hooks: hooks, fd: fd, index: index}
}

// Rebind clears both arm booleans and switches the fd/index this bridge
// names, so one bridge can serve a new connection (spec.md §4.3). The
// engine itself builds a fresh bridge for each accepted connection.
func (b *LoopBridge) Rebind(fd, index int) {
	b.fd = fd
	b.index = index
	b.readerArmed = false
	b.writerArmed = false
}

// ArmReader is a no-op if the reader is already armed.
func (b *LoopBridge) ArmReader() {
	if b.readerArmed {
		return
	}
	b.readerArmed = true
	if b.hooks.ArmReader != nil {
		b.hooks.ArmReader(b.fd, b.index)
	}
}

// DisarmReader is a no-op if the reader is not armed.
func (b *LoopBridge) DisarmReader() {
	if !b.readerArmed {
		return
	}
	b.readerArmed = false
	if b.hooks.DisarmReader != nil {
		b.hooks.DisarmReader(b.fd)
	}
}

// ArmWriter is a no-op if the writer is already armed.
func (b *LoopBridge) ArmWriter() {
	if b.writerArmed {
		return
	}
	b.writerArmed = true
	if b.hooks.ArmWriter != nil {
		b.hooks.ArmWriter(b.fd, b.index)
	}
}

// DisarmWriter is a no-op if the writer is not armed.
func (b *LoopBridge) DisarmWriter() {
	if !b.writerArmed {
		return
	}
	b.writerArmed = false
	if b.hooks.DisarmWriter != nil {
		b.hooks.DisarmWriter(b.fd)
	}
}

// ScheduleClose asks the host to eventually invoke poll_close(index). Not
// itself idempotent at this layer — ConnectionHandler.shutdown is the
// idempotency boundary for close (spec.md §4.8).
func (b *LoopBridge) ScheduleClose() {
	if b.hooks.ScheduleClose != nil {
		b.hooks.ScheduleClose(b.index)
	}
}

// Index returns the bound handler index.
func (b *LoopBridge) Index() int { return b.index }

// FD returns the bound file descriptor.
func (b *LoopBridge) FD() int { return b.fd }

// ReaderArmed reports current reader arm state, used by tests verifying
// the idempotency invariant from spec.md §8.
func (b *LoopBridge) ReaderArmed() bool { return b.readerArmed }

// WriterArmed reports current writer arm state.
func (b *LoopBridge) WriterArmed() bool { return b.writerArmed }
