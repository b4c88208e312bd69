package bus

import "errors"

// ErrClosed names the closed-channel fault. The channel methods do not
// return it: they report closure as RecvClosed / SendClosed outcomes.
var ErrClosed = errors.New("bus: channel closed")

// ErrFull names the channel-at-capacity fault. The channel methods do not
// return it: TrySend reports SendFull, and the h1 response handles turn
// that into h1.ErrWouldBlock for the application.
var ErrFull = errors.New("bus: channel full")
