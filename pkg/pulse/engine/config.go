package engine

import "time"

// Config is the external configuration surface from spec.md §6:
// "{ backlog:usize, keep_alive:duration, bind_addresses:[string] }".
type Config struct {
	Backlog       int
	KeepAlive     time.Duration
	BindAddresses []string
}

// DefaultConfig mirrors the teacher's DefaultConnectionConfig pattern:
// sane defaults the host can override field by field.
func DefaultConfig() Config {
	return Config{
		Backlog:   1024,
		KeepAlive: 60 * time.Second,
	}
}
