// Package plog wires the engine's lifecycle events to a structured logger.
//
// The engine never logs on the per-byte hot path; its log sites sit only
// at state transitions (listener bind, accept failure). Noop returns a
// Logger that discards everything.
package plog

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the narrow logging surface the engine depends on. Components
// hold an interface, not a concrete zerolog.Logger, so callers can plug in
// their own sink without pulling zerolog into their own import graph.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, err error, kv ...any)
}

// noop discards everything. It is the default when a caller does not
// supply a Logger.
type noop struct{}

func (noop) Debug(string, ...any)      {}
func (noop) Info(string, ...any)       {}
func (noop) Warn(string, ...any)       {}
func (noop) Error(string, error, ...any) {}

// Noop returns the no-op Logger singleton.
func Noop() Logger { return noop{} }

// zlog adapts zerolog.Logger to Logger.
type zlog struct {
	l zerolog.Logger
}

// New builds a zerolog-backed Logger writing to stderr, honoring
// PULSE_LOG_LEVEL (trace|debug|info|warn|error|disabled). engine.New uses
// it for every Server.
func New() Logger {
	level := parseLevel(os.Getenv("PULSE_LOG_LEVEL"))
	l := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return zlog{l: l}
}

func parseLevel(v string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	case "info", "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}

func withFields(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}

func (z zlog) Debug(msg string, kv ...any) {
	withFields(z.l.Debug(), kv).Msg(msg)
}

func (z zlog) Info(msg string, kv ...any) {
	withFields(z.l.Info(), kv).Msg(msg)
}

func (z zlog) Warn(msg string, kv ...any) {
	withFields(z.l.Warn(), kv).Msg(msg)
}

func (z zlog) Error(msg string, err error, kv ...any) {
	withFields(z.l.Error().Err(err), kv).Msg(msg)
}
