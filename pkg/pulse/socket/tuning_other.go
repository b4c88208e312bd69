//go:build !linux

package socket

// applyPlatformConnOptions is a no-op off Linux: TCP_QUICKACK has no
// portable equivalent. Adapted from the teacher's tuning_other.go fallback.
func applyPlatformConnOptions(fd int, cfg TuningConfig) {}

// applyPlatformListenerOptions is a no-op off Linux: TCP_DEFER_ACCEPT has
// no portable equivalent (Darwin's closest analogue, SO_ACCEPTFILTER,
// requires a kernel-side accept filter module this engine does not load).
func applyPlatformListenerOptions(fd int, cfg TuningConfig) {}
