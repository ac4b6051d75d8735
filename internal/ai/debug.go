package ai

import "sync/atomic"

// debugLoggingEnabled gates per-frame and per-scan debug logs of the AI package.
// Checked instead of the slog level so hot paths skip building attributes.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles AI debug logs. Called once from main after config load.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether AI debug logs are on.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
