package xperf

import "sync"

// Singleton: the process-wide Logger.
var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide Logger, created lazily on first access.
// The instance identity never changes for the life of the process: Clear
// resets its content, Close freezes it, but no call replaces it. Callers who
// need isolation use New() instead.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}
