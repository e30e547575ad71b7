package platform

import (
	"time"

	"focustimer/internal/core/clock"
)

// processStart anchors the fallback clock when the OS clock is unavailable.
var processStart = time.Now()

// NewMonotonicClock returns a clock that never jumps with wall time changes.
// It keeps counting through system suspend where the OS supports it.
func NewMonotonicClock() clock.Clock {
	return clock.Func(monotonicMillis)
}

func fallbackMillis() int64 {
	return time.Since(processStart).Milliseconds()
}
