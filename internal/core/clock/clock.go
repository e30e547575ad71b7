// Package clock defines the monotonic time source used by the timer core.
package clock

import (
	"sync"
	"time"
)

// Clock returns monotonic milliseconds. Values are only comparable with each
// other, never with wall-clock time.
type Clock interface {
	NowMillis() int64
}

// Func adapts a function to Clock.
type Func func() int64

// NowMillis implements Clock.
func (fn Func) NowMillis() int64 {
	return fn()
}

// Manual is a Clock advanced explicitly. It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual returns a manual clock starting at the given milliseconds.
func NewManual(start int64) *Manual {
	return &Manual{now: start}
}

// NowMillis implements Clock.
func (manual *Manual) NowMillis() int64 {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// Advance moves the clock forward.
func (manual *Manual) Advance(delta time.Duration) {
	manual.mu.Lock()
	manual.now += delta.Milliseconds()
	manual.mu.Unlock()
}

// Set moves the clock to an absolute value.
func (manual *Manual) Set(millis int64) {
	manual.mu.Lock()
	manual.now = millis
	manual.mu.Unlock()
}
