package platform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/clock"
	"focustimer/internal/core/timer"
)

// Finisher completes the running segment if it still ends at endTime.
type Finisher interface {
	FinishAt(ctx context.Context, endTime int64)
}

// DeadlineAlarm is a timer listener that finishes a segment when its end time
// is reached. It holds at most one armed one-shot timer.
type DeadlineAlarm struct {
	mu         sync.Mutex
	clock      clock.Clock
	finisher   Finisher
	logger     *slog.Logger
	pending    *time.Timer
	generation uint64
	paused     bool
	closed     bool
}

// NewDeadlineAlarm creates an alarm that calls finisher.FinishAt at deadlines.
func NewDeadlineAlarm(source clock.Clock, finisher Finisher, logger *slog.Logger) *DeadlineAlarm {
	return &DeadlineAlarm{
		clock:    source,
		finisher: finisher,
		logger:   logger.With("component", "deadline_alarm"),
	}
}

// OnEvent arms or disarms the alarm.
func (alarm *DeadlineAlarm) OnEvent(_ context.Context, event timer.Event) {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()

	switch e := event.(type) {
	case timer.StartEvent:
		alarm.paused = false
		alarm.armLocked(e.EndTime)
	case timer.AddOneMinuteEvent:
		if !alarm.paused {
			alarm.armLocked(e.EndTime)
		}
	case timer.PauseEvent:
		alarm.paused = true
		alarm.disarmLocked()
	case timer.FinishedEvent, timer.ResetEvent:
		alarm.paused = false
		alarm.disarmLocked()
	}
}

// Armed reports whether a deadline is pending.
func (alarm *DeadlineAlarm) Armed() bool {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	return alarm.pending != nil
}

// Close disarms the alarm permanently.
func (alarm *DeadlineAlarm) Close() {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	alarm.closed = true
	alarm.disarmLocked()
}

func (alarm *DeadlineAlarm) armLocked(endTime int64) {
	alarm.disarmLocked()
	if alarm.closed {
		return
	}

	delay := time.Duration(endTime-alarm.clock.NowMillis()) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	generation := alarm.generation
	alarm.pending = time.AfterFunc(delay, func() { alarm.fire(generation, endTime) })
	alarm.logger.Debug("alarm armed", "delay", delay)
}

func (alarm *DeadlineAlarm) disarmLocked() {
	alarm.generation++
	if alarm.pending != nil {
		alarm.pending.Stop()
		alarm.pending = nil
	}
}

func (alarm *DeadlineAlarm) fire(generation uint64, endTime int64) {
	alarm.mu.Lock()
	if generation != alarm.generation {
		alarm.mu.Unlock()
		return
	}
	alarm.pending = nil
	alarm.mu.Unlock()

	alarm.logger.Debug("deadline reached", "end_time", endTime)
	// FinishAt dispatches FinishedEvent back to OnEvent, so the lock is released
	// first. The deadline lets the timer reject a segment started in between.
	alarm.finisher.FinishAt(context.Background(), endTime)
}
