package model

import "time"

// TimerType identifies the kind of segment being timed.
type TimerType string

const (
	TimerTypeWork      TimerType = "work"
	TimerTypeBreak     TimerType = "break"
	TimerTypeLongBreak TimerType = "long_break"
)

// IsWork reports whether the type is a work segment.
func (timerType TimerType) IsWork() bool {
	return timerType == TimerTypeWork
}

// ParseTimerType converts user input to a TimerType.
func ParseTimerType(value string) (TimerType, bool) {
	switch value {
	case "work", "focus", "":
		return TimerTypeWork, true
	case "break", "short_break":
		return TimerTypeBreak, true
	case "long", "long_break":
		return TimerTypeLongBreak, true
	}
	return "", false
}

// TimerState represents the lifecycle position of the current segment.
type TimerState string

const (
	StateInactive TimerState = "inactive"
	StateRunning  TimerState = "running"
	StatePaused   TimerState = "paused"
	StateFinished TimerState = "finished"
	// StateReset labels the reset transition. Snapshots never rest in it.
	StateReset TimerState = "reset"
)

// IsActive reports whether a segment is in progress.
func (state TimerState) IsActive() bool {
	return state == StateRunning || state == StatePaused
}

// DomainTimerData is the immutable snapshot of the timer.
// All timestamps are monotonic clock milliseconds.
type DomainTimerData struct {
	IsReady          bool
	Label            Label
	StartTime        int64
	LastStartTime    int64
	EndTime          int64
	LastPauseTime    int64
	TimeSpentPaused  int64
	Type             TimerType
	State            TimerState
	CompletedMinutes int64
	TimeAtPause      int64
	Interruptions    int
}

// NewTimerData returns the inactive snapshot for a label.
func NewTimerData(label Label, ready bool) DomainTimerData {
	return DomainTimerData{
		IsReady: ready,
		Label:   label,
		Type:    TimerTypeWork,
		State:   StateInactive,
	}
}

// Profile returns the profile of the snapshot's label.
func (data DomainTimerData) Profile() TimerProfile {
	return data.Label.Profile
}

// RemainingAt returns the time left until EndTime.
func (data DomainTimerData) RemainingAt(now int64) time.Duration {
	switch data.State {
	case StateRunning:
		return clampMillis(data.EndTime - now)
	case StatePaused:
		return clampMillis(data.TimeAtPause)
	}
	return 0
}

// ElapsedAt returns the active time of the segment, pauses excluded.
func (data DomainTimerData) ElapsedAt(now int64) time.Duration {
	switch data.State {
	case StateRunning:
		return clampMillis(now - data.StartTime - data.TimeSpentPaused)
	case StatePaused:
		return clampMillis(data.LastPauseTime - data.StartTime - data.TimeSpentPaused)
	}
	return 0
}

func clampMillis(millis int64) time.Duration {
	if millis < 0 {
		return 0
	}
	return time.Duration(millis) * time.Millisecond
}
