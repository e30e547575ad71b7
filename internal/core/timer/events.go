package timer

import "focustimer/internal/core/model"

// EventType defines the type of a timer event.
type EventType string

const (
	EventStart             EventType = "start"
	EventPause             EventType = "pause"
	EventAddOneMinute      EventType = "add_one_minute"
	EventFinished          EventType = "finished"
	EventReset             EventType = "reset"
	EventUpdateActiveLabel EventType = "update_active_label"
)

// Event is dispatched once per transition. The set of implementations is
// closed: StartEvent, PauseEvent, AddOneMinuteEvent, FinishedEvent, ResetEvent
// and UpdateActiveLabelEvent.
type Event interface {
	Type() EventType
	isEvent()
}

// StartEvent reports a segment that started or resumed running.
type StartEvent struct {
	TimerType   model.TimerType
	EndTime     int64
	AutoStarted bool
}

// PauseEvent reports a paused segment.
type PauseEvent struct{}

// AddOneMinuteEvent reports an extended segment and its new end time.
type AddOneMinuteEvent struct {
	EndTime int64
}

// FinishedEvent reports a segment that reached its end.
type FinishedEvent struct {
	TimerType            model.TimerType
	AutostartNextSession bool
}

// ResetEvent reports a timer returned to inactive.
type ResetEvent struct{}

// UpdateActiveLabelEvent reports a new active label while the timer is idle.
type UpdateActiveLabelEvent struct {
	Label model.Label
}

func (StartEvent) Type() EventType             { return EventStart }
func (PauseEvent) Type() EventType             { return EventPause }
func (AddOneMinuteEvent) Type() EventType      { return EventAddOneMinute }
func (FinishedEvent) Type() EventType          { return EventFinished }
func (ResetEvent) Type() EventType             { return EventReset }
func (UpdateActiveLabelEvent) Type() EventType { return EventUpdateActiveLabel }

func (StartEvent) isEvent()             {}
func (PauseEvent) isEvent()             {}
func (AddOneMinuteEvent) isEvent()      {}
func (FinishedEvent) isEvent()          {}
func (ResetEvent) isEvent()             {}
func (UpdateActiveLabelEvent) isEvent() {}
