package timer

import (
	"context"

	"focustimer/internal/core/model"
)

// LabelProvider supplies the active label and its updates.
type LabelProvider interface {
	ActiveLabel(ctx context.Context) (model.Label, error)
	WatchActiveLabel(ctx context.Context) <-chan model.Label
}

// SessionRepository stores finished and interrupted segments.
type SessionRepository interface {
	Insert(ctx context.Context, session model.Session) error
}

// SettingsRepository exposes the auto-start preferences.
type SettingsRepository interface {
	AutoStartWork(ctx context.Context) (bool, error)
	AutoStartBreak(ctx context.Context) (bool, error)
}

// Listener receives every dispatched event. Listeners must not call back into
// the Manager synchronously.
//
//go:generate mockgen -source=repository.go -destination=mock_repository_test.go -package=timer
type Listener interface {
	OnEvent(ctx context.Context, event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, event Event)

// OnEvent implements Listener.
func (fn ListenerFunc) OnEvent(ctx context.Context, event Event) {
	fn(ctx, event)
}
