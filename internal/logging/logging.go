// Package logging builds the structured logger used across the host.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"focustimer/internal/core/timer"
)

// ParseLevel converts a config level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// NewLogger returns a structured slog.Logger writing to w.
// format is "json" or "text".
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: parsed}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, options)
	case "text", "":
		handler = slog.NewTextHandler(w, options)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), nil
}

// EventListener logs every timer event at info level.
func EventListener(logger *slog.Logger) timer.Listener {
	logger = logger.With("component", "timer_events")
	return timer.ListenerFunc(func(ctx context.Context, event timer.Event) {
		attrs := []any{"event", event.Type()}
		switch e := event.(type) {
		case timer.StartEvent:
			attrs = append(attrs, "type", e.TimerType, "end_time", e.EndTime, "auto_started", e.AutoStarted)
		case timer.AddOneMinuteEvent:
			attrs = append(attrs, "end_time", e.EndTime)
		case timer.FinishedEvent:
			attrs = append(attrs, "type", e.TimerType, "autostart_next", e.AutostartNextSession)
		case timer.UpdateActiveLabelEvent:
			attrs = append(attrs, "label", e.Label.Name)
		}
		logger.InfoContext(ctx, "timer event", attrs...)
	})
}
