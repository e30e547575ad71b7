package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/clock"
	"focustimer/internal/core/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeController struct {
	calls  []string
	data   model.DomainTimerData
	budget time.Duration
	streak int
}

func (c *fakeController) Start(_ context.Context, timerType model.TimerType) {
	c.calls = append(c.calls, "start:"+string(timerType))
}
func (c *fakeController) Toggle(context.Context)       { c.calls = append(c.calls, "toggle") }
func (c *fakeController) AddOneMinute(context.Context) { c.calls = append(c.calls, "add") }
func (c *fakeController) Finish(context.Context)       { c.calls = append(c.calls, "finish") }
func (c *fakeController) Next(context.Context)         { c.calls = append(c.calls, "next") }
func (c *fakeController) Skip(context.Context)         { c.calls = append(c.calls, "skip") }
func (c *fakeController) Reset(context.Context)        { c.calls = append(c.calls, "reset") }
func (c *fakeController) Data() model.DomainTimerData  { return c.data }
func (c *fakeController) BreakBudget() time.Duration   { return c.budget }
func (c *fakeController) Streak() int                  { return c.streak }

type fakeLabels struct {
	names  []string
	active string
}

func (l *fakeLabels) Labels(context.Context) []string { return l.names }

func (l *fakeLabels) SetActiveLabel(_ context.Context, name string) error {
	if name != "" && name != "study" {
		return errors.New("label not found")
	}
	l.active = name
	return nil
}

type fakeHistory struct {
	sessions []model.Session
	limit    int
}

func (h *fakeHistory) Recent(_ context.Context, limit int) ([]model.Session, error) {
	h.limit = limit
	return h.sessions, nil
}

func newTestConsole() (*Console, *fakeController, *fakeLabels, *fakeHistory, *bytes.Buffer) {
	controller := &fakeController{data: model.NewTimerData(model.DefaultLabel(), true)}
	labels := &fakeLabels{names: []string{"study"}}
	history := &fakeHistory{}
	out := &bytes.Buffer{}
	console := New(controller, labels, history, clock.NewManual(0), out, discardLogger)
	return console, controller, labels, history, out
}

func TestExecuteDispatchesCommands(t *testing.T) {
	console, controller, _, _, out := newTestConsole()
	ctx := context.Background()

	for _, line := range []string{"start", "start long", "toggle", "pause", "add", "finish", "next", "skip", "reset", "  ", "status"} {
		quit, err := console.Execute(ctx, line)
		require.NoError(t, err, line)
		assert.False(t, quit)
	}

	assert.Equal(t, []string{
		"start:work", "start:long_break", "toggle", "toggle", "add", "finish", "next", "skip", "reset",
	}, controller.calls)
	assert.Contains(t, out.String(), "[default] idle | streak 0")
}

func TestExecuteErrors(t *testing.T) {
	console, controller, _, _, _ := newTestConsole()
	ctx := context.Background()

	_, err := console.Execute(ctx, "dance")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = console.Execute(ctx, "start nap")
	assert.ErrorContains(t, err, "unknown segment type")

	_, err = console.Execute(ctx, "history zero")
	assert.ErrorContains(t, err, "invalid history limit")

	assert.Empty(t, controller.calls)
}

func TestExecuteQuit(t *testing.T) {
	console, _, _, _, _ := newTestConsole()

	quit, err := console.Execute(context.Background(), "QUIT")

	require.NoError(t, err)
	assert.True(t, quit)
}

func TestLabelCommand(t *testing.T) {
	console, _, labels, _, out := newTestConsole()
	ctx := context.Background()

	_, err := console.Execute(ctx, "label")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "labels: (default), study")

	_, err = console.Execute(ctx, "label study")
	require.NoError(t, err)
	assert.Equal(t, "study", labels.active)

	_, err = console.Execute(ctx, "label default")
	require.NoError(t, err)
	assert.Empty(t, labels.active)

	_, err = console.Execute(ctx, "label missing")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	console, _, _, history, out := newTestConsole()
	ctx := context.Background()

	_, err := console.Execute(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, history.limit)
	assert.Contains(t, out.String(), "no sessions recorded")

	history.sessions = []model.Session{
		{Timestamp: time.Now(), Duration: 25, Label: "study", IsWork: true},
		{Timestamp: time.Now(), Duration: 3, Interrupted: true},
	}
	out.Reset()
	_, err = console.Execute(ctx, "history 2")
	require.NoError(t, err)
	assert.Equal(t, 2, history.limit)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "work")
	assert.Contains(t, lines[0], "study")
	assert.Contains(t, lines[1], "default (interrupted)")
}

func TestRunStopsAtQuit(t *testing.T) {
	console, controller, _, _, _ := newTestConsole()

	err := console.Run(context.Background(), strings.NewReader("start\nquit\nreset\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"start:work"}, controller.calls)
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	console, controller, _, _, out := newTestConsole()

	err := console.Run(context.Background(), strings.NewReader("bogus\nnext\n"))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "error: unknown command: bogus")
	assert.Equal(t, []string{"next"}, controller.calls)
}

func TestFormatStatus(t *testing.T) {
	countUp := model.Label{Name: "flow", Profile: model.DefaultProfile()}
	countUp.Profile.IsCountdown = false

	tests := []struct {
		name   string
		data   model.DomainTimerData
		budget time.Duration
		want   string
	}{
		{
			name: "not ready",
			data: model.NewTimerData(model.DefaultLabel(), false),
			want: "loading label...",
		},
		{
			name: "running countdown",
			data: model.DomainTimerData{
				IsReady: true, Label: model.DefaultLabel(), Type: model.TimerTypeWork,
				State: model.StateRunning, EndTime: 90_500,
			},
			want: "[default] work running, 01:30 left | streak 2",
		},
		{
			name: "paused",
			data: model.DomainTimerData{
				IsReady: true, Label: model.DefaultLabel(), Type: model.TimerTypeBreak,
				State: model.StatePaused, TimeAtPause: 61_000,
			},
			want: "[default] break paused, 01:01 left | streak 2",
		},
		{
			name: "finished count-up",
			data: model.DomainTimerData{
				IsReady: true, Label: countUp, Type: model.TimerTypeWork,
				State: model.StateFinished, CompletedMinutes: 12,
			},
			budget: 4 * time.Minute,
			want:   "[flow] work finished after 12 min | streak 2 | break budget 04:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatStatus(tt.data, 500, tt.budget, 2))
		})
	}
}
