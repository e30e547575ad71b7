package timer

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"focustimer/internal/core/budget"
	"focustimer/internal/core/clock"
	"focustimer/internal/core/model"
	"focustimer/internal/core/streak"
)

const testStart = int64(10_000_000)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type memorySettings struct {
	mu             sync.Mutex
	budget         model.BreakBudgetData
	longBreak      model.LongBreakData
	autoStartWork  bool
	autoStartBreak bool
}

func (settings *memorySettings) AutoStartWork(context.Context) (bool, error) {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	return settings.autoStartWork, nil
}

func (settings *memorySettings) AutoStartBreak(context.Context) (bool, error) {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	return settings.autoStartBreak, nil
}

func (settings *memorySettings) BreakBudgetData(context.Context) (model.BreakBudgetData, error) {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	return settings.budget, nil
}

func (settings *memorySettings) SaveBreakBudgetData(_ context.Context, data model.BreakBudgetData) error {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	settings.budget = data
	return nil
}

func (settings *memorySettings) LongBreakData(context.Context) (model.LongBreakData, error) {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	return settings.longBreak, nil
}

func (settings *memorySettings) SaveLongBreakData(_ context.Context, data model.LongBreakData) error {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	settings.longBreak = data
	return nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions []model.Session
}

func (sessions *memorySessions) Insert(_ context.Context, session model.Session) error {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	sessions.sessions = append(sessions.sessions, session)
	return nil
}

func (sessions *memorySessions) all() []model.Session {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	return append([]model.Session(nil), sessions.sessions...)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (recorder *eventRecorder) OnEvent(_ context.Context, event Event) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.events = append(recorder.events, event)
}

func (recorder *eventRecorder) all() []Event {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]Event(nil), recorder.events...)
}

func (recorder *eventRecorder) last() Event {
	events := recorder.all()
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}

type harness struct {
	ctx      context.Context
	clock    *clock.Manual
	settings *memorySettings
	sessions *memorySessions
	events   *eventRecorder
	manager  *Manager
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	settings *memorySettings
	sessions SessionRepository
	noLabel  bool
}

func withSettings(settings *memorySettings) harnessOption {
	return func(config *harnessConfig) { config.settings = settings }
}

func withSessions(sessions SessionRepository) harnessOption {
	return func(config *harnessConfig) { config.sessions = sessions }
}

func withoutLabel() harnessOption {
	return func(config *harnessConfig) { config.noLabel = true }
}

func newHarness(t *testing.T, label model.Label, options ...harnessOption) *harness {
	t.Helper()
	config := harnessConfig{settings: &memorySettings{}}
	for _, option := range options {
		option(&config)
	}
	recorded := &memorySessions{}
	if config.sessions == nil {
		config.sessions = recorded
	}

	ctx := context.Background()
	source := clock.NewManual(testStart)
	budgetManager, err := budget.New(ctx, config.settings, source, discardLogger)
	require.NoError(t, err)
	streakManager, err := streak.New(ctx, config.settings, source, discardLogger)
	require.NoError(t, err)

	manager := New(Dependencies{
		Clock:    source,
		Budget:   budgetManager,
		Streak:   streakManager,
		Sessions: config.sessions,
		Settings: config.settings,
		Logger:   discardLogger,
	}, Config{})
	if !config.noLabel {
		manager.SetLabel(ctx, label)
	}

	events := &eventRecorder{}
	manager.AddListener(events)
	return &harness{
		ctx:      ctx,
		clock:    source,
		settings: config.settings,
		sessions: recorded,
		events:   events,
		manager:  manager,
	}
}

func countdownLabel() model.Label {
	return model.Label{Name: "study", Profile: model.DefaultProfile()}
}

func countUpLabel(ratio int) model.Label {
	profile := model.DefaultProfile()
	profile.IsCountdown = false
	profile.WorkBreakRatio = ratio
	return model.Label{Name: "flow", Profile: profile}
}
