// Package timer owns the session snapshot and its transitions.
package timer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"focustimer/internal/core/budget"
	"focustimer/internal/core/clock"
	"focustimer/internal/core/model"
	"focustimer/internal/core/streak"
)

// DefaultCountUpHardLimit caps a count-up work segment.
const DefaultCountUpHardLimit = 900 * time.Minute

const oneMinute = int64(60_000)

// Config contains runtime options for the Manager.
type Config struct {
	CountUpHardLimit time.Duration
	// WallClock stamps persisted sessions. Defaults to time.Now.
	WallClock func() time.Time
}

// Dependencies are the collaborators of the Manager.
type Dependencies struct {
	Clock    clock.Clock
	Budget   *budget.Manager
	Streak   *streak.Manager
	Sessions SessionRepository
	Settings SettingsRepository
	Logger   *slog.Logger
}

// Manager is the timer state machine. Every operation runs under one lock,
// persistence and event dispatch included, so transitions never interleave.
type Manager struct {
	mu          sync.Mutex
	options     Config
	clock       clock.Clock
	budget      *budget.Manager
	streak      *streak.Manager
	sessions    SessionRepository
	settings    SettingsRepository
	logger      *slog.Logger
	listeners   []Listener
	activeLabel model.Label

	data atomic.Pointer[model.DomainTimerData]

	subMu       sync.Mutex
	subscribers []chan model.DomainTimerData
	closed      bool
}

// New creates a Manager in the inactive, not ready snapshot.
func New(deps Dependencies, options Config) *Manager {
	if options.CountUpHardLimit <= 0 {
		options.CountUpHardLimit = DefaultCountUpHardLimit
	}
	if options.WallClock == nil {
		options.WallClock = time.Now
	}

	manager := &Manager{
		options:     options,
		clock:       deps.Clock,
		budget:      deps.Budget,
		streak:      deps.Streak,
		sessions:    deps.Sessions,
		settings:    deps.Settings,
		logger:      deps.Logger.With("component", "timer_manager"),
		activeLabel: model.DefaultLabel(),
	}
	initial := model.NewTimerData(manager.activeLabel, false)
	manager.data.Store(&initial)
	return manager
}

// AddListener registers an event listener.
func (manager *Manager) AddListener(listener Listener) {
	manager.mu.Lock()
	manager.listeners = append(manager.listeners, listener)
	manager.mu.Unlock()
}

// Data returns the current snapshot.
func (manager *Manager) Data() model.DomainTimerData {
	return *manager.data.Load()
}

// Subscribe registers a new snapshot observer. A slow observer misses
// intermediate snapshots but always receives the latest one.
func (manager *Manager) Subscribe(buffer int) <-chan model.DomainTimerData {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan model.DomainTimerData, buffer)
	manager.subMu.Lock()
	defer manager.subMu.Unlock()
	if manager.closed {
		close(ch)
		return ch
	}
	manager.subscribers = append(manager.subscribers, ch)
	return ch
}

// Close closes all observer channels.
func (manager *Manager) Close() {
	manager.subMu.Lock()
	defer manager.subMu.Unlock()
	if manager.closed {
		return
	}
	manager.closed = true
	for _, ch := range manager.subscribers {
		close(ch)
	}
	manager.subscribers = nil
}

// BreakBudget returns the live break budget for display.
func (manager *Manager) BreakBudget() time.Duration {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	data := manager.Data()
	profile := data.Profile()
	if !data.State.IsActive() {
		profile = manager.activeLabel.Profile
	}
	return manager.budget.GetCurrentBreakBudget(data.Type, data.State, profile, data.LastStartTime)
}

// Streak returns the number of work segments counted toward a long break.
func (manager *Manager) Streak() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.streak.StreakInUse(manager.activeLabel.Profile.SessionsBeforeLongBreak)
}

// WatchLabels loads the active label and then applies every update from the
// provider until ctx is done or the stream closes.
func (manager *Manager) WatchLabels(ctx context.Context, provider LabelProvider) error {
	label, err := provider.ActiveLabel(ctx)
	if err != nil {
		return err
	}
	updates := provider.WatchActiveLabel(ctx)
	manager.SetLabel(ctx, label)

	for {
		select {
		case <-ctx.Done():
			return nil
		case label, ok := <-updates:
			if !ok {
				return nil
			}
			manager.SetLabel(ctx, label)
		}
	}
}

// SetLabel makes label the active one. An idle timer switches immediately; an
// active segment keeps its label and the new one applies from the next start.
func (manager *Manager) SetLabel(ctx context.Context, label model.Label) {
	if err := label.Profile.Validate(); err != nil {
		manager.logger.Warn("ignoring label with invalid profile", "label", label.Name, "error", err)
		return
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.activeLabel = label

	data := manager.Data()
	if data.State != model.StateInactive {
		if !data.IsReady {
			data.IsReady = true
			manager.publishLocked(data)
		}
		manager.logger.Debug("label queued for next segment", "label", label.Name)
		return
	}
	data.Label = label
	data.IsReady = true
	manager.publishLocked(data)
	manager.dispatchLocked(ctx, UpdateActiveLabelEvent{Label: label})
}

// Start begins a new segment of the given type.
func (manager *Manager) Start(ctx context.Context, timerType model.TimerType) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	if data.State.IsActive() {
		manager.logger.Info("start ignored, segment already active", "state", data.State, "type", data.Type)
		return
	}
	manager.beginLocked(ctx, timerType, false)
}

// Toggle pauses a running segment or resumes a paused one.
func (manager *Manager) Toggle(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	now := manager.clock.NowMillis()
	switch data.State {
	case model.StateRunning:
		manager.updateBudgetLocked(ctx, data.Type, model.StateRunning, data)
		data.TimeAtPause = max(data.EndTime-now, 0)
		data.LastPauseTime = now
		data.State = model.StatePaused
		data.Interruptions++
		manager.publishLocked(data)
		manager.dispatchLocked(ctx, PauseEvent{})
	case model.StatePaused:
		manager.updateBudgetLocked(ctx, data.Type, model.StatePaused, data)
		data.EndTime = now + data.TimeAtPause
		data.LastStartTime = now
		data.TimeSpentPaused += max(now-data.LastPauseTime, 0)
		data.LastPauseTime = 0
		data.State = model.StateRunning
		manager.publishLocked(data)
		manager.dispatchLocked(ctx, StartEvent{TimerType: data.Type, EndTime: data.EndTime})
	default:
		manager.logger.Info("toggle ignored", "state", data.State)
	}
}

// AddOneMinute extends the current segment by one minute.
func (manager *Manager) AddOneMinute(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	var endTime int64
	switch data.State {
	case model.StateRunning:
		data.EndTime += oneMinute
		endTime = data.EndTime
	case model.StatePaused:
		data.TimeAtPause += oneMinute
		endTime = manager.clock.NowMillis() + data.TimeAtPause
	default:
		manager.logger.Info("add one minute ignored", "state", data.State)
		return
	}
	manager.publishLocked(data)
	manager.dispatchLocked(ctx, AddOneMinuteEvent{EndTime: endTime})
}

// Finish completes the running segment at its full planned duration.
func (manager *Manager) Finish(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	if data.State != model.StateRunning {
		manager.logger.Info("finish ignored", "state", data.State)
		return
	}
	manager.finishLocked(ctx, data)
}

// FinishAt finishes the running segment only if it still ends at endTime.
// Deadline timers use it so a deadline armed for an earlier segment, or
// before an extension, never completes the current one.
func (manager *Manager) FinishAt(ctx context.Context, endTime int64) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	if data.State != model.StateRunning || data.EndTime != endTime {
		manager.logger.Debug("stale deadline ignored",
			"state", data.State,
			"end_time", data.EndTime,
			"deadline", endTime)
		return
	}
	manager.finishLocked(ctx, data)
}

func (manager *Manager) finishLocked(ctx context.Context, data model.DomainTimerData) {
	now := manager.clock.NowMillis()
	profile := data.Profile()
	planned := time.Duration(data.EndTime-data.StartTime-data.TimeSpentPaused) * time.Millisecond
	minutes := int64(planned / time.Minute)

	manager.updateBudgetLocked(ctx, data.Type, model.StateRunning, data)
	if minutes >= 1 {
		manager.insertSessionLocked(ctx, data, minutes, false)
		if data.Type.IsWork() {
			manager.incrementStreakLocked(ctx)
		}
	} else {
		manager.logger.Debug("discarding sub-minute segment", "type", data.Type)
	}

	data.State = model.StateFinished
	data.CompletedMinutes = minutes
	manager.publishLocked(data)

	autostart := manager.autostartLocked(ctx, data.Type)
	manager.dispatchLocked(ctx, FinishedEvent{TimerType: data.Type, AutostartNextSession: autostart})
	if autostart {
		manager.beginLocked(ctx, manager.nextTypeLocked(data.Type, profile, now), true)
	}
}

// Next ends the current segment early and starts the following one.
func (manager *Manager) Next(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	now := manager.clock.NowMillis()
	switch data.State {
	case model.StateRunning, model.StatePaused:
		if manager.endSegmentLocked(ctx, data, data.State, now) && data.Type.IsWork() {
			manager.incrementStreakLocked(ctx)
		}
	case model.StateFinished:
	default:
		manager.logger.Info("next ignored", "state", data.State)
		return
	}
	manager.beginLocked(ctx, manager.nextTypeLocked(data.Type, data.Profile(), now), false)
}

// Skip is an alias of Next.
func (manager *Manager) Skip(ctx context.Context) {
	manager.Next(ctx)
}

// Reset ends the current segment without counting it toward the streak and
// returns the timer to inactive.
func (manager *Manager) Reset(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	data := manager.Data()
	switch data.State {
	case model.StateRunning, model.StatePaused:
		// Running work banks what it earned; anything else decays as a reset.
		outgoing := model.StateReset
		if data.Type.IsWork() && data.State == model.StateRunning {
			outgoing = model.StateRunning
		}
		manager.endSegmentLocked(ctx, data, outgoing, manager.clock.NowMillis())
	case model.StateFinished:
	default:
		manager.logger.Info("reset ignored", "state", data.State)
		return
	}

	manager.publishLocked(model.NewTimerData(manager.activeLabel, true))
	manager.dispatchLocked(ctx, ResetEvent{})
}

func (manager *Manager) beginLocked(ctx context.Context, timerType model.TimerType, autoStarted bool) {
	current := manager.Data()
	if !current.IsReady {
		manager.logger.Warn("start ignored, no label loaded", "type", timerType)
		return
	}

	label := manager.activeLabel
	profile := label.Profile
	now := manager.clock.NowMillis()
	if timerType.IsWork() {
		if err := manager.streak.ResetStreakIfNeeded(ctx, profile); err != nil {
			manager.logger.Error("failed to expire streak", "error", err)
		}
	}

	var endTime int64
	switch {
	case profile.IsCountdown:
		endTime = now + profile.Duration(timerType).Milliseconds()
	case timerType.IsWork():
		// Settle idle decay so accrual starts from the decayed amount.
		if _, err := manager.budget.UpdateAndPersistBreakBudget(ctx, timerType, model.StateInactive, profile, now); err != nil {
			manager.logger.Error("failed to persist break budget", "error", err)
		}
		endTime = now + manager.options.CountUpHardLimit.Milliseconds()
	default:
		amount, err := manager.budget.UpdateAndPersistBreakBudget(ctx, timerType, model.StateRunning, profile, now)
		if err != nil {
			manager.logger.Error("failed to persist break budget", "error", err)
		}
		endTime = now + amount.Milliseconds()
	}

	if timerType == model.TimerTypeLongBreak {
		if err := manager.streak.ResetStreak(ctx); err != nil {
			manager.logger.Error("failed to clear streak", "error", err)
		}
	}

	data := model.DomainTimerData{
		IsReady:       true,
		Label:         label,
		StartTime:     now,
		LastStartTime: now,
		EndTime:       endTime,
		Type:          timerType,
		State:         model.StateRunning,
	}
	manager.logger.Debug("segment started",
		"type", timerType,
		"label", label.Name,
		"countdown", profile.IsCountdown,
		"duration_ms", endTime-now)
	manager.publishLocked(data)
	manager.dispatchLocked(ctx, StartEvent{TimerType: timerType, EndTime: endTime, AutoStarted: autoStarted})
}

// endSegmentLocked settles the budget as of the outgoing state and persists the
// segment when it lasted at least one minute. It reports whether a session was
// recorded.
func (manager *Manager) endSegmentLocked(ctx context.Context, data model.DomainTimerData, outgoing model.TimerState, now int64) bool {
	manager.updateBudgetLocked(ctx, data.Type, outgoing, data)

	elapsed := data.ElapsedAt(now)
	if elapsed < time.Minute {
		manager.logger.Debug("discarding sub-minute segment", "type", data.Type, "elapsed", elapsed)
		return false
	}
	manager.insertSessionLocked(ctx, data, int64(elapsed/time.Minute), true)
	return true
}

func (manager *Manager) nextTypeLocked(ended model.TimerType, profile model.TimerProfile, now int64) model.TimerType {
	if !ended.IsWork() {
		return model.TimerTypeWork
	}
	if !profile.IsBreakEnabled {
		return model.TimerTypeWork
	}
	if manager.streak.ShouldConsiderStreak(profile, now) {
		return model.TimerTypeLongBreak
	}
	return model.TimerTypeBreak
}

func (manager *Manager) updateBudgetLocked(ctx context.Context, timerType model.TimerType, state model.TimerState, data model.DomainTimerData) {
	if _, err := manager.budget.UpdateAndPersistBreakBudget(ctx, timerType, state, data.Profile(), data.LastStartTime); err != nil {
		manager.logger.Error("failed to persist break budget", "error", err)
	}
}

func (manager *Manager) incrementStreakLocked(ctx context.Context) {
	if err := manager.streak.IncrementStreak(ctx); err != nil {
		manager.logger.Error("failed to persist streak", "error", err)
	}
}

func (manager *Manager) insertSessionLocked(ctx context.Context, data model.DomainTimerData, minutes int64, interrupted bool) {
	session := model.Session{
		ID:            uuid.NewString(),
		Timestamp:     manager.options.WallClock(),
		Duration:      minutes,
		Label:         data.Label.Name,
		IsWork:        data.Type.IsWork(),
		Interruptions: data.Interruptions,
		Interrupted:   interrupted,
	}
	if err := manager.sessions.Insert(ctx, session); err != nil {
		manager.logger.Error("failed to persist session",
			"error", err,
			"session_id", session.ID,
			"minutes", minutes)
	}
}

func (manager *Manager) autostartLocked(ctx context.Context, ended model.TimerType) bool {
	var (
		enabled bool
		err     error
	)
	if ended.IsWork() {
		enabled, err = manager.settings.AutoStartBreak(ctx)
	} else {
		enabled, err = manager.settings.AutoStartWork(ctx)
	}
	if err != nil {
		manager.logger.Error("failed to read auto-start setting", "error", err)
		return false
	}
	return enabled
}

func (manager *Manager) publishLocked(data model.DomainTimerData) {
	manager.data.Store(&data)

	manager.subMu.Lock()
	defer manager.subMu.Unlock()
	for _, ch := range manager.subscribers {
		select {
		case ch <- data:
			continue
		default:
		}
		// Drop the oldest snapshot to make room for the latest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- data:
		default:
		}
	}
}

func (manager *Manager) dispatchLocked(ctx context.Context, event Event) {
	for index, listener := range manager.listeners {
		manager.notify(ctx, index, listener, event)
	}
}

func (manager *Manager) notify(ctx context.Context, index int, listener Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			manager.logger.Error("listener panic",
				"error", r,
				"listener_index", index,
				"event", event.Type())
		}
	}()
	listener.OnEvent(ctx, event)
}
