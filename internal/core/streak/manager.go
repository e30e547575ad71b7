// Package streak tracks consecutive work segments for long-break eligibility.
package streak

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/clock"
	"focustimer/internal/core/model"
)

// IdleBuffer is added to work and break durations to get the idle threshold.
const IdleBuffer = 30 * time.Minute

// Store persists the long break data.
type Store interface {
	LongBreakData(ctx context.Context) (model.LongBreakData, error)
	SaveLongBreakData(ctx context.Context, data model.LongBreakData) error
}

// Manager counts qualifying work segments and expires them after idle gaps.
type Manager struct {
	mu     sync.Mutex
	store  Store
	clock  clock.Clock
	logger *slog.Logger
	data   model.LongBreakData
}

// New loads the persisted streak and returns a Manager.
func New(ctx context.Context, store Store, source clock.Clock, logger *slog.Logger) (*Manager, error) {
	data, err := store.LongBreakData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load long break data: %w", err)
	}
	if data.Streak < 0 {
		data.Streak = 0
	}
	return &Manager{
		store:  store,
		clock:  source,
		logger: logger.With("component", "streak_manager"),
		data:   data,
	}, nil
}

// MaxIdleThreshold returns the longest gap, in milliseconds, after which the
// streak is considered stale.
func MaxIdleThreshold(profile model.TimerProfile) int64 {
	threshold := profile.Duration(model.TimerTypeWork) +
		profile.Duration(model.TimerTypeBreak) +
		IdleBuffer
	return threshold.Milliseconds()
}

// Streak returns the current streak.
func (manager *Manager) Streak() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.data.Streak
}

// Data returns a copy of the long break data.
func (manager *Manager) Data() model.LongBreakData {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.data
}

// StreakInUse returns the streak counted toward the next long break.
func (manager *Manager) StreakInUse(_ int) int {
	return manager.Streak()
}

// IncrementStreak records one more finished work segment ending now.
func (manager *Manager) IncrementStreak(ctx context.Context) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	next := model.LongBreakData{
		Streak:          manager.data.Streak + 1,
		LastWorkEndTime: manager.clock.NowMillis(),
	}
	manager.logger.Debug("increment streak", "streak", next.Streak)
	return manager.saveLocked(ctx, next)
}

// ResetStreakIfNeeded clears a countdown streak whose last work segment ended
// longer ago than the idle threshold.
func (manager *Manager) ResetStreakIfNeeded(ctx context.Context, profile model.TimerProfile) error {
	if !profile.IsCountdown {
		return nil
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.data.Streak == 0 && manager.data.LastWorkEndTime == 0 {
		return nil
	}
	now := manager.clock.NowMillis()
	if manager.withinThresholdLocked(profile, now) {
		return nil
	}
	manager.logger.Debug("streak expired",
		"streak", manager.data.Streak,
		"idle_ms", now-manager.data.LastWorkEndTime)
	return manager.saveLocked(ctx, model.LongBreakData{})
}

// ResetStreak starts counting toward the next long break from zero.
func (manager *Manager) ResetStreak(ctx context.Context) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.data.Streak == 0 {
		return nil
	}
	return manager.saveLocked(ctx, model.LongBreakData{LastWorkEndTime: manager.data.LastWorkEndTime})
}

// ShouldConsiderStreak reports whether the next break should be a long one.
func (manager *Manager) ShouldConsiderStreak(profile model.TimerProfile, now int64) bool {
	if !profile.IsCountdown || !profile.IsLongBreakEnabled {
		return false
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.data.Streak != profile.SessionsBeforeLongBreak {
		return false
	}
	return manager.withinThresholdLocked(profile, now)
}

func (manager *Manager) withinThresholdLocked(profile model.TimerProfile, now int64) bool {
	gap := now - manager.data.LastWorkEndTime
	// A negative gap means the monotonic clock restarted.
	if gap < 0 {
		return false
	}
	return gap <= MaxIdleThreshold(profile)
}

func (manager *Manager) saveLocked(ctx context.Context, data model.LongBreakData) error {
	manager.data = data
	if err := manager.store.SaveLongBreakData(ctx, data); err != nil {
		return fmt.Errorf("save long break data: %w", err)
	}
	return nil
}
