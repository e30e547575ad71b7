// Package budget keeps the break time earned by count-up work.
//
// The balance is never ticked. It is stored as an amount valid at a reference
// timestamp and every read applies the elapsed time since that reference, so
// the value stays correct across suspension and process death.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/clock"
	"focustimer/internal/core/model"
)

// Store persists the break budget.
type Store interface {
	BreakBudgetData(ctx context.Context) (model.BreakBudgetData, error)
	SaveBreakBudgetData(ctx context.Context, data model.BreakBudgetData) error
}

// Manager computes and persists the break budget.
type Manager struct {
	mu     sync.Mutex
	store  Store
	clock  clock.Clock
	logger *slog.Logger
	data   model.BreakBudgetData
}

// New loads the persisted budget and returns a Manager.
func New(ctx context.Context, store Store, source clock.Clock, logger *slog.Logger) (*Manager, error) {
	data, err := store.BreakBudgetData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load break budget data: %w", err)
	}
	return &Manager{
		store:  store,
		clock:  source,
		logger: logger.With("component", "break_budget_manager"),
		data:   data.Clamped(),
	}, nil
}

// EarnedBudget returns the break time earned by working for elapsed at the
// given ratio: one minute per ratio whole minutes worked.
func EarnedBudget(elapsed time.Duration, ratio int) time.Duration {
	if ratio <= 0 || elapsed <= 0 {
		return 0
	}
	minutes := int64(elapsed / time.Minute)
	return time.Duration(minutes/int64(ratio)) * time.Minute
}

// GetCurrentBreakBudget returns the budget as of now for a timer in the given
// type and state. lastStartTime is the start of the current running stretch.
func (manager *Manager) GetCurrentBreakBudget(timerType model.TimerType, state model.TimerState, profile model.TimerProfile, lastStartTime int64) time.Duration {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.currentLocked(timerType, state, profile, lastStartTime, manager.clock.NowMillis())
}

// UpdateAndPersistBreakBudget stores the current budget with now as the new
// reference timestamp and returns it.
func (manager *Manager) UpdateAndPersistBreakBudget(ctx context.Context, timerType model.TimerType, state model.TimerState, profile model.TimerProfile, lastStartTime int64) (time.Duration, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	now := manager.clock.NowMillis()
	amount := manager.currentLocked(timerType, state, profile, lastStartTime, now)
	next := model.BreakBudgetData{BreakBudget: amount, BreakBudgetStart: now}.Clamped()
	manager.logger.Debug("persist break budget",
		"type", timerType,
		"state", state,
		"budget", next.BreakBudget)
	manager.data = next
	if err := manager.store.SaveBreakBudgetData(ctx, next); err != nil {
		return next.BreakBudget, fmt.Errorf("save break budget data: %w", err)
	}
	return next.BreakBudget, nil
}

// GetPersistedBreakBudgetAmount returns the last persisted amount without
// applying elapsed time.
func (manager *Manager) GetPersistedBreakBudgetAmount() time.Duration {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.data.Clamped().BreakBudget
}

// Data returns a copy of the persisted pair.
func (manager *Manager) Data() model.BreakBudgetData {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.data
}

func (manager *Manager) currentLocked(timerType model.TimerType, state model.TimerState, profile model.TimerProfile, lastStartTime int64, now int64) time.Duration {
	if profile.IsCountdown {
		return 0
	}
	persisted := manager.data.Clamped().BreakBudget

	switch {
	case timerType.IsWork() && state == model.StateRunning:
		return persisted + EarnedBudget(elapsedMillis(lastStartTime, now), profile.WorkBreakRatio)
	case isIdle(state) || (!timerType.IsWork() && state == model.StateRunning):
		remaining := persisted - elapsedMillis(manager.data.BreakBudgetStart, now)
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return persisted
}

func isIdle(state model.TimerState) bool {
	return state == model.StatePaused || state == model.StateReset || state == model.StateInactive
}

// elapsedMillis treats a reference in the future (monotonic clock restarted)
// as no elapsed time.
func elapsedMillis(from, now int64) time.Duration {
	if now <= from {
		return 0
	}
	return time.Duration(now-from) * time.Millisecond
}
