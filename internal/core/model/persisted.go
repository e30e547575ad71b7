package model

import "time"

// BreakBudgetData is the persisted break budget. BreakBudget is only valid as of
// BreakBudgetStart; the current value is derived from the elapsed time.
type BreakBudgetData struct {
	BreakBudget      time.Duration
	BreakBudgetStart int64
}

// Clamped returns the data with a non-negative budget.
func (data BreakBudgetData) Clamped() BreakBudgetData {
	if data.BreakBudget < 0 {
		data.BreakBudget = 0
	}
	return data
}

// LongBreakData tracks consecutive work segments toward a long break.
type LongBreakData struct {
	Streak          int
	LastWorkEndTime int64
}

// Session is a completed or interrupted segment.
type Session struct {
	ID            string
	Timestamp     time.Time
	Duration      int64 // minutes
	Label         string
	IsWork        bool
	Interruptions int
	Interrupted   bool
}
