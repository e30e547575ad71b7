package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidProfile indicates a timer profile that cannot drive a session.
var ErrInvalidProfile = errors.New("invalid timer profile")

// Default profile values.
const (
	DefaultWorkMinutes             = 25
	DefaultBreakMinutes            = 5
	DefaultLongBreakMinutes        = 15
	DefaultSessionsBeforeLongBreak = 4
	DefaultWorkBreakRatio          = 3
)

// TimerProfile defines how sessions of a label are timed.
// Durations are expressed in minutes.
type TimerProfile struct {
	IsCountdown             bool `yaml:"is_countdown"`
	WorkDuration            int  `yaml:"work_duration" validate:"gte=0"`
	BreakDuration           int  `yaml:"break_duration" validate:"gte=0"`
	LongBreakDuration       int  `yaml:"long_break_duration" validate:"gte=0"`
	SessionsBeforeLongBreak int  `yaml:"sessions_before_long_break" validate:"gte=0"`
	IsLongBreakEnabled      bool `yaml:"is_long_break_enabled"`
	IsBreakEnabled          bool `yaml:"is_break_enabled"`
	// WorkBreakRatio is the number of worked minutes that earn one break minute
	// in count-up mode.
	WorkBreakRatio int `yaml:"work_break_ratio" validate:"gte=0"`
}

// DefaultProfile returns the classic 25/5/15 countdown profile.
func DefaultProfile() TimerProfile {
	return TimerProfile{
		IsCountdown:             true,
		WorkDuration:            DefaultWorkMinutes,
		BreakDuration:           DefaultBreakMinutes,
		LongBreakDuration:       DefaultLongBreakMinutes,
		SessionsBeforeLongBreak: DefaultSessionsBeforeLongBreak,
		IsLongBreakEnabled:      true,
		IsBreakEnabled:          true,
		WorkBreakRatio:          DefaultWorkBreakRatio,
	}
}

// Duration returns the configured length of a countdown segment.
func (profile TimerProfile) Duration(timerType TimerType) time.Duration {
	switch timerType {
	case TimerTypeWork:
		return time.Duration(profile.WorkDuration) * time.Minute
	case TimerTypeBreak:
		return time.Duration(profile.BreakDuration) * time.Minute
	case TimerTypeLongBreak:
		return time.Duration(profile.LongBreakDuration) * time.Minute
	}
	return 0
}

// Validate checks that the profile can time a session.
func (profile TimerProfile) Validate() error {
	if profile.IsCountdown {
		if profile.WorkDuration <= 0 {
			return fmt.Errorf("%w: work duration must be positive", ErrInvalidProfile)
		}
		if profile.IsBreakEnabled && profile.BreakDuration <= 0 {
			return fmt.Errorf("%w: break duration must be positive", ErrInvalidProfile)
		}
		if profile.IsLongBreakEnabled {
			if profile.LongBreakDuration <= 0 {
				return fmt.Errorf("%w: long break duration must be positive", ErrInvalidProfile)
			}
			if profile.SessionsBeforeLongBreak <= 0 {
				return fmt.Errorf("%w: sessions before long break must be positive", ErrInvalidProfile)
			}
		}
		return nil
	}
	if profile.WorkBreakRatio <= 0 {
		return fmt.Errorf("%w: work/break ratio must be positive", ErrInvalidProfile)
	}
	return nil
}

// Label groups sessions and carries the profile used to time them.
// The empty name identifies the default label.
type Label struct {
	Name    string
	Profile TimerProfile
}

// DefaultLabel returns the built-in label with the default profile.
func DefaultLabel() Label {
	return Label{Profile: DefaultProfile()}
}

// IsDefault reports whether the label is the built-in one.
func (label Label) IsDefault() bool {
	return label.Name == ""
}
