// Package config loads the host configuration from a YAML file and
// FOCUSTIMER_* environment variables.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Timer   TimerConfig   `mapstructure:"timer"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// StorageConfig locates the settings file and the session log.
// Relative file names are resolved against DataDir; an empty DataDir means
// the per-user config directory.
type StorageConfig struct {
	DataDir      string `mapstructure:"data_dir"`
	SettingsFile string `mapstructure:"settings_file" validate:"required"`
	SessionsDB   string `mapstructure:"sessions_db" validate:"required"`
}

// TimerConfig tunes the timer core.
type TimerConfig struct {
	CountUpHardLimit time.Duration `mapstructure:"count_up_hard_limit" validate:"gte=1m"`
}
