package platform

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CLOCK_MONOTONIC on darwin keeps advancing while asleep.
func monotonicMillis() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return fallbackMillis()
	}
	return ts.Nano() / 1_000_000
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}
