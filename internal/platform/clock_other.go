//go:build !linux && !darwin && !windows

package platform

import "path/filepath"

func monotonicMillis() int64 {
	return fallbackMillis()
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
