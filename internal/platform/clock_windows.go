package platform

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

func monotonicMillis() int64 {
	return int64(windows.GetTickCount64())
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}
