package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataDir returns the OS-standard per-user directory for appName.
func DefaultDataDir(appName string) (string, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		return "", fmt.Errorf("resolve data dir: empty app name")
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, name), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return filepath.Join(fallbackConfigDir(homeDir), name), nil
}
