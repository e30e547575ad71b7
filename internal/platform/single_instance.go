package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// LockFileName is the lock file created inside the data dir.
const LockFileName = "focustimer.lock"

// ErrAlreadyRunning indicates another instance already owns the data dir.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds an exclusive lock on the data dir's lock file.
type InstanceGuard struct {
	file *os.File
	path string
}

// AcquireSingleInstance takes an exclusive, non-blocking lock on the data
// dir's lock file. The OS drops the lock when the process exits, so a crash
// never leaves the data dir claimed.
func AcquireSingleInstance(dataDir string) (*InstanceGuard, error) {
	path, err := filepath.Abs(filepath.Join(dataDir, LockFileName))
	if err != nil {
		return nil, fmt.Errorf("resolve lock file: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		if errors.Is(err, errLocked) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, path)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	// The pid is informational only.
	if err := file.Truncate(0); err == nil {
		_, _ = file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}
	return &InstanceGuard{file: file, path: path}, nil
}

// Release unlocks and closes the lock file. The file itself is left in place.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.file == nil {
		return nil
	}
	unlockErr := unlockFile(guard.file)
	closeErr := guard.file.Close()
	guard.file = nil
	return errors.Join(unlockErr, closeErr)
}

// Path returns the lock file path.
func (guard *InstanceGuard) Path() string {
	if guard == nil {
		return ""
	}
	return guard.path
}
