//go:build windows

package lock

import (
	"fmt"
	"os"
	"path/filepath"
)

// LockDirectory claims the work directory by exclusively creating its LOCK
// file and records the caller's PID in it.
//
// The returned file handle must be kept open for the duration of the lock.
func LockDirectory(dir string) (*os.File, error) {
	f, err := os.OpenFile(filepath.Join(dir, LockFileName), os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return nil, lockedError(dir)
	}

	if err := writeHolder(f); err != nil {
		UnlockDirectory(f)
		return nil, fmt.Errorf("unable to record lock holder: %w", err)
	}

	return f, nil
}

// UnlockDirectory releases the lock by removing the LOCK file.
func UnlockDirectory(f *os.File) {
	name := f.Name()
	f.Close()
	os.Remove(name)
}
