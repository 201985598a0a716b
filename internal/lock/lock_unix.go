//go:build unix

package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// LockDirectory takes an exclusive, non-blocking flock(2) on the LOCK file
// of the work directory and records the caller's PID in it. Two sorters
// therefore never append to the same run storage.
//
// The returned file handle must remain open for the duration of the lock.
func LockDirectory(dir string) (*os.File, error) {
	f, err := os.OpenFile(filepath.Join(dir, LockFileName), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, lockedError(dir)
	}

	if err := writeHolder(f); err != nil {
		UnlockDirectory(f)
		return nil, fmt.Errorf("unable to record lock holder: %w", err)
	}

	return f, nil
}

// UnlockDirectory clears the recorded holder and releases the flock.
func UnlockDirectory(f *os.File) {
	f.Truncate(0)
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	f.Close()
}
