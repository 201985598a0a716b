// Package lock guards a work directory against concurrent sorters.
//
// The lock file holds the PID of the process owning the directory, so a
// refused sorter can report who is in the way.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const LockFileName = "LOCK"

// ErrLocked is returned when another sorter holds the work directory.
var ErrLocked = errors.New("work directory already in use by another extsort instance")

// Holder returns the PID recorded in the lock file of dir.
func Holder(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, LockFileName))
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("lock file of %s holds no pid: %w", dir, err)
	}
	return pid, nil
}

func lockedError(dir string) error {
	pid, err := Holder(dir)
	if err != nil {
		return ErrLocked
	}
	return fmt.Errorf("%w (held by pid %d)", ErrLocked, pid)
}

// writeHolder records the current process as the owner of f.
func writeHolder(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	_, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	return err
}
