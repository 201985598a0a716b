package utils

import (
	"os"
	"path/filepath"
)

// Indicates if the given path exists or not (works for both files and directories)
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
