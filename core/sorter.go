package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/0xRadioAc7iv/go-extsort/internal/lock"
)

// Sorter is an external-sort engine bound to one work directory.
//
// Start locks the directory and opens the run storage, Sort runs the split
// and merge phases, Stop discards the run storage and releases the lock.
type Sorter struct {
	lockFile *os.File
	store    *RunStore
	log      logr.Logger

	DirectoryPath string // work directory holding the run file
	MemoryBudget  int    // bytes of raw record data held in memory while splitting
	Logger        logr.Logger
}

// Stats summarizes one Sort call.
type Stats struct {
	Runs       int
	Records    int
	InputBytes int64
	RunBytes   int64
}

func (s *Sorter) Start() error {
	if s.MemoryBudget < MinimumMemoryBudget {
		return ErrInvalidBudget
	}

	s.log = s.Logger
	if s.log.GetSink() == nil {
		s.log = logr.Discard()
	}
	s.log = s.log.WithName("sorter")

	if s.DirectoryPath == "" {
		s.DirectoryPath = filepath.Join(os.TempDir(), WorkDirName)
	}

	if err := os.MkdirAll(s.DirectoryPath, WorkDirPerm); err != nil {
		return wrapIO("open", s.DirectoryPath, err)
	}

	lf, err := lock.LockDirectory(s.DirectoryPath)
	if err != nil {
		return err
	}
	s.lockFile = lf

	store, err := OpenRunStore(s.DirectoryPath)
	if err != nil {
		lock.UnlockDirectory(s.lockFile)
		s.lockFile = nil
		return err
	}
	s.store = store

	s.log.Info("sorter started", "dir", s.DirectoryPath, "budget", s.MemoryBudget, "runFile", store.Path())
	return nil
}

// Sort writes every record of src, a source of size bytes, to dst in
// non-decreasing order. On failure the content of dst is unusable.
func (s *Sorter) Sort(ctx context.Context, src io.ReaderAt, size int64, dst io.Writer) (Stats, error) {
	stats := Stats{InputBytes: size}

	runs, err := s.Split(ctx, src, size)
	if err != nil {
		return stats, fmt.Errorf("split phase: %w", err)
	}
	stats.Runs = len(runs)
	stats.RunBytes = s.store.Size()

	written, err := Merge(ctx, s.store.Cursors(runs), dst, s.log)
	stats.Records = written
	if err != nil {
		return stats, fmt.Errorf("merge phase: %w", err)
	}

	return stats, nil
}

// Stop discards the run storage and releases the work directory. It is safe
// to call after a failed Start and more than once.
func (s *Sorter) Stop() {
	if s.store != nil {
		if err := s.store.Remove(); err != nil {
			s.log.Error(err, "removing run storage")
		}
		s.store = nil
	}

	if s.lockFile != nil {
		lock.UnlockDirectory(s.lockFile)
		s.lockFile = nil
	}
}
