package core

import (
	"io"
	"os"
	"path/filepath"
)

// Run is an immutable, sorted byte range inside the run storage file.
// Every record in a run is newline terminated.
type Run struct {
	Index   int   // creation order, also the cursor slot used by Merge
	Offset  int64 // byte position in the run file where the run starts
	Length  int64 // size of the run in bytes, delimiters included
	Records int   // number of records in the run
}

// RunStore is the shared append-only area all runs are written to.
//
// Runs are appended at the active offset and never rewritten, so two runs
// never overlap. During merge the file is only read, through one section
// reader per run.
type RunStore struct {
	file         *os.File
	activeOffset int64
	runs         int
}

// OpenRunStore creates (or truncates) the run file inside dir.
func OpenRunStore(dir string) (*RunStore, error) {
	path := filepath.Join(dir, RunFileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, RunFilePerm)
	if err != nil {
		return nil, wrapIO("open", path, err)
	}

	return &RunStore{file: f}, nil
}

func (rs *RunStore) Path() string {
	return rs.file.Name()
}

// Size is the number of bytes appended so far.
func (rs *RunStore) Size() int64 {
	return rs.activeOffset
}

// Append persists data as a new run and returns its handle.
func (rs *RunStore) Append(data []byte, records int) (Run, error) {
	n, err := rs.file.WriteAt(data, rs.activeOffset)
	if err != nil {
		return Run{}, wrapIO("write", rs.file.Name(), err)
	}

	run := Run{
		Index:   rs.runs,
		Offset:  rs.activeOffset,
		Length:  int64(n),
		Records: records,
	}

	rs.activeOffset += int64(n)
	rs.runs++
	return run, nil
}

// Cursor returns an unopened cursor over run.
func (rs *RunStore) Cursor(run Run) *RunCursor {
	return &RunCursor{
		run:  run,
		src:  io.NewSectionReader(rs.file, run.Offset, run.Length),
		path: rs.file.Name(),
	}
}

// Cursors returns one cursor per run, indexed by run index.
func (rs *RunStore) Cursors(runs []Run) []*RunCursor {
	cursors := make([]*RunCursor, len(runs))
	for i, run := range runs {
		cursors[i] = rs.Cursor(run)
	}
	return cursors
}

func (rs *RunStore) Close() error {
	return wrapIO("close", rs.file.Name(), rs.file.Close())
}

// Remove closes the run file and deletes it. Runs are unusable afterwards.
func (rs *RunStore) Remove() error {
	name := rs.file.Name()
	rs.file.Close()
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return wrapIO("remove", name, err)
	}
	return nil
}

// Reset discards every run written so far.
func (rs *RunStore) Reset() error {
	if err := truncateAt(rs.file, 0); err != nil {
		return wrapIO("truncate", rs.file.Name(), err)
	}
	rs.activeOffset = 0
	rs.runs = 0
	return nil
}

func truncateAt(f *os.File, offset int64) error {
	if err := f.Truncate(offset); err != nil {
		return err
	}
	return f.Sync()
}
