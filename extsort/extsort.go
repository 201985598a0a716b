package extsort

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xRadioAc7iv/go-extsort/core"
	"github.com/0xRadioAc7iv/go-extsort/internal"
	"github.com/0xRadioAc7iv/go-extsort/internal/record"
)

var (
	ErrNotSorted = errors.New("records are not sorted")
	ErrSameFile  = errors.New("input and output are the same file")
)

func newSorter(opts []Option) *core.Sorter {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return &core.Sorter{
		DirectoryPath: cfg.WorkDir,
		MemoryBudget:  cfg.MemoryBudget,
		Logger:        cfg.Logger,
	}
}

// Sort writes the records of src, a source of size bytes, to dst in
// ascending order. The temporary run file is removed before returning.
func Sort(ctx context.Context, src io.ReaderAt, size int64, dst io.Writer, opts ...Option) (core.Stats, error) {
	sorter := newSorter(opts)

	defer sorter.Stop()
	if err := sorter.Start(); err != nil {
		return core.Stats{}, err
	}

	return sorter.Sort(ctx, src, size, dst)
}

// SortFile sorts the file at inPath into outPath. On failure the output
// file is left in place but must be treated as unusable.
func SortFile(ctx context.Context, inPath, outPath string, opts ...Option) (core.Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return core.Stats{}, &core.IOError{Op: "open", Path: inPath, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return core.Stats{}, &core.IOError{Op: "open", Path: inPath, Err: err}
	}

	// creating the output would truncate the input before it is read
	if outInfo, err := os.Stat(outPath); err == nil && os.SameFile(info, outInfo) {
		return core.Stats{}, fmt.Errorf("sort %s into %s: %w", inPath, outPath, ErrSameFile)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return core.Stats{}, &core.IOError{Op: "open", Path: outPath, Err: err}
	}

	stats, err := Sort(ctx, in, info.Size(), out, opts...)
	if err != nil {
		out.Close()
		return stats, err
	}

	if err := out.Close(); err != nil {
		return stats, &core.IOError{Op: "close", Path: outPath, Err: err}
	}
	return stats, nil
}

// Check reads newline-delimited records from r and reports how many there
// are. It fails with ErrNotSorted at the first record smaller than its
// predecessor.
func Check(r io.Reader) (int, error) {
	reader := bufio.NewReader(r)
	var prev int64
	var offset int64
	count := 0

	for {
		line, err := reader.ReadBytes(record.Delimiter)
		if len(line) == 0 && err == io.EOF {
			return count, nil
		}
		if err != nil && err != io.EOF {
			return count, &core.IOError{Op: "read", Err: err}
		}

		raw := bytes.TrimSuffix(line, []byte{record.Delimiter})
		v, perr := record.Parse(raw)
		if perr != nil {
			return count, &core.FormatError{Offset: offset, Record: string(raw), Err: perr}
		}

		if count > 0 && v < prev {
			return count, fmt.Errorf("record %d (%d) after %d: %w", count+1, v, prev, ErrNotSorted)
		}

		prev = v
		offset += int64(len(line))
		count++

		if err == io.EOF {
			return count, nil
		}
	}
}

// CheckFile runs Check on the file at path.
func CheckFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &core.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return Check(f)
}
