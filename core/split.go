package core

import (
	"bytes"
	"context"
	"io"
	"slices"

	"github.com/0xRadioAc7iv/go-extsort/internal/record"
)

// Split reads src in windows of at most MemoryBudget bytes aligned to record
// boundaries, sorts each window and appends it to run storage as one run.
//
// A single scratch buffer of MemoryBudget+1 bytes is allocated per call and
// reused for every window, both for reading and for serializing the sorted
// run. Windows are processed strictly one after another.
func (s *Sorter) Split(ctx context.Context, src io.ReaderAt, size int64) ([]Run, error) {
	if s.store == nil {
		return nil, ErrNotStarted
	}
	if err := s.store.Reset(); err != nil {
		return nil, err
	}

	budget := s.MemoryBudget
	scratch := make([]byte, budget+1)
	var keys []int64
	var runs []Run
	var position int64

	s.log.Info("split started", "size", size, "budget", budget)

	for position < size {
		if err := ctx.Err(); err != nil {
			return runs, err
		}

		window, err := readWindow(src, scratch[:budget], position)
		if err != nil {
			return runs, err
		}

		boundary, err := delimiterAt(src, scratch[budget:budget+1], position+int64(len(window)), size)
		if err != nil {
			return runs, err
		}

		aligned, err := alignWindow(window, position, size, boundary)
		if err != nil {
			return runs, err
		}

		keys, err = parseWindow(keys[:0], window[:aligned], position)
		if err != nil {
			return runs, err
		}
		slices.Sort(keys)

		// The canonical form of a record is never longer than its source
		// text, so the sorted run always fits back into scratch.
		out := scratch[:0]
		for _, k := range keys {
			out = record.Append(out, k)
		}

		run, err := s.store.Append(out, len(keys))
		if err != nil {
			return runs, err
		}
		runs = append(runs, run)

		s.log.V(1).Info("run written", "run", run.Index, "offset", run.Offset,
			"length", run.Length, "records", run.Records, "position", position)

		position += int64(aligned) + 1
	}

	s.log.Info("split finished", "runs", len(runs), "runBytes", s.store.Size())
	return runs, nil
}

func readWindow(src io.ReaderAt, buf []byte, position int64) ([]byte, error) {
	n, err := src.ReadAt(buf, position)
	if err == io.EOF {
		if n == 0 {
			// the source is shorter than the size it was announced with
			return nil, wrapIO("read", "source", io.ErrUnexpectedEOF)
		}
		err = nil
	}
	if err != nil {
		return nil, wrapIO("read", "source", err)
	}
	return buf[:n], nil
}

// delimiterAt reports whether the byte at offset, the first one past a
// window, is a record delimiter. buf is a one byte scratch slot.
func delimiterAt(src io.ReaderAt, buf []byte, offset, size int64) (bool, error) {
	if offset >= size {
		return false, nil
	}

	n, err := src.ReadAt(buf, offset)
	if n == 1 {
		return buf[0] == record.Delimiter, nil
	}
	if err == io.EOF {
		// reported by readWindow on the next iteration
		return false, nil
	}
	return false, wrapIO("read", "source", err)
}

// alignWindow returns the length of the largest record-aligned prefix of
// window, which starts at position in a source of size bytes. boundary
// tells whether the byte right after the window is a delimiter.
//
// The last window of the source is taken whole (without a trailing
// delimiter) so a final record lacking a newline is kept. A window followed
// by a delimiter is taken whole too. Any other window is cut at its last
// delimiter; a full window without one cannot hold a whole record and fails
// with CapacityError.
func alignWindow(window []byte, position, size int64, boundary bool) (int, error) {
	n := len(window)

	if position+int64(n) >= size {
		if n > 0 && window[n-1] == record.Delimiter {
			return n - 1, nil
		}
		return n, nil
	}

	if boundary {
		return n, nil
	}

	idx := bytes.LastIndexByte(window, record.Delimiter)
	if idx == -1 {
		return 0, &CapacityError{Offset: position, Budget: n}
	}
	return idx, nil
}

// parseWindow appends the keys of every record in chunk to keys.
// chunk holds delimiter-separated records without a trailing delimiter.
func parseWindow(keys []int64, chunk []byte, position int64) ([]int64, error) {
	offset := position
	for {
		line := chunk
		idx := bytes.IndexByte(chunk, record.Delimiter)
		if idx >= 0 {
			line = chunk[:idx]
		}

		v, err := record.Parse(line)
		if err != nil {
			return keys, newFormatError(offset, line, err)
		}
		keys = append(keys, v)

		if idx < 0 {
			return keys, nil
		}
		chunk = chunk[idx+1:]
		offset += int64(idx) + 1
	}
}
