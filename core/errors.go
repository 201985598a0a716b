package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBudget = errors.New("memory budget must be greater than zero")
	ErrNotStarted    = errors.New("sorter not started")
	ErrCursorNotOpen = errors.New("run cursor not open")
)

// IOError reports a failed read, write, open or close on the source, the
// run storage or the sink. It is always fatal.
type IOError struct {
	Op   string // "read", "write", "open", "close", "flush"
	Path string // file or stream the operation was addressed to
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a record that cannot be parsed as an integer key.
type FormatError struct {
	Offset int64  // byte offset of the record in the stream it was read from
	Record string // raw record text, truncated for display
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed record %q at offset %d: %v", e.Record, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// CapacityError reports a window of Budget bytes starting at Offset that
// holds no record boundary, i.e. a single record larger than the budget.
type CapacityError struct {
	Offset int64
	Budget int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("record at offset %d exceeds memory budget of %d bytes", e.Offset, e.Budget)
}

const maxRecordDisplay = 32

func newFormatError(offset int64, raw []byte, err error) *FormatError {
	if len(raw) > maxRecordDisplay {
		raw = raw[:maxRecordDisplay]
	}
	return &FormatError{Offset: offset, Record: string(raw), Err: err}
}

func wrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
