package core

import (
	"bufio"
	"bytes"
	"io"

	"github.com/0xRadioAc7iv/go-extsort/internal/record"
)

// RunCursor is a forward-only reader over the records of one run.
//
// A cursor must be opened before use and is not restartable: once Next
// reports exhaustion it keeps doing so. The merge engine owns every cursor
// and closes it as soon as its run is exhausted.
type RunCursor struct {
	run    Run
	src    *io.SectionReader
	path   string
	reader *bufio.Reader
	pos    int64 // offset of the next record, relative to the run
	done   bool
}

func (c *RunCursor) Run() Run {
	return c.run
}

// Open allocates the cursor's read buffer, never larger than the run.
func (c *RunCursor) Open() {
	if c.reader != nil || c.done {
		return
	}
	c.reader = bufio.NewReaderSize(c.src, int(min(CursorBufSize, c.run.Length)))
}

// Next returns the next record of the run. ok is false once the run is
// exhausted.
func (c *RunCursor) Next() (value int64, ok bool, err error) {
	if c.done {
		return 0, false, nil
	}
	if c.reader == nil {
		return 0, false, ErrCursorNotOpen
	}

	line, err := c.readLine()
	if err == io.EOF && len(line) == 0 {
		c.Close()
		return 0, false, nil
	}
	if err != nil && err != io.EOF {
		return 0, false, wrapIO("read", c.path, err)
	}

	offset := c.run.Offset + c.pos
	c.pos += int64(len(line))

	line = bytes.TrimSuffix(line, []byte{record.Delimiter})
	v, perr := record.Parse(line)
	if perr != nil {
		return 0, false, newFormatError(offset, line, perr)
	}

	return v, true, nil
}

// readLine returns the next line including its delimiter. Lines longer than
// the read buffer are assembled across ReadSlice calls.
func (c *RunCursor) readLine() ([]byte, error) {
	line, err := c.reader.ReadSlice(record.Delimiter)
	if err != bufio.ErrBufferFull {
		return line, err
	}

	full := append([]byte(nil), line...)
	for err == bufio.ErrBufferFull {
		line, err = c.reader.ReadSlice(record.Delimiter)
		full = append(full, line...)
	}
	return full, err
}

// Close releases the read buffer. A closed cursor reports exhaustion.
func (c *RunCursor) Close() {
	c.reader = nil
	c.done = true
}
