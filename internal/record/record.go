package record

import (
	"errors"
	"strconv"
)

// Delimiter terminates every serialized record.
const Delimiter = '\n'

// MaxEncodedSize is the longest canonical form of a record ("-9223372036854775808").
const MaxEncodedSize = 20

var ErrEmptyRecord = errors.New("empty record")

// Parse decodes one serialized record without its delimiter.
//
// Only an optional sign followed by decimal digits is accepted. Whitespace,
// a trailing '\r' or an empty record are all rejected.
func Parse(data []byte) (int64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyRecord
	}

	// strconv.ParseInt accepts underscores only with base 0, so base 10 is strict
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, err
	}

	return v, nil
}

// Append writes the canonical form of v followed by the delimiter to dst.
func Append(dst []byte, v int64) []byte {
	dst = strconv.AppendInt(dst, v, 10)
	return append(dst, Delimiter)
}

