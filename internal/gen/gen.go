// Package gen writes synthetic input for the sorter.
package gen

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/0xRadioAc7iv/go-extsort/internal/record"
)

// Count is the number of records generated for a memory budget: multiplier
// records per budget byte, so the input is always far larger than memory.
func Count(budget, multiplier int) int {
	return budget * multiplier
}

// Generate writes count random integers in [0, maxValue) to w, newline
// separated. The last record has no trailing newline.
func Generate(w io.Writer, count int, maxValue int64, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)
	var buf [record.MaxEncodedSize + 1]byte

	for i := 0; i < count; i++ {
		line := record.Append(buf[:0], rng.Int63n(maxValue))
		if i == count-1 {
			line = line[:len(line)-1]
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// GenerateFile creates (or truncates) path and fills it with Generate.
func GenerateFile(path string, count int, maxValue int64, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Generate(f, count, maxValue, rand.New(rand.NewSource(seed))); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
