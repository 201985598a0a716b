package core_test

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-extsort/core"
)

func startSorter(t *testing.T, budget int) *core.Sorter {
	t.Helper()

	s := &core.Sorter{
		DirectoryPath: t.TempDir(),
		MemoryBudget:  budget,
	}
	require.NoError(t, s.Start(), "failed to start sorter")

	t.Cleanup(s.Stop)
	return s
}

func sortString(t *testing.T, s *core.Sorter, input string) (string, core.Stats, error) {
	t.Helper()

	var out bytes.Buffer
	stats, err := s.Sort(context.Background(), strings.NewReader(input), int64(len(input)), &out)
	return out.String(), stats, err
}

func parseOutput(t *testing.T, out string) []int64 {
	t.Helper()

	if out == "" {
		return nil
	}
	require.True(t, strings.HasSuffix(out, "\n"), "output must be newline terminated")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	values := make([]int64, len(lines))
	for i, line := range lines {
		v, err := strconv.ParseInt(line, 10, 64)
		require.NoError(t, err)
		values[i] = v
	}
	return values
}

func joinRecords(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, "\n")
}

func TestSortSingleWindow(t *testing.T) {
	s := startSorter(t, 64)

	out, stats, err := sortString(t, s, "5\n3\n8\n1")
	require.NoError(t, err)

	assert.Equal(t, "1\n3\n5\n8\n", out)
	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, 4, stats.Records)
}

func TestSortEmptyInput(t *testing.T) {
	s := startSorter(t, 64)

	out, stats, err := sortString(t, s, "")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Zero(t, stats.Runs)
	assert.Zero(t, stats.Records)
}

func TestSortExactMultipleOfBudget(t *testing.T) {
	s := startSorter(t, 6)

	// three 6-byte windows, each ending on a delimiter
	out, stats, err := sortString(t, s, "111\n2\n333\n4\n555\n6\n")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Runs, "no empty trailing run expected")
	assert.Equal(t, "2\n4\n6\n111\n333\n555\n", out)
}

func TestSortFinalRecordWithoutNewline(t *testing.T) {
	s := startSorter(t, 4)

	out, stats, err := sortString(t, s, "3\n1\n2")
	require.NoError(t, err)

	assert.Equal(t, "1\n2\n3\n", out)
	assert.Equal(t, 2, stats.Runs)
}

func TestSortCanonicalizesRecords(t *testing.T) {
	s := startSorter(t, 8)

	out, _, err := sortString(t, s, "+5\n007\n-0\n-3")
	require.NoError(t, err)

	assert.Equal(t, "-3\n0\n5\n7\n", out)
}

func TestSortRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, budget := range []int{5, 8, 16, 37, 100, 4096} {
		t.Run(fmt.Sprintf("budget=%d", budget), func(t *testing.T) {
			s := startSorter(t, budget)

			values := make([]int64, 2000)
			for i := range values {
				// duplicates and negatives on purpose; at most 5 bytes per record,
				// so budget 5 holds records exactly as long as the window
				values[i] = rng.Int63n(2000) - 1000
			}

			out, stats, err := sortString(t, s, joinRecords(values))
			require.NoError(t, err)

			got := parseOutput(t, out)
			want := slices.Clone(values)
			slices.Sort(want)

			assert.Equal(t, want, got)
			assert.Equal(t, len(values), stats.Records)
			assert.True(t, slices.IsSorted(got))
		})
	}
}

func TestSortRunCountScaling(t *testing.T) {
	s := startSorter(t, 30)

	// 100 records of 3 bytes each, the last one without a newline
	values := make([]int64, 100)
	for i := range values {
		values[i] = int64(99 - i%90)
	}
	input := joinRecords(values)

	_, stats, err := sortString(t, s, input)
	require.NoError(t, err)

	maxRuns := (len(input) + 29) / 30
	assert.LessOrEqual(t, stats.Runs, maxRuns)
	assert.Equal(t, 10, stats.Runs)
}

func TestSortMalformedRecord(t *testing.T) {
	s := startSorter(t, 64)

	_, _, err := sortString(t, s, "1\nabc\n3")

	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, int64(2), formatErr.Offset)
	assert.Equal(t, "abc", formatErr.Record)
}

func TestSortEmptyRecordIsMalformed(t *testing.T) {
	s := startSorter(t, 64)

	_, _, err := sortString(t, s, "1\n\n3\n")

	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, int64(2), formatErr.Offset)
}

func TestSortRecordLargerThanBudget(t *testing.T) {
	s := startSorter(t, 4)

	_, _, err := sortString(t, s, "1\n123456789\n2")

	var capErr *core.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, int64(2), capErr.Offset)
	assert.Equal(t, 4, capErr.Budget)
}

func TestSortRecordEqualToBudget(t *testing.T) {
	s := startSorter(t, 3)

	out, stats, err := sortString(t, s, "123\n4")
	require.NoError(t, err)

	assert.Equal(t, "4\n123\n", out)
	assert.Equal(t, 2, stats.Runs)
}

func TestSortWindowEndingBeforeDelimiter(t *testing.T) {
	s := startSorter(t, 5)

	input := "12\n34\n56\n"
	out, stats, err := sortString(t, s, input)
	require.NoError(t, err)

	assert.Equal(t, "12\n34\n56\n", out)
	assert.Equal(t, 2, stats.Runs)
	assert.LessOrEqual(t, stats.Runs, (len(input)+4)/5)
}

func TestSortReusesRunStorage(t *testing.T) {
	s := startSorter(t, 8)

	out, _, err := sortString(t, s, "9\n8\n7\n6\n5\n4")
	require.NoError(t, err)
	assert.Equal(t, "4\n5\n6\n7\n8\n9\n", out)

	out, stats, err := sortString(t, s, "2\n1")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, int64(4), stats.RunBytes)
}

func TestSortCancelled(t *testing.T) {
	s := startSorter(t, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "3\n2\n1"
	_, err := s.Sort(ctx, strings.NewReader(input), int64(len(input)), &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSortBeforeStart(t *testing.T) {
	s := &core.Sorter{MemoryBudget: 64}

	input := "1"
	_, err := s.Sort(context.Background(), strings.NewReader(input), 1, &bytes.Buffer{})
	require.ErrorIs(t, err, core.ErrNotStarted)
}

func TestStartRejectsInvalidBudget(t *testing.T) {
	s := &core.Sorter{DirectoryPath: t.TempDir()}
	require.ErrorIs(t, s.Start(), core.ErrInvalidBudget)
	s.Stop()
}

func TestSourceShorterThanAnnouncedSize(t *testing.T) {
	s := startSorter(t, 4)

	_, err := s.Sort(context.Background(), strings.NewReader("1\n2\n"), 10, &bytes.Buffer{})

	var ioErr *core.IOError
	require.ErrorAs(t, err, &ioErr)
}
