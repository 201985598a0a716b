package core

import (
	"bufio"
	"container/heap"
	"context"
	"io"

	"github.com/go-logr/logr"

	"github.com/0xRadioAc7iv/go-extsort/internal/record"
)

// mergeCandidate is the buffered head of one open cursor.
type mergeCandidate struct {
	run   int
	value int64
}

type candidateHeap []mergeCandidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].value < h[j].value }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	*h = append(*h, x.(mergeCandidate))
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// Merge performs a k-way merge of the cursors into dst.
//
// Each cursor is advanced once to seed a min-heap keyed on its head value.
// The minimum is written, its cursor advanced and the new head pushed back
// until every cursor is exhausted. At most one record per cursor is held
// in memory. Writes to dst go through a fixed-size buffer and block while
// dst has not accepted the previous buffer. Every cursor is closed on return.
func Merge(ctx context.Context, cursors []*RunCursor, dst io.Writer, log logr.Logger) (int, error) {
	defer func() {
		for _, c := range cursors {
			c.Close()
		}
	}()

	h := make(candidateHeap, 0, len(cursors))
	for i, c := range cursors {
		c.Open()
		v, ok, err := c.Next()
		if err != nil {
			return 0, err
		}
		if ok {
			h = append(h, mergeCandidate{run: i, value: v})
		}
	}
	heap.Init(&h)

	log.Info("merge started", "runs", len(cursors), "open", h.Len())

	sink := bufio.NewWriterSize(dst, SinkBufSize)
	var scratch [record.MaxEncodedSize + 1]byte
	written := 0

	for h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		head := h[0]
		if _, err := sink.Write(record.Append(scratch[:0], head.value)); err != nil {
			return written, wrapIO("write", "sink", err)
		}
		written++

		v, ok, err := cursors[head.run].Next()
		if err != nil {
			return written, err
		}
		if ok {
			// replace the root in place instead of Pop+Push
			h[0].value = v
			heap.Fix(&h, 0)
			continue
		}

		heap.Pop(&h)
		log.V(1).Info("run exhausted", "run", head.run, "open", h.Len())
	}

	if err := sink.Flush(); err != nil {
		return written, wrapIO("flush", "sink", err)
	}

	log.Info("merge finished", "records", written)
	return written, nil
}
