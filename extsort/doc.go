// Package extsort sorts newline-delimited integer data that does not fit in
// memory.
//
// The input is split into memory-budget-sized windows, each sorted and
// written as a run to a temporary file, and the runs are then merged into
// the output with a k-way merge.
//
// Example:
//
//	err := extsort.SortFile(ctx, "input.txt", "output.txt",
//	    extsort.WithMemoryBudget(64*1024*1024),
//	    extsort.WithWorkDir("./tmp"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
package extsort
