/*
	Basic Script that generates random input files for sorting runs.
*/

package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/0xRadioAc7iv/go-extsort/core"
	"github.com/0xRadioAc7iv/go-extsort/internal/gen"
	"github.com/0xRadioAc7iv/go-extsort/internal/utils"
)

const (
	defaultPath       = "./data/input.txt"
	defaultBudgetSize = "1MB"
)

func main() {
	path := flag.String("out", defaultPath, "File to write")
	budget := flag.String("budget", defaultBudgetSize, "Memory budget the input is sized against")
	multiplier := flag.Int("x", core.DefaultGenMultiplier, "Records per budget byte")
	maxValue := flag.Int64("max", core.DefaultGenMaxValue, "Upper bound (exclusive) of generated values")
	flag.Parse()

	start := time.Now()

	budgetBytes, err := utils.ParseBudget(*budget)
	if err != nil {
		fmt.Println(err)
		return
	}

	count := gen.Count(budgetBytes, *multiplier)
	fmt.Printf("Writing %d records to %s\n", count, *path)

	if err := utils.EnsureParentDir(*path); err != nil {
		fmt.Println("Error creating directory:", err)
		return
	}

	if err := gen.GenerateFile(*path, count, *maxValue, time.Now().UnixNano()); err != nil {
		fmt.Println("Error generating data:", err)
		return
	}

	fmt.Printf("Generation finished in %v\n", time.Since(start))
}
