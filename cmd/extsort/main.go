package main

import (
	"fmt"
	"os"
	"time"

	"github.com/0xRadioAc7iv/go-extsort/core"
	"github.com/0xRadioAc7iv/go-extsort/extsort"
	"github.com/0xRadioAc7iv/go-extsort/internal/gen"
	"github.com/0xRadioAc7iv/go-extsort/internal/utils"
)

func main() {
	inputs, err := utils.HandleCLIInputs()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(2)
	}

	log, err := utils.NewLogger("extsort", inputs.Verbosity)
	if err != nil {
		fmt.Println("Error while setting up logging:", err)
		os.Exit(1)
	}

	ctx, cancel := utils.InterruptContext()
	defer cancel()

	if inputs.GenMultiplier > 0 {
		count := gen.Count(inputs.MemoryBudget, inputs.GenMultiplier)
		log.Info("generating input", "path", inputs.InputPath, "records", count)

		if err := utils.EnsureParentDir(inputs.InputPath); err != nil {
			log.Error(err, "unable to create input directory")
			os.Exit(1)
		}
		if err := gen.GenerateFile(inputs.InputPath, count, core.DefaultGenMaxValue, time.Now().UnixNano()); err != nil {
			log.Error(err, "unable to generate input")
			os.Exit(1)
		}
	}

	if !utils.PathExists(inputs.InputPath) {
		log.Error(os.ErrNotExist, "input file not found", "path", inputs.InputPath)
		os.Exit(1)
	}

	if err := utils.EnsureParentDir(inputs.OutputPath); err != nil {
		log.Error(err, "unable to create output directory")
		os.Exit(1)
	}

	start := time.Now()
	stats, err := extsort.SortFile(ctx, inputs.InputPath, inputs.OutputPath,
		extsort.WithMemoryBudget(inputs.MemoryBudget),
		extsort.WithWorkDir(inputs.WorkDir),
		extsort.WithLogger(log),
	)
	if err != nil {
		log.Error(err, "sort failed, output is unusable", "output", inputs.OutputPath)
		os.Exit(1)
	}

	log.Info("sort completed", "output", inputs.OutputPath, "records", stats.Records,
		"runs", stats.Runs, "inputBytes", stats.InputBytes, "elapsed", time.Since(start))
}

