package utils

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/0xRadioAc7iv/go-extsort/core"
)

const DefaultMemoryBudget = "64MB"
const DefaultInputPath = "./data/input.txt"
const DefaultOutputPath = "./data/output.txt"
const DefaultWorkDir = "./data"

type CLIInputs struct {
	InputPath     string
	OutputPath    string
	WorkDir       string
	MemoryBudget  int
	GenMultiplier int
	Verbosity     int
}

func HandleCLIInputs() (*CLIInputs, error) {
	inputPath := flag.String("in", DefaultInputPath, "Path of the file to sort")
	outputPath := flag.String("out", DefaultOutputPath, "Path of the sorted output file")
	workDir := flag.String("dir", DefaultWorkDir, "Work directory for the temporary run file")
	budget := flag.String("budget", DefaultMemoryBudget, "Memory budget for the split phase (e.g. 512KB, 64MB)")
	genMultiplier := flag.Int("gen", 0, "Generate the input first: records per budget byte (0 disables)")
	verbosity := flag.Int("v", 0, "Log verbosity (1 logs every run)")
	flag.Parse()

	memoryBudget, err := ParseBudget(*budget)
	if err != nil {
		return nil, err
	}

	return &CLIInputs{
		InputPath:     *inputPath,
		OutputPath:    *outputPath,
		WorkDir:       *workDir,
		MemoryBudget:  memoryBudget,
		GenMultiplier: *genMultiplier,
		Verbosity:     *verbosity,
	}, nil
}

// ParseBudget parses a human readable byte size ("64MB", "512 KiB", "4096").
func ParseBudget(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid memory budget %q: %w", s, err)
	}
	// the split scratch buffer holds budget+1 bytes
	if n < core.MinimumMemoryBudget || n > math.MaxInt-1 {
		return 0, fmt.Errorf("invalid memory budget %q: %w", s, core.ErrInvalidBudget)
	}
	return int(n), nil
}

// SplitStringIntoCommandAndArguments splits a REPL line with shell quoting
// rules, so paths containing spaces can be quoted.
func SplitStringIntoCommandAndArguments(line string) (cmd string, args []string, err error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, errors.New("empty command")
	}
	return words[0], words[1:], nil
}
