package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/0xRadioAc7iv/go-extsort/core"
	"github.com/0xRadioAc7iv/go-extsort/extsort"
	"github.com/0xRadioAc7iv/go-extsort/internal/gen"
	"github.com/0xRadioAc7iv/go-extsort/internal/utils"
)

const helpString = `
Available Commands:

GEN <path> <count>
  Write <count> random records to <path>.

SORT <in> <out> [budget]
  Sort <in> into <out>. Budget defaults to the -budget flag (e.g. 1MB).

CHECK <path>
  Verify that <path> is sorted and count its records.

HELP
  Show this help message.

EXIT
  Quit.
`

func main() {
	budgetFlag := flag.String("budget", utils.DefaultMemoryBudget, "Default memory budget for SORT")
	workDir := flag.String("dir", utils.DefaultWorkDir, "Work directory for the temporary run file")
	verbosity := flag.Int("v", 0, "Log verbosity")
	flag.Parse()

	defaultBudget, err := utils.ParseBudget(*budgetFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	log, err := utils.NewLogger("extsort-cli", *verbosity)
	if err != nil {
		fmt.Println("Error while setting up logging:", err)
		os.Exit(1)
	}

	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("input error:", err)
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		cmd, args, err := utils.SplitStringIntoCommandAndArguments(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}

		switch strings.ToLower(cmd) {
		case "exit":
			return
		case "help":
			fmt.Println(strings.TrimSpace(helpString))
		case "gen":
			if len(args) != 2 {
				fmt.Println("usage: gen <path> <count>")
				continue
			}
			count, err := strconv.Atoi(args[1])
			if err != nil || count < 0 {
				fmt.Println("invalid count:", args[1])
				continue
			}
			if err := gen.GenerateFile(args[0], count, core.DefaultGenMaxValue, time.Now().UnixNano()); err != nil {
				fmt.Println("gen failed:", err)
				continue
			}
			fmt.Println("ok")
		case "sort":
			if len(args) < 2 || len(args) > 3 {
				fmt.Println("usage: sort <in> <out> [budget]")
				continue
			}
			budget := defaultBudget
			if len(args) == 3 {
				if budget, err = utils.ParseBudget(args[2]); err != nil {
					fmt.Println(err)
					continue
				}
			}
			stats, err := extsort.SortFile(context.Background(), args[0], args[1],
				extsort.WithMemoryBudget(budget),
				extsort.WithWorkDir(*workDir),
				extsort.WithLogger(log),
			)
			if err != nil {
				fmt.Println("sort failed:", err)
				continue
			}
			fmt.Printf("sorted %d records in %d runs\n", stats.Records, stats.Runs)
		case "check":
			if len(args) != 1 {
				fmt.Println("usage: check <path>")
				continue
			}
			n, err := extsort.CheckFile(args[0])
			if err != nil {
				fmt.Println("check failed:", err)
				continue
			}
			fmt.Printf("sorted, %d records\n", n)
		default:
			fmt.Println("Invalid Command")
		}
	}
}

