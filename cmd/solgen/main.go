// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command solgen draws uniformly random satisfying assignments of an
// And-Inverter Graph constraint circuit, via a BDD built from it, and writes
// them as JSON grouped by original multi-bit variable.
//
// Usage:
//
//	solgen [-v] [-dot path] <input.aag> <seed> <num_solutions> <output.json>
//
// main itself only parses flags/positionals and translates solver.Run's
// *solgenerr.Error into the exit code spec.md §7 mandates; all real work
// happens in internal/solver.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pku-liang/sv-sampler-lab/internal/solver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("solgen", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "log progress and BDD statistics to stderr")
	dot := fs.String("dot", "", "write a Graphviz DOT dump of the output BDD to this path")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: solgen [-v] [-dot path] <input.aag> <seed> <num_solutions> <output.json>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	pos := fs.Args()
	if len(pos) != 4 {
		fs.Usage()
		return 1
	}

	seed, err := strconv.ParseUint(pos[1], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "solgen: bad seed %q: %v\n", pos[1], err)
		return 1
	}
	numSolutions, err := strconv.ParseUint(pos[2], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "solgen: bad num_solutions %q: %v\n", pos[2], err)
		return 1
	}

	cfg := solver.Config{
		AAGPath:      pos[0],
		Seed:         int64(seed),
		NumSolutions: int(numSolutions),
		OutputPath:   pos[3],
		Verbose:      *verbose,
		DotPath:      *dot,
	}
	if err := solver.Run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
