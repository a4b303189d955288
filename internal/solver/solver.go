// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package solver owns cmd/solgen's end-to-end orchestration: wiring
// internal/aag (C2) into internal/pathcount (C3) into internal/sampler (C4)
// into internal/reshape (C5), and the ambient concerns — verbose tracing,
// the optional DOT dump, and the single-sticky-error-to-exit-code
// translation spec.md §7 requires. The driver itself has no analogue in
// dalzilio-rudd (a library has no main), so its shape is grounded on
// original_source/srcs/solution_gen.cpp's main(): load AAG, build BDD, run
// the DP, sample, reshape, write JSON, print stats if verbose — translated
// into a single Run entry point cmd/solgen calls, keeping main.go itself a
// thin flag-parsing shim per SPEC_FULL.md's CLI section.
package solver

import (
	"log"
	"os"

	"github.com/pku-liang/sv-sampler-lab/internal/aag"
	"github.com/pku-liang/sv-sampler-lab/internal/bddkernel"
	"github.com/pku-liang/sv-sampler-lab/internal/pathcount"
	"github.com/pku-liang/sv-sampler-lab/internal/reshape"
	"github.com/pku-liang/sv-sampler-lab/internal/sampler"
	"github.com/pku-liang/sv-sampler-lab/internal/solgenerr"
)

// autoReorderThreshold is the number of nodes created since the last reorder
// past which internal/aag retries folding under a heuristically chosen
// variable order (see
// bddkernel.AutoReorder and internal/aag/reorder.go). Chosen generously so
// that small- and medium-sized circuits (the common case for this tool)
// never pay a refold; only large gate counts trigger it.
const autoReorderThreshold = 200000

// Config collects cmd/solgen's wiring parameters: the four positional
// arguments spec.md §6 mandates, plus the ambient -v/-dot flags.
type Config struct {
	AAGPath      string
	Seed         int64
	NumSolutions int
	OutputPath   string
	Verbose      bool
	DotPath      string
}

// Run executes one full AAG-to-JSON pipeline pass. A returned error is
// always a *solgenerr.Error; per spec.md §7 every kind except
// SamplerGaveUp is fatal (cmd/solgen should exit 1), while SamplerGaveUp is
// a warning Run has already logged to stderr before returning nil — the
// caller still gets a (possibly short) result written to OutputPath and
// should exit 0.
func Run(cfg Config) error {
	doc, err := aag.Load(cfg.AAGPath, bddkernel.AutoReorder(autoReorderThreshold))
	if err != nil {
		return err
	}
	m := doc.Manager

	if cfg.Verbose {
		log.Printf("loaded %s: %d primary inputs", cfg.AAGPath, len(doc.Names))
	}

	if cfg.DotPath != "" {
		if err := m.PrintDot(cfg.DotPath, doc.Output); err != nil {
			return solgenerr.New("solver.Run", solgenerr.IoError, err)
		}
	}

	// Reordering (if internal/aag performed any) is already settled by the
	// time Load returns; the path counter and sampler below never trigger
	// it again, satisfying spec.md §5's "quiesced before memoised
	// traversals" reordering discipline.
	rootCount, counts := pathcount.Count(m, doc.Output)
	if cfg.Verbose {
		log.Printf("path count at output (restricted to vars on a path): %s", rootCount.Even.Text('g', 10))
		log.Print(m.Stats())
	}

	samples, sampleErr := sampler.Run(m, doc.Output, counts, len(doc.Names), cfg.NumSolutions, cfg.Seed)
	if sampleErr != nil && solgenerr.KindOf(sampleErr) != solgenerr.SamplerGaveUp {
		return sampleErr
	}
	// The extended-precision path-count map is only needed to drive
	// sampling; spec.md §5 says it must not outlive a single output's
	// emission, so nothing below this line touches counts again.
	counts = nil

	result := reshape.Build(samples, doc.Names)
	data, err := reshape.Marshal(result)
	if err != nil {
		return solgenerr.New("solver.Run", solgenerr.Internal, err)
	}
	data = append(data, '\n')

	// Marshal happens fully in memory before the file is ever opened, so a
	// write failure never leaves a partial JSON document on disk — spec.md
	// §7's "no partial JSON is written" on error.
	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return solgenerr.New("solver.Run", solgenerr.IoError, err)
	}

	if sampleErr != nil {
		log.Println(sampleErr)
	}
	if cfg.Verbose {
		log.Printf("wrote %d solution(s) to %s", len(samples), cfg.OutputPath)
	}
	return nil
}
