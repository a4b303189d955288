// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package sampler draws uniformly (or near-uniformly) random satisfying
// assignments from a BDD by descending it root-to-leaf, choosing each branch
// with probability proportional to the number of satisfying paths it leads
// to, then filling any variable the descent never touched uniformly at
// random.
//
// The weighted-choice/dedup/shuffle-and-truncate discipline is new relative
// to dalzilio-rudd (the teacher ships no sampler at all — Satcount in
// operations.go only counts, it never draws), so this package is grounded
// directly on spec.md §4.4 together with original_source/srcs/solution_gen.cpp's
// dfs_generate_solution/generate_solutions, translated into the teacher's Go
// idiom: a *rand.Rand threaded explicitly (no package-level RNG), matching
// katalvlaran-lvlath's tsp/rng.go (rngFromSeed, shuffleIntsInPlace).
package sampler

import (
	"math/big"
	"math/rand"

	"github.com/pku-liang/sv-sampler-lab/internal/bddkernel"
	"github.com/pku-liang/sv-sampler-lab/internal/pathcount"
	"github.com/pku-liang/sv-sampler-lab/internal/solgenerr"
)

// Sample is a bit-vector assignment to the primary inputs, indexed the same
// way as aag.Doc.Names: Sample[i] is the value drawn for input i.
type Sample []bool

// maxAttempts bounds the number of times a single draw restarts from the
// root after landing on a leaf inconsistent with its required parity. Per
// spec §4.4 this is a fallback for a path-count bug, not a normal code path:
// the weights are constructed so a restart should never be needed. spec
// recommends 100 (over original_source's 1000); see DESIGN.md.
const maxAttempts = 100

// precisionBits mirrors pathcount.precisionBits: ratios are computed in
// extended precision before ever touching a float64, so that huge absolute
// counts (which would overflow a hardware double) never appear directly in
// the division — only their bounded [0,1] ratio does.
const precisionBits = 128

// Run draws up to numSolutions distinct satisfying assignments of root, a
// BDD over n primary inputs, using counts (as built by pathcount.Count for
// the same root) to weight each branch choice. rng is seeded from seed so
// that, per spec §5, identical (aag, seed, numSolutions) inputs reproduce
// byte-identical output.
//
// Run always returns whatever it managed to collect: in draw order when that
// is at most numSolutions, otherwise shuffled and truncated to numSolutions
// per spec §4.4; a non-nil error is
// always a *solgenerr.Error of kind SamplerGaveUp, a warning rather than a
// hard failure — the caller should still proceed to emit the result.
func Run(m *bddkernel.Manager, root bddkernel.Edge, counts *pathcount.Map, n, numSolutions int, seed int64) ([]Sample, error) {
	if numSolutions <= 0 {
		return []Sample{}, nil
	}
	rng := rand.New(rand.NewSource(seed))

	target := 2 * numSolutions
	giveup := 10 * numSolutions
	if giveup < 10000 {
		giveup = 10000
	}

	seen := make(map[string]bool, target)
	samples := make([]Sample, 0, target)
	noNew := 0
	for len(samples) < target && noNew < giveup {
		s, ok := attempt(m, root, counts, n, rng)
		if !ok {
			noNew++
			continue
		}
		key := string(packBits(s))
		if seen[key] {
			noNew++
			continue
		}
		seen[key] = true
		samples = append(samples, s)
		noNew = 0
	}

	var warn error
	if len(samples) < numSolutions {
		warn = solgenerr.Newf("sampler.Run", solgenerr.SamplerGaveUp,
			"found %d unique solution(s), wanted %d (gave up after %d consecutive failed draws)",
			len(samples), numSolutions, giveup)
	}

	if len(samples) > numSolutions {
		shuffle(samples, rng)
		samples = samples[:numSolutions]
	}
	return samples, warn
}

// attempt draws one assignment, retrying the whole descent up to
// maxAttempts times if it lands on a leaf inconsistent with the parity it
// was chasing (the Internal-error fallback of spec §4.4/§7).
func attempt(m *bddkernel.Manager, root bddkernel.Edge, counts *pathcount.Map, n int, rng *rand.Rand) (Sample, bool) {
	for try := 0; try < maxAttempts; try++ {
		sample := make(Sample, n)
		assigned := make([]bool, n)
		cur := m.Regular(root)
		targetOdd := m.IsComplemented(root)
		if descend(m, counts, rng, cur, targetOdd, sample, assigned) {
			fillDontCares(sample, assigned, rng)
			return sample, true
		}
	}
	return nil, false
}

// descend performs one weighted root-to-leaf walk. cur is always a regular
// (uncomplemented) edge — every complement tag encountered is folded into
// targetOdd instead of being carried on the edge itself, which is what lets
// the leaf check at the bottom reduce to a single boolean comparison instead
// of the node-identity-and-parity pair spec §4.4 describes: by the time a
// constant is reached, cur is necessarily ONE, so the "node == ZERO"
// disjunct of spec's leaf rule is exactly "node == ONE but targetOdd == true".
func descend(m *bddkernel.Manager, counts *pathcount.Map, rng *rand.Rand, cur bddkernel.Edge, targetOdd bool, sample Sample, assigned []bool) bool {
	if m.IsConstant(cur) {
		return !targetOdd
	}
	v := m.Var(cur)
	hi := m.Hi(cur) // cur is regular, so hi comes back with no complement tag (canonical placement invariant)
	lo := m.Lo(cur) // lo may carry the complement tag

	wHi := weight(counts, hi, targetOdd)
	wLo := weight(counts, lo, targetOdd)
	total := new(big.Float).SetPrec(precisionBits).Add(wHi, wLo)
	if total.Sign() <= 0 {
		// Every reachable node has at least one path to ONE through it, so
		// this signals a path-count/weight inconsistency, not a real zero
		// branch; fall back to a restart (spec §4.4's Internal fallback).
		return false
	}
	ratio := new(big.Float).SetPrec(precisionBits).Quo(wHi, total)
	threshold, _ := ratio.Float64()
	chooseHi := rng.Float64() < threshold

	var next bddkernel.Edge
	var nextTarget bool
	if chooseHi {
		next = m.Regular(hi)
		nextTarget = targetOdd != m.IsComplemented(hi)
		sample[v] = true
	} else {
		next = m.Regular(lo)
		nextTarget = targetOdd != m.IsComplemented(lo)
		sample[v] = false
	}
	assigned[v] = true
	return descend(m, counts, rng, next, nextTarget, sample, assigned)
}

// weight returns the raw extended-precision path count child contributes to
// the branch choice, selected from its (odd, even) pair by the PARENT's
// (not yet toggled) targetOdd. This is algebraically identical to spec
// §4.4's "target_odd_T ? o(regular(T)) : e(regular(T))" — selecting by the
// already-toggled child parity out of the raw pair — because pathcount.Map
// folds child's own complement tag into exactly the pair that undoes the
// toggle; see the package doc of pathcount for the (odd, even) swap rule.
func weight(counts *pathcount.Map, e bddkernel.Edge, parentTargetOdd bool) *big.Float {
	p := counts.Edge(e)
	if parentTargetOdd {
		return p.Odd
	}
	return p.Even
}

// fillDontCares assigns a uniformly random value to every primary input the
// descent never branched on, per spec §4.4. The weighted branch choice
// carries no 2^gap factor for variables skipped between a node and its
// child, so where a node's hi and lo children sit at different depths the
// draw is not exactly uniform over satisfying assignments (for x0 OR x1,
// (0,1) comes out with probability 1/2 and the other two with 1/4 each).
func fillDontCares(sample Sample, assigned []bool, rng *rand.Rand) {
	for i, ok := range assigned {
		if !ok {
			sample[i] = rng.Intn(2) == 1
		}
	}
}

func packBits(s Sample) []byte {
	buf := make([]byte, (len(s)+7)/8)
	for i, b := range s {
		if b {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	return buf
}

// shuffle performs an in-place Fisher-Yates shuffle using rng, the same
// algorithm as katalvlaran-lvlath's tsp/rng.go shuffleIntsInPlace, continuing
// to draw from the same RNG stream sampling left behind — spec §5 requires
// the optional shuffle-and-truncate step to consume the stream's remaining
// state rather than reseed.
func shuffle(s []Sample, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
