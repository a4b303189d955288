// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pathcount

import (
	"testing"

	"github.com/pku-liang/sv-sampler-lab/internal/bddkernel"
)

func mustAnd(t *testing.T, m *bddkernel.Manager, a, b bddkernel.Edge) bddkernel.Edge {
	t.Helper()
	e, err := m.And(a, b)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	m.Ref(e)
	return e
}

func f64(t *testing.T, p Pair) (odd, even float64) {
	t.Helper()
	o, _ := p.Odd.Float64()
	e, _ := p.Even.Float64()
	return o, e
}

func TestCountConstantOneHasOneEvenPathAndNoOddPath(t *testing.T) {
	m, err := bddkernel.New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, _ := Count(m, m.One())
	odd, even := f64(t, p)
	if odd != 0 || even != 1 {
		t.Errorf("Count(ONE) = (odd=%v, even=%v), want (0, 1)", odd, even)
	}
}

// TestCountAndChainMatchesTrueModelCount is spec.md §8 property 6 for the
// one shape where it holds cleanly: every AND gate's "false" cofactor
// short-circuits straight to ZERO, so a skipped variable only ever appears
// below a branch that already contributes zero — the skip never changes a
// nonzero count, so the raw (no 2^gap weighting) recursion matches the true
// model count exactly. Here every variable appears on the reduced BDD's one
// live path, so N - |vars(f_out)| = 0 and the identity reduces to
// e(f_out) == S directly (root is uncomplemented, so the satisfying count is
// the even component once count_edge has folded in any complement tag —
// see DESIGN.md's Open Questions for why "even", not spec §4.3's prose
// "first component").
func TestCountAndChainMatchesTrueModelCount(t *testing.T) {
	m, err := bddkernel.New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	x1, _ := m.MkVar(1)
	x2, _ := m.MkVar(2)
	ab := mustAnd(t, m, x0, x1)
	f := mustAnd(t, m, ab, x2)
	m.Ref(f)

	p, _ := Count(m, f)
	_, even := f64(t, p)
	if even != 1 {
		t.Errorf("e(f) = %v, want 1 (the single satisfying assignment x0=x1=x2=1)", even)
	}
}

// TestCountSingleVariableMatchesTrueModelCountAfterSkipFactor is spec.md §8
// property 6 applied to f = x1 alone over 3 variables: x0 and x2 never
// appear anywhere in the reduced BDD (a genuinely skipped pair, not an
// asymmetric-branch skip), so the global 2^(N-|vars(f_out)|) factor applies
// cleanly: e(f_out) * 2^(3-1) must equal the true model count 4 (x1 must be
// true; x0, x2 free).
func TestCountSingleVariableMatchesTrueModelCountAfterSkipFactor(t *testing.T) {
	m, err := bddkernel.New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f, _ := m.MkVar(1)
	m.Ref(f)

	p, _ := Count(m, f)
	_, even := f64(t, p)
	got := even * 4 // 2^(N - |vars(f_out)|) = 2^(3-1)
	if got != 4 {
		t.Errorf("e(f)*2^(N-|vars(f)|) = %v, want 4", got)
	}
}

// TestCountComplementedEdgeSwapsOddAndEven exercises the count_edge fold
// rule directly: querying the same physical node through its complemented
// and uncomplemented references must give swapped (odd, even) pairs.
func TestCountComplementedEdgeSwapsOddAndEven(t *testing.T) {
	m, err := bddkernel.New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	x1, _ := m.MkVar(1)
	f := mustAnd(t, m, x0, x1)

	_, counts := Count(m, f)
	pos := counts.Edge(f)
	neg := counts.Edge(m.Not(f))
	if pos.Odd.Cmp(neg.Even) != 0 || pos.Even.Cmp(neg.Odd) != 0 {
		t.Errorf("complemented query did not swap (odd, even): pos=(%v,%v) neg=(%v,%v)",
			pos.Odd, pos.Even, neg.Odd, neg.Even)
	}
}

// TestCountMemoisesSharedSubgraphs builds f from two parents (left, right)
// that share the child x1 AND x2, and checks that querying that child twice
// returns the very same memoised *big.Float values — i.e. the memo table,
// not a fresh recomputation, is used.
func TestCountMemoisesSharedSubgraphs(t *testing.T) {
	m, err := bddkernel.New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	x1, _ := m.MkVar(1)
	x2, _ := m.MkVar(2)
	shared := mustAnd(t, m, x1, x2)
	left := mustAnd(t, m, x0, shared)
	right := mustAnd(t, m, m.Not(x0), shared)
	f, err := m.And(left, m.Not(right))
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	m.Ref(f)

	_, counts := Count(m, f)
	a := counts.Edge(shared)
	b := counts.Edge(shared)
	if a.Odd != b.Odd || a.Even != b.Even {
		t.Errorf("two queries for the same edge did not return the memoised pair: %v vs %v", a, b)
	}
}
