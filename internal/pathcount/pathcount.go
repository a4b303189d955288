// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package pathcount computes, for every BDD node reachable from a circuit's
// output edge, the pair of extended-precision path counts the sampler needs:
// how many root-to-ONE paths through that node's sub-DAG cross an odd number
// of complement edges, and how many cross an even number.
//
// The algorithm is the memoised post-order walk dalzilio-rudd's own
// Satcount/satcount (operations.go) performs for plain model counting; we
// generalize it to track parity because our edges carry complement tags
// while rudd's default "tables" BDDs do not need to (it instead multiplies
// in a 2^gap factor per skipped level, which Satcount does and we do not:
// the sampler folds that factor in separately, per spec — count here is a
// pure per-edge path count, not a minterm count).
package pathcount

import (
	"math/big"

	"github.com/pku-liang/sv-sampler-lab/internal/bddkernel"
)

// precisionBits is the extended-precision significand width path counts are
// carried at: at least the 113 bits IEEE quad precision guarantees, which
// big.Float treats as a target precision rather than a hardware format.
const precisionBits = 128

// Pair is a node's (odd, even) path-count pair: the number of distinct
// assignments to the variables below a node that reach ONE via an odd,
// respectively even, number of complement edges from that node.
type Pair struct {
	Odd, Even *big.Float
}

// Map holds one Pair per regular (non-complemented) node reachable from the
// edge the Map was built for, keyed by bddkernel.Edge's regular form.
type Map struct {
	m *bddkernel.Manager
	counts map[bddkernel.Edge]Pair
}

func zero() *big.Float { return new(big.Float).SetPrec(precisionBits) }
func one() *big.Float {
	f := new(big.Float).SetPrec(precisionBits)
	f.SetInt64(1)
	return f
}

// Count builds the path-count map for every node reachable from root and
// returns the (odd, even) pair for root itself, with root's own complement
// tag already folded in (count_edge(root) in spec terms).
func Count(m *bddkernel.Manager, root bddkernel.Edge) (Pair, *Map) {
	cm := &Map{m: m, counts: make(map[bddkernel.Edge]Pair)}
	p := cm.countEdge(root)
	return p, cm
}

// Edge returns the memoised (odd, even) pair for e, folding in e's own
// complement tag. An edge that was not reachable from the root Count was
// built for is counted on demand, and its nodes are memoised the same way.
func (cm *Map) Edge(e bddkernel.Edge) Pair {
	return cm.countEdge(e)
}

func (cm *Map) countEdge(e bddkernel.Edge) Pair {
	regular := cm.m.Regular(e)
	p := cm.countNode(regular)
	if cm.m.IsComplemented(e) {
		return Pair{Odd: p.Even, Even: p.Odd}
	}
	return p
}

func (cm *Map) countNode(n bddkernel.Edge) Pair {
	if n == cm.m.One() {
		return Pair{Odd: zero(), Even: one()}
	}
	if p, ok := cm.counts[n]; ok {
		return p
	}
	hiPair := cm.countEdge(cm.m.Hi(n))
	loPair := cm.countEdge(cm.m.Lo(n))
	p := Pair{
		Odd:  new(big.Float).SetPrec(precisionBits).Add(hiPair.Odd, loPair.Odd),
		Even: new(big.Float).SetPrec(precisionBits).Add(hiPair.Even, loPair.Even),
	}
	cm.counts[n] = p
	return p
}
