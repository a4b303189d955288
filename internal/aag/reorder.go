// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aag

import "sort"

// heuristicOrder proposes a variable order to retry folding under once the
// manager has decided (via ShouldReorder) that the identity order has
// created too many nodes. Real dynamic reordering resifts the live
// DAG in place (CUDD's ddSwapInPlace); bddkernel deliberately does not
// implement that (see its doc.go), so the loader instead rebuilds from
// scratch under a statically chosen order and keeps whichever fold used
// fewer nodes — trivially correct, since AND-folding's Boolean result does
// not depend on variable order.
//
// The heuristic itself is the standard "most-referenced variable nearest
// the root" rule of thumb: inputs that appear as a direct operand of more
// gates are placed at lower variable indices, mirroring sifting's general
// tendency to migrate heavily shared variables toward the top of the
// order.
func heuristicOrder(I int, gates []gateLit, inputLits []int) []int {
	litToInput := make(map[int]int, I)
	for k, lit := range inputLits {
		litToInput[lit] = k
	}

	refs := make([]int, I)
	count := func(lit int) {
		if k, ok := litToInput[lit&^1]; ok {
			refs[k]++
		}
	}
	for _, g := range gates {
		count(g.in1)
		count(g.in2)
	}

	rank := make([]int, I)
	for k := range rank {
		rank[k] = k
	}
	sort.SliceStable(rank, func(i, j int) bool {
		return refs[rank[i]] > refs[rank[j]]
	})

	order := make([]int, I)
	for slot, input := range rank {
		order[input] = slot
	}
	return order
}
