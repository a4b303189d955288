// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

// mkNode returns the canonical edge for (variable, hi, lo), creating a new
// arena slot only if no node with that content exists yet. It enforces two
// invariants on every edge it can produce: hi is never complemented, and
// hi==lo collapses to hi directly (the standard BDD reduction rule) without
// ever touching the unique table.
//
// variable must be strictly less than the variable of both hi and lo (or
// they must be constants); mkNode does not check this itself — and() is its
// only caller and already respects variable order by construction (New
// writes the per-variable nodes into the arena directly, not via mkNode).
func (m *Manager) mkNode(variable int32, hi, lo Edge) Edge {
	if m.err != nil {
		return invalidEdge
	}
	if hi == lo {
		return hi
	}
	complement := hi.IsComplemented()
	if complement {
		hi = hi.Not()
		lo = lo.Not()
	}
	key := triple{variable, hi, lo}
	if id, ok := m.unique[key]; ok {
		e := mkEdge(id, false)
		if complement {
			e = e.Not()
		}
		return e
	}
	id, err := m.allocNode()
	if err != nil {
		m.err = err
		return invalidEdge
	}
	m.nodes[id] = node{variable: variable, hi: hi, lo: lo, alive: true}
	m.unique[key] = id
	m.produced++
	m.sinceReorder++
	// A node's hi/lo pointers are themselves references: the child must
	// stay alive for as long as this node does. Ref here, Deref in the
	// mirror-image spot in (*Manager).Deref, once this node's own refcou
	// reaches zero — the same bookkeeping Cudd_RecursiveDeref relies on.
	m.Ref(hi)
	m.Ref(lo)
	e := mkEdge(id, false)
	if complement {
		e = e.Not()
	}
	return e
}
