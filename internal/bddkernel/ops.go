// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import "github.com/pku-liang/sv-sampler-lab/internal/solgenerr"

// MkVar returns the projection edge for variable i: the function that is
// true exactly when input i is true. The edge is pinned for the lifetime of
// the Manager, same as rudd's per-variable nodes created in New.
func (m *Manager) MkVar(i int) (Edge, error) {
	if i < 0 || i >= int(m.varCount) {
		return invalidEdge, solgenerr.Newf("bddkernel.MkVar", solgenerr.Internal, "variable %d out of range [0,%d)", i, m.varCount)
	}
	return m.varEdge[i], nil
}

// Not negates e. Because every node's complement lives on its incoming
// edges, this never allocates and never fails.
func (m *Manager) Not(e Edge) Edge { return e.Not() }

// IsConstant reports whether e denotes one of the two Boolean constants.
func (m *Manager) IsConstant(e Edge) bool { return e.IsConstant() }

// IsComplemented reports whether e carries the complement tag.
func (m *Manager) IsComplemented(e Edge) bool { return e.IsComplemented() }

// Regular returns e with its complement tag cleared.
func (m *Manager) Regular(e Edge) Edge { return e.Regular() }

// Var returns the variable index e's node branches on. Var is undefined for
// constants; callers must check IsConstant first, exactly as CUDD callers
// must check Cudd_IsConstant before Cudd_NodeReadIndex.
func (m *Manager) Var(e Edge) int {
	return int(m.nodes[e.id()].variable)
}

// Hi returns e's high-branch child (the function when Var(e) is true). The
// result carries e's complement tag XORed in, since hi/lo are stored
// relative to a positive edge to the node.
func (m *Manager) Hi(e Edge) Edge {
	n := &m.nodes[e.id()]
	if e.IsComplemented() {
		return n.hi.Not()
	}
	return n.hi
}

// Lo returns e's low-branch child (the function when Var(e) is false).
func (m *Manager) Lo(e Edge) Edge {
	n := &m.nodes[e.id()]
	if e.IsComplemented() {
		return n.lo.Not()
	}
	return n.lo
}

func (m *Manager) variableOf(e Edge) int32 {
	if e.IsConstant() {
		return m.varCount
	}
	return m.nodes[e.id()].variable
}

// Ref increments e's external reference count, pinning it and everything it
// reaches against garbage collection until a matching Deref. Constants are
// always pinned and Ref on them is a no-op, as in CUDD.
func (m *Manager) Ref(e Edge) Edge {
	if e.IsConstant() {
		return e
	}
	id := e.id()
	if m.nodes[id].refcou < maxRefCount {
		m.nodes[id].refcou++
	}
	return e
}

// Deref decrements e's reference count (an external one, or the structural
// one a parent node's mkNode put on its children). Reaching zero frees the
// node immediately — removed from the unique table, its id pushed onto the
// free list — and recursively dereferences its own children, mirroring
// Cudd_RecursiveDeref, the discipline original_source/srcs/solution_gen.cpp
// relies on throughout aag_to_BDD and cal_dp. gc (gc.go) is a mark-sweep
// fallback for anything that reaches zero without ever going through here —
// e.g. a transient and() result a caller forgot to Ref — not the primary
// reclamation path.
func (m *Manager) Deref(e Edge) {
	if e.IsConstant() {
		return
	}
	id := e.id()
	n := &m.nodes[id]
	if !n.alive || n.refcou <= 0 || n.refcou >= maxRefCount {
		return
	}
	n.refcou--
	if n.refcou == 0 {
		hi, lo := n.hi, n.lo
		delete(m.unique, triple{n.variable, hi, lo})
		*n = node{}
		m.free = append(m.free, id)
		m.Deref(hi)
		m.Deref(lo)
	}
}

// And computes the conjunction of a and b. The result is unreferenced: the
// caller must Ref it before performing any further operation that might
// trigger garbage collection, and Deref it once it is no longer needed.
func (m *Manager) And(a, b Edge) (Edge, error) {
	m.err = nil
	m.refstack = m.refstack[:0]
	res := m.and(a, b)
	if m.err != nil {
		return invalidEdge, m.err
	}
	return res, nil
}

func (m *Manager) and(a, b Edge) Edge {
	if m.err != nil {
		return invalidEdge
	}
	switch {
	case a == zero || b == zero:
		return zero
	case a == one:
		return b
	case b == one:
		return a
	case a == b:
		return a
	case a == b.Not():
		return zero
	}
	if a > b {
		a, b = b, a
	}
	if res, ok := m.cacheGet(a, b); ok {
		return res
	}

	va, vb := m.variableOf(a), m.variableOf(b)
	var v int32
	var hiA, loA, hiB, loB Edge
	switch {
	case va == vb:
		v = va
		hiA, loA = m.Hi(a), m.Lo(a)
		hiB, loB = m.Hi(b), m.Lo(b)
	case va < vb:
		v = va
		hiA, loA = m.Hi(a), m.Lo(a)
		hiB, loB = b, b
	default:
		v = vb
		hiA, loA = a, a
		hiB, loB = m.Hi(b), m.Lo(b)
	}

	hiRes := m.pushref(m.and(hiA, hiB))
	loRes := m.pushref(m.and(loA, loB))
	res := m.mkNode(v, hiRes, loRes)
	m.popref(2)
	if m.err != nil {
		return invalidEdge
	}
	m.cachePut(a, b, res)
	return res
}
