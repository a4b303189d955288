// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

// Edge is a reference to a BDD node together with a complement tag carried on
// the edge itself rather than on the node. Node id 0 is never allocated, so
// the zero Edge is a safe "no edge" sentinel distinguishable from any real
// edge (ONE's id is 1).
type Edge int32

// invalidEdge is returned by internal operations on failure; the sticky
// m.err field carries the reason. It is never produced by a successful
// operation because real node ids start at 1.
const invalidEdge Edge = 0

func mkEdge(id int32, complemented bool) Edge {
	e := Edge(id) << 1
	if complemented {
		e |= 1
	}
	return e
}

func (e Edge) id() int32 { return int32(e >> 1) }

// IsComplemented reports whether e carries the complement tag.
func (e Edge) IsComplemented() bool { return e&1 != 0 }

// Not negates e in O(1) by flipping its complement tag; it never allocates
// or touches the unique table.
func (e Edge) Not() Edge { return e ^ 1 }

// Regular strips e's complement tag, returning the edge to the same node
// with positive polarity.
func (e Edge) Regular() Edge { return e &^ 1 }

// IsConstant reports whether e (in either polarity) denotes a Boolean
// constant, i.e. ONE or its complement ZERO.
func (e Edge) IsConstant() bool { return e.id() == oneID }

// node is the content of one arena slot. hi is never complemented — the
// complement-on-hi invariant that keeps a (variable, hi, lo) triple a
// canonical key for the unique table.
type node struct {
	variable int32
	hi, lo   Edge
	refcou   int32
	alive    bool
}

// triple is the unique-table key. Because variable order is fixed for a
// Manager's lifetime, the node's own variable index doubles as its level, so
// no separate index/level indirection is needed (contrast CUDD, which must
// split the two to support in-place reordering; see doc.go).
type triple struct {
	variable int32
	hi, lo   Edge
}

const (
	oneID    int32 = 1
	maxRefCount int32 = 1<<30 - 1
)
