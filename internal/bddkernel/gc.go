// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import "github.com/pku-liang/sv-sampler-lab/internal/solgenerr"

// allocNode returns a fresh or reclaimed arena slot id, growing the arena or
// running a mark-sweep collection as needed. The free-list-then-gc-then-grow
// order is the same discipline as dalzilio-rudd's hkernel.go (noderesize
// called from makenode once the free list is exhausted), adapted to a plain
// Go slice instead of rudd's manually linked free list threaded through the
// node array itself — that threading is a space optimization for a C-style
// arena, not something a Go slice needs to be correct.
func (m *Manager) allocNode() (int32, error) {
	if len(m.free) > 0 {
		id := m.free[len(m.free)-1]
		m.free = m.free[:len(m.free)-1]
		return id, nil
	}
	if m.shouldGC() {
		m.gc()
		if len(m.free) > 0 {
			id := m.free[len(m.free)-1]
			m.free = m.free[:len(m.free)-1]
			return id, nil
		}
	}
	if m.cfg.maxnodesize > 0 && len(m.nodes) >= m.cfg.maxnodesize {
		return 0, solgenerr.Newf("bddkernel.allocNode", solgenerr.BddOpFailed,
			"node table exhausted at configured limit %d", m.cfg.maxnodesize)
	}
	id := int32(len(m.nodes))
	m.nodes = append(m.nodes, node{})
	return id, nil
}

// shouldGC mirrors rudd's "(b.freenum*100)/len(b.nodes) <= b.minfreenodes"
// trigger: once fewer than minfreenodes percent of the arena is free, the
// next allocation should try to reclaim dead nodes before growing further.
func (m *Manager) shouldGC() bool {
	if len(m.nodes) < 64 {
		return false
	}
	free := len(m.free)
	return (free*100)/len(m.nodes) <= m.cfg.minfreenodes
}

// gc runs a mark-sweep pass: every node reachable from an externally
// referenced node (refcou > 0) or from the transient refstack survives;
// everything else is removed from the unique table and returned to the free
// list. Adapted from rudd's gbc/markrec/unmarkall (gc.go, hkernel.go).
func (m *Manager) gc() {
	m.gcCount++
	marked := make([]bool, len(m.nodes))

	var mark func(id int32)
	mark = func(id int32) {
		if id < 2 || id >= int32(len(m.nodes)) || marked[id] || !m.nodes[id].alive {
			return
		}
		marked[id] = true
		mark(m.nodes[id].hi.id())
		mark(m.nodes[id].lo.id())
	}

	for _, id := range m.refstack {
		mark(id)
	}
	for id := int32(2); id < int32(len(m.nodes)); id++ {
		if m.nodes[id].alive && m.nodes[id].refcou > 0 {
			mark(id)
		}
	}

	m.free = m.free[:0]
	for id := int32(len(m.nodes)) - 1; id >= 2; id-- {
		if m.nodes[id].alive && !marked[id] {
			delete(m.unique, triple{m.nodes[id].variable, m.nodes[id].hi, m.nodes[id].lo})
			m.nodes[id] = node{}
			m.free = append(m.free, id)
		}
	}

	// Dead ids are about to be recycled with new content, so any computed
	// cache entry naming them is no longer trustworthy.
	m.clearCache()
}

// pushref protects id (a raw node id, polarity already stripped) from being
// collected by gc while a recursive and() is still assembling a result that
// references it but hasn't been stored in a node yet.
func (m *Manager) pushref(e Edge) Edge {
	if !e.IsConstant() {
		m.refstack = append(m.refstack, e.id())
	}
	return e
}

func (m *Manager) popref(n int) {
	if n > len(m.refstack) {
		n = len(m.refstack)
	}
	m.refstack = m.refstack[:len(m.refstack)-n]
}
