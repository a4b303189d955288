// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

// The AND computed cache is dalzilio-rudd's applycache (cache.go)
// specialized to a single operator: we only ever need the AND truth table,
// so there is no "op" discriminant to hash alongside (left, right), and no
// need for rudd's separate ITE/quant/appex/replace caches, since none of
// those operations are in scope here.

type cacheEntry struct {
	a, b Edge
	res  Edge
	used bool
}

func (m *Manager) resizeCache(size int) {
	size = primeGte(size)
	m.andCache = make([]cacheEntry, size)
}

func (m *Manager) clearCache() {
	for i := range m.andCache {
		m.andCache[i].used = false
	}
}

// pair maps (a, b) bijectively into an integer, then folds it into [0, n)
// by modulo — the same _PAIR construction as cache.go's hash function.
func pair(a, b Edge, n int) int {
	ua := uint64(a)
	ub := uint64(b)
	return int((((ua+ub)*(ua+ub+1))/2 + ua) % uint64(n))
}

func (m *Manager) cacheGet(a, b Edge) (Edge, bool) {
	e := &m.andCache[pair(a, b, len(m.andCache))]
	if e.used && e.a == a && e.b == b {
		return e.res, true
	}
	return invalidEdge, false
}

func (m *Manager) cachePut(a, b, res Edge) {
	m.andCache[pair(a, b, len(m.andCache))] = cacheEntry{a: a, b: b, res: res, used: true}
}
