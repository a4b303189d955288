// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import "github.com/pku-liang/sv-sampler-lab/internal/solgenerr"

// config holds the construction-time tuning knobs. The names and defaults
// are adapted from dalzilio-rudd's configs/makeconfigs (config.go): node
// table sizing, growth policy and cache sizing are all still meaningful for
// a hashmap-backed unique table, even though the arena itself is a plain Go
// slice rather than rudd's manually managed array.
type config struct {
	nodesize        int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	cachesize       int
	cacheratio      int
	autoReorder     bool
	reorderThresh   int
}

func defaultConfig() config {
	return config{
		nodesize:        1000,
		maxnodesize:     0, // 0 means unbounded, matching rudd's "no limit" default
		maxnodeincrease: 1 << 20,
		minfreenodes:    20,
		cachesize:       10007,
		cacheratio:      0,
	}
}

// Option configures a Manager at construction time, in the functional-options
// style of dalzilio-rudd's config.go.
type Option func(*config)

// Nodesize sets the initial capacity hint for the node arena.
func Nodesize(n int) Option { return func(c *config) { c.nodesize = n } }

// Maxnodesize bounds how large the node arena may grow; 0 means unbounded.
func Maxnodesize(n int) Option { return func(c *config) { c.maxnodesize = n } }

// Maxnodeincrease records a bound on how many nodes a single resize step may
// add. The arena grows one node at a time (see allocNode), so this value is
// stored but has no effect on allocation.
func Maxnodeincrease(n int) Option { return func(c *config) { c.maxnodeincrease = n } }

// Minfreenodes sets the percentage of free arena slots below which the next
// allocation triggers a garbage collection pass before growing the arena.
func Minfreenodes(n int) Option { return func(c *config) { c.minfreenodes = n } }

// Cachesize sets the initial size of the AND computed cache.
func Cachesize(n int) Option { return func(c *config) { c.cachesize = n } }

// Cacheratio records a computed-cache size expressed as a divisor of the node
// arena size. The AND cache is sized once from Cachesize in New and is not
// resized as the arena grows, so this value is stored but has no effect.
func Cacheratio(n int) Option { return func(c *config) { c.cacheratio = n } }

// AutoReorder authorises the loader to act on ShouldReorder once more than
// threshold nodes have been produced since the last reorder (or since
// construction, if none has happened yet). The Manager itself never
// reorders in place; see doc.go and ShouldReorder.
func AutoReorder(threshold int) Option {
	return func(c *config) { c.autoReorder = true; c.reorderThresh = threshold }
}

// Manager owns one BDD's variable set, node arena, unique table and AND
// computed cache. It is not safe for concurrent use: spec's concurrency
// model confines a Manager to a single goroutine for its entire lifetime.
type Manager struct {
	varCount int32
	varEdge  []Edge

	nodes  []node
	unique map[triple]int32
	free   []int32

	andCache []cacheEntry

	refstack []int32

	produced      int
	gcCount       int
	sinceReorder  int

	cfg config
	err error
}

// New creates a Manager for varnum Boolean variables, indexed 0..varnum-1.
// Every variable's own projection edge is created eagerly and pinned (never
// garbage collected), mirroring rudd's New, which does the same in its
// construction loop over varnum.
func New(varnum int, opts ...Option) (*Manager, error) {
	if varnum < 0 {
		return nil, solgenerr.Newf("bddkernel.New", solgenerr.Internal, "negative variable count %d", varnum)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	m := &Manager{
		varCount: int32(varnum),
		varEdge:  make([]Edge, varnum),
		cfg:      cfg,
	}
	m.nodes = make([]node, 2, cfg.nodesize+2)
	m.nodes[0] = node{} // id 0: unused sentinel
	m.nodes[1] = node{variable: int32(varnum), refcou: maxRefCount, alive: true} // id 1: ONE leaf
	m.unique = make(map[triple]int32, cfg.nodesize)
	m.resizeCache(cfg.cachesize)

	for i := 0; i < varnum; i++ {
		id, err := m.allocNode()
		if err != nil {
			return nil, err
		}
		m.nodes[id] = node{variable: int32(i), hi: one, lo: zero, refcou: maxRefCount, alive: true}
		m.unique[triple{int32(i), one, zero}] = id
		m.varEdge[i] = mkEdge(id, false)
	}
	return m, nil
}

// one and zero are the two constant edges, always referring to node id 1.
var (
	one  = mkEdge(oneID, false)
	zero = mkEdge(oneID, true)
)

// One returns the constant-true edge.
func (m *Manager) One() Edge { return one }

// Zero returns the constant-false edge.
func (m *Manager) Zero() Edge { return zero }

// Varnum returns the number of Boolean variables the Manager was built with.
func (m *Manager) Varnum() int { return int(m.varCount) }

// NodeCount returns the number of live, non-constant nodes currently in the
// unique table.
func (m *Manager) NodeCount() int { return len(m.unique) }

// ShouldReorder reports whether the caller's AutoReorder threshold of nodes
// produced since the last reorder (mkNode's sinceReorder counter, reset by
// NoteReorder) has been exceeded. The Manager does not reorder itself — see
// doc.go — this is purely a signal for internal/aag to act on while it
// still holds the full gate list. Gating on growth since the last reorder,
// rather than on the live NodeCount directly, keeps a manager that already
// reordered once from reporting ShouldReorder again on every subsequent
// check just because its table stayed above the threshold.
func (m *Manager) ShouldReorder() bool {
	return m.cfg.autoReorder && m.sinceReorder > m.cfg.reorderThresh
}

// NoteReorder resets the ShouldReorder threshold bookkeeping after the
// caller has rebuilt the BDD under a new order (or decided not to).
func (m *Manager) NoteReorder() { m.sinceReorder = 0 }
