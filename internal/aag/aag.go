// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package aag parses ASCII And-Inverter Graph (AAG) files and folds their
// gates into a bddkernel.Manager, producing a single referenced output edge
// plus each primary input's symbolic bit-group name.
//
// The parser is hand-written rather than built on a tokenizing library: the
// format is five header integers, three flat sections of whitespace/newline
// separated integers, and an optional line-oriented symbol table — exactly
// the kind of small fixed-grammar text format the standard library's
// bufio/strconv are the idiomatic tool for (see dalzilio-rudd's own parsing
// code, which is similarly hand-rolled over bufio, e.g. replace.go). No
// parser-combinator or grammar library anywhere in the retrieval pack
// suggests otherwise.
package aag

import (
	"bufio"
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pku-liang/sv-sampler-lab/internal/bddkernel"
	"github.com/pku-liang/sv-sampler-lab/internal/solgenerr"
)

// InputName is the (X, Y) bit-group coordinate of one primary input, parsed
// from a var_<X>[<Y>] symbol-table name.
type InputName struct {
	X, Y int
}

// Doc is a fully folded AAG circuit: the manager holding its BDD, the
// referenced output edge, and each input's name indexed by manager
// variable id — the same axis sampler.Sample uses, not AAG declaration
// order, so that a reordered fold's Names still line up with the Samples
// drawn over Manager without the caller needing to know a reorder happened.
type Doc struct {
	Manager *bddkernel.Manager
	Output  bddkernel.Edge
	Names   []InputName
}

var nameRE = regexp.MustCompile(`^var_(\d+)\[(\d+)\]$`)

type gateLit struct {
	out, in1, in2 int
}

// Load reads, parses and folds the AAG file at path. opts are forwarded to
// bddkernel.New; passing bddkernel.AutoReorder lets Load react to
// Manager.ShouldReorder by refolding the circuit once under a heuristically
// chosen variable order (see reorder.go).
func Load(path string, opts ...bddkernel.Option) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, solgenerr.New("aag.Load", solgenerr.IoError, err)
	}
	return parse(data, opts...)
}

type scanner struct {
	data []byte
	pos  int
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func (s *scanner) token() (string, bool) {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.data) {
		return "", false
	}
	start := s.pos
	for s.pos < len(s.data) && !isSpace(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos]), true
}

// restOfFile returns everything after the newline that ends the line
// containing the last token consumed — the boundary between the flat
// numeric sections and the line-oriented symbol table.
func (s *scanner) restOfFile() []byte {
	idx := bytes.IndexByte(s.data[s.pos:], '\n')
	if idx < 0 {
		return nil
	}
	return s.data[s.pos+idx+1:]
}

func parse(data []byte, opts ...bddkernel.Option) (*Doc, error) {
	sc := &scanner{data: data}

	next := func(field string) (string, error) {
		t, ok := sc.token()
		if !ok {
			return "", solgenerr.Newf("aag.parse", solgenerr.BadFormat, "unexpected end of file reading %s", field)
		}
		return t, nil
	}
	nextInt := func(field string) (int, error) {
		t, err := next(field)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(t)
		if convErr != nil {
			return 0, solgenerr.Newf("aag.parse", solgenerr.BadFormat, "malformed %s %q", field, t)
		}
		return n, nil
	}
	nextLiteral := func(field string) (int, error) {
		lit, err := nextInt(field)
		if err != nil {
			return 0, err
		}
		if lit < 0 {
			return 0, solgenerr.Newf("aag.parse", solgenerr.BadFormat, "negative literal %d in %s", lit, field)
		}
		return lit, nil
	}

	magic, err := next("magic")
	if err != nil {
		return nil, err
	}
	if magic != "aag" {
		return nil, solgenerr.Newf("aag.parse", solgenerr.BadFormat, "bad magic %q, expected \"aag\"", magic)
	}
	M, err := nextInt("M")
	if err != nil {
		return nil, err
	}
	I, err := nextInt("I")
	if err != nil {
		return nil, err
	}
	L, err := nextInt("L")
	if err != nil {
		return nil, err
	}
	O, err := nextInt("O")
	if err != nil {
		return nil, err
	}
	A, err := nextInt("A")
	if err != nil {
		return nil, err
	}
	if L != 0 {
		return nil, solgenerr.Newf("aag.parse", solgenerr.Unsupported, "L=%d: latches are not supported", L)
	}
	if O != 1 {
		return nil, solgenerr.Newf("aag.parse", solgenerr.Unsupported, "O=%d: exactly one output is supported", O)
	}

	inputLits := make([]int, I)
	for k := 0; k < I; k++ {
		lit, err := nextLiteral("input literal")
		if err != nil {
			return nil, err
		}
		if lit < 2 || lit%2 != 0 {
			return nil, solgenerr.Newf("aag.parse", solgenerr.BadFormat, "input literal %d must be an even integer >= 2", lit)
		}
		inputLits[k] = lit
	}

	outLit, err := nextLiteral("output literal")
	if err != nil {
		return nil, err
	}

	gates := make([]gateLit, A)
	for i := 0; i < A; i++ {
		out, err := nextLiteral("gate output literal")
		if err != nil {
			return nil, err
		}
		if out < 2 || out%2 != 0 {
			return nil, solgenerr.Newf("aag.parse", solgenerr.BadFormat, "gate output literal %d must be an even integer >= 2", out)
		}
		in1, err := nextLiteral("gate input literal")
		if err != nil {
			return nil, err
		}
		in2, err := nextLiteral("gate input literal")
		if err != nil {
			return nil, err
		}
		gates[i] = gateLit{out, in1, in2}
	}

	names := make([]InputName, I)
	for k := range names {
		names[k] = InputName{X: k, Y: 0}
	}
	parseSymbolTable(sc.restOfFile(), names)

	return build(M, I, gates, inputLits, outLit, names, opts...)
}

// parseSymbolTable fills in names for every "i<k> <name>" line, stopping at
// a "c" line, a blank line, or EOF. "o<k> <name>" lines are skipped: the
// loader has no use for the output's symbolic name.
func parseSymbolTable(rest []byte, names []InputName) {
	if rest == nil {
		return
	}
	lineScan := bufio.NewScanner(bytes.NewReader(rest))
	for lineScan.Scan() {
		line := strings.TrimSpace(lineScan.Text())
		if line == "" || line == "c" {
			return
		}
		if len(line) == 0 || line[0] != 'i' {
			continue
		}
		rest := line[1:]
		sp := strings.IndexAny(rest, " \t")
		if sp < 0 {
			continue
		}
		k, err := strconv.Atoi(rest[:sp])
		if err != nil || k < 0 || k >= len(names) {
			continue
		}
		name := strings.TrimSpace(rest[sp+1:])
		if m := nameRE.FindStringSubmatch(name); m != nil {
			x, _ := strconv.Atoi(m[1])
			y, _ := strconv.Atoi(m[2])
			names[k] = InputName{X: x, Y: y}
		}
	}
}

// build folds gates into a BDD manager, retrying once under a heuristic
// variable order if the manager reports it should reorder. See reorder.go.
//
// tryFold maps declaration-order input k to manager variable perm[k], and
// sampler.Run fills each Sample by manager variable id (it never sees k),
// so whichever perm wins must be composed into Names before it is handed
// back: Doc.Names ends up indexed by manager variable, the same axis as
// Sample, not by AAG declaration order. identityOrder makes this a no-op
// in the common case where no reorder happens.
func build(M, I int, gates []gateLit, inputLits []int, outLit int, names []InputName, opts ...bddkernel.Option) (*Doc, error) {
	perm := identityOrder(I)
	fout, km, err := tryFold(M, I, gates, inputLits, outLit, perm, opts...)
	if err != nil {
		return nil, err
	}
	if km.ShouldReorder() {
		reordered := heuristicOrder(I, gates, inputLits)
		if fout2, km2, err2 := tryFold(M, I, gates, inputLits, outLit, reordered, opts...); err2 == nil && km2.NodeCount() < km.NodeCount() {
			fout, km, perm = fout2, km2, reordered
			km.NoteReorder()
		}
	}
	return &Doc{Manager: km, Output: fout, Names: permuteNames(names, perm)}, nil
}

// permuteNames reindexes names (given in AAG declaration order) to manager
// variable order: the result's slot perm[k] holds names[k], for every
// declaration-order input k. With perm == identityOrder(len(names)) this
// returns an equivalent slice unchanged in content.
func permuteNames(names []InputName, perm []int) []InputName {
	out := make([]InputName, len(names))
	for k, v := range perm {
		out[v] = names[k]
	}
	return out
}

// tryFold builds a fresh manager and folds every gate into it, mapping
// primary input k to the manager variable perm[k] — the indirection that
// lets build retry under a different order without touching the parser.
func tryFold(M, I int, gates []gateLit, inputLits []int, outLit int, perm []int, opts ...bddkernel.Option) (bddkernel.Edge, *bddkernel.Manager, error) {
	km, err := bddkernel.New(I, opts...)
	if err != nil {
		return 0, nil, err
	}

	arr := make([]bddkernel.Edge, M+1)
	// Index 0 is the AAG format's reserved constant pseudo-variable: literal 0
	// (positive polarity) denotes constant false. resolve applies the literal's
	// own tag bit on top, so arr[0] must hold the *positive* edge for false —
	// Zero, not One — or literal 0/1 would evaluate swapped.
	arr[0] = km.Zero()
	for k, lit := range inputLits {
		v, err := km.MkVar(perm[k])
		if err != nil {
			return 0, nil, solgenerr.New("aag.fold", solgenerr.Internal, err)
		}
		arr[lit>>1] = v
	}
	defined := make([]bool, M+1)
	defined[0] = true
	for _, lit := range inputLits {
		defined[lit>>1] = true
	}

	resolve := func(lit int) (bddkernel.Edge, error) {
		idx := lit >> 1
		if idx < 0 || idx >= len(arr) || !defined[idx] {
			return 0, solgenerr.Newf("aag.fold", solgenerr.Unsupported, "literal %d references an undefined node", lit)
		}
		e := arr[idx]
		if lit&1 == 1 {
			e = km.Not(e)
		}
		return e, nil
	}

	for _, g := range gates {
		in1, err := resolve(g.in1)
		if err != nil {
			return 0, nil, err
		}
		in2, err := resolve(g.in2)
		if err != nil {
			return 0, nil, err
		}
		res, err := km.And(in1, in2)
		if err != nil {
			return 0, nil, solgenerr.New("aag.fold", solgenerr.BddOpFailed, err)
		}
		km.Ref(res)
		idx := g.out >> 1
		arr[idx] = res
		defined[idx] = true
	}

	fout, err := resolve(outLit)
	if err != nil {
		return 0, nil, err
	}
	km.Ref(fout)
	// Every gate's result was Ref'd to survive until used by a later gate.
	// fout now holds its own permanent reference, so release the fold-time
	// ones; anything not on a path to fout becomes collectible, anything
	// that is keeps exactly the reference count its remaining structural
	// parents (if any) and fout's root account for.
	for _, g := range gates {
		km.Deref(arr[g.out>>1])
	}
	return fout, km, nil
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
