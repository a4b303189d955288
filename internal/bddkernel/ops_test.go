// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import "testing"

func TestAndCommutesAndIdentities(t *testing.T) {
	m, err := New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	x1, _ := m.MkVar(1)

	if got, _ := m.And(x0, m.One()); got != x0 {
		t.Errorf("x0 AND 1: expected x0, got %v", got)
	}
	if got, _ := m.And(x0, m.Zero()); got != m.Zero() {
		t.Errorf("x0 AND 0: expected 0, got %v", got)
	}
	ab, _ := m.And(x0, x1)
	ba, _ := m.And(x1, x0)
	if ab != ba {
		t.Errorf("AND not commutative: x0&x1=%v, x1&x0=%v", ab, ba)
	}
	if got, _ := m.And(x0, x0); got != x0 {
		t.Errorf("x0 AND x0: expected x0, got %v", got)
	}
	if got, _ := m.And(x0, m.Not(x0)); got != m.Zero() {
		t.Errorf("x0 AND !x0: expected 0, got %v", got)
	}
}

func TestHiNeverComplemented(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	x1, _ := m.MkVar(1)
	f, err := m.And(m.Not(x0), x1)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	if f.IsConstant() {
		t.Fatalf("!x0 AND x1 collapsed to a constant unexpectedly")
	}
	// The invariant is about the node's stored hi edge, so inspect it through
	// the regular edge: Hi on a complemented edge XORs the tag in by design.
	if m.Hi(m.Regular(f)).IsComplemented() {
		t.Errorf("canonicalization invariant broken: hi(%v) carries a complement tag", m.Regular(f))
	}
}

func TestNotIsInvolution(t *testing.T) {
	m, err := New(1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	if got := m.Not(m.Not(x0)); got != x0 {
		t.Errorf("!!x0: expected x0, got %v", got)
	}
}

func TestRefDerefReclaimsNodes(t *testing.T) {
	m, err := New(2, Minfreenodes(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x0, _ := m.MkVar(0)
	x1, _ := m.MkVar(1)
	f, err := m.And(x0, x1)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	m.Ref(f)
	before := m.NodeCount()
	m.Deref(f)
	after := m.NodeCount()
	if after >= before {
		t.Errorf("expected Deref to reclaim the AND node immediately: before=%d after=%d", before, after)
	}
}

func TestVarOutOfRange(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.MkVar(5); err == nil {
		t.Errorf("MkVar(5) with varnum=2: expected an error, got nil")
	}
}
