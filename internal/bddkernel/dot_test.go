// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintDotWritesComplementStyle(t *testing.T) {
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
	m.Ref(f)

	dir := t.TempDir()
	path := filepath.Join(dir, "bdd.dot")
	if err := m.PrintDot(path, f); err != nil {
		t.Fatalf("PrintDot: %v", err)
	}
	var buf strings.Builder
	m.writeDot(&buf, f)
	if !strings.Contains(buf.String(), "digraph G {") {
		t.Errorf("PrintDot output missing digraph header")
	}
	if !strings.Contains(buf.String(), "dashed") {
		t.Errorf("PrintDot output missing a dashed (complemented) edge for !x0 AND x1")
	}
}
