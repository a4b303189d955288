// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package solver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeAAG(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.aag")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func outputPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "out.json")
}

type doc struct {
	AssignmentList [][]struct {
		Value string `json:"value"`
	} `json:"assignment_list"`
}

func readDoc(t *testing.T, path string) doc {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var d doc
	require.NoError(t, json.Unmarshal(data, &d))
	return d
}

// TestRunTrivialOrProducesAllThreeSolutions is E1 from spec.md §8.
func TestRunTrivialOrProducesAllThreeSolutions(t *testing.T) {
	src := "aag 3 2 0 1 1\n2\n4\n7\n6 3 5\ni0 var_0[0]\ni1 var_0[1]\n"
	out := outputPath(t)
	err := Run(Config{AAGPath: writeAAG(t, src), Seed: 1, NumSolutions: 3, OutputPath: out})
	require.NoError(t, err)

	d := readDoc(t, out)
	require.Len(t, d.AssignmentList, 3)
	got := map[string]bool{}
	for _, row := range d.AssignmentList {
		require.Len(t, row, 1)
		got[row[0].Value] = true
	}
	require.Equal(t, map[string]bool{"1": true, "2": true, "3": true}, got)
}

// TestRunAndChainAlwaysYieldsTheUniqueSolution is E2.
func TestRunAndChainAlwaysYieldsTheUniqueSolution(t *testing.T) {
	src := "aag 7 4 0 1 3\n2\n4\n6\n8\n14\n10 2 4\n12 6 8\n14 10 12\n" +
		"i0 var_0[0]\ni1 var_0[1]\ni2 var_0[2]\ni3 var_0[3]\n"
	out := outputPath(t)
	err := Run(Config{AAGPath: writeAAG(t, src), Seed: 7, NumSolutions: 5, OutputPath: out})
	require.NoError(t, err)

	d := readDoc(t, out)
	require.Len(t, d.AssignmentList, 1)
	require.Equal(t, "f", d.AssignmentList[0][0].Value)
}

// TestRunContradictionExitsCleanlyWithEmptyList is E4.
func TestRunContradictionExitsCleanlyWithEmptyList(t *testing.T) {
	src := "aag 2 1 0 1 1\n2\n4\n4 2 3\ni0 var_0[0]\n"
	out := outputPath(t)
	err := Run(Config{AAGPath: writeAAG(t, src), Seed: 1, NumSolutions: 3, OutputPath: out})
	require.NoError(t, err, "SamplerGaveUp is a warning, Run must still exit cleanly")

	d := readDoc(t, out)
	require.Empty(t, d.AssignmentList)
}

// TestRunZeroRequestedSolutionsProducesEmptyList is the K=0 boundary case.
func TestRunZeroRequestedSolutionsProducesEmptyList(t *testing.T) {
	src := "aag 1 1 0 1 0\n2\n2\ni0 var_0[0]\n"
	out := outputPath(t)
	err := Run(Config{AAGPath: writeAAG(t, src), Seed: 1, NumSolutions: 0, OutputPath: out})
	require.NoError(t, err)

	d := readDoc(t, out)
	require.Empty(t, d.AssignmentList)
}

// TestRunIsDeterministicAcrossRuns is E6: two runs of the same
// (aag, seed, K) must produce byte-identical files.
func TestRunIsDeterministicAcrossRuns(t *testing.T) {
	src := "aag 3 2 0 1 1\n2\n4\n7\n6 3 5\ni0 var_0[0]\ni1 var_0[1]\n"
	path := writeAAG(t, src)

	out1 := outputPath(t)
	out2 := outputPath(t)
	require.NoError(t, Run(Config{AAGPath: path, Seed: 42, NumSolutions: 3, OutputPath: out1}))
	require.NoError(t, Run(Config{AAGPath: path, Seed: 42, NumSolutions: 3, OutputPath: out2}))

	b1, err := os.ReadFile(out1)
	require.NoError(t, err)
	b2, err := os.ReadFile(out2)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

// TestRunRejectsUnreadableAAG surfaces the loader's IoError as a hard
// failure rather than a warning.
func TestRunRejectsUnreadableAAG(t *testing.T) {
	out := outputPath(t)
	err := Run(Config{AAGPath: filepath.Join(t.TempDir(), "missing.aag"), Seed: 1, NumSolutions: 1, OutputPath: out})
	require.Error(t, err)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "no output file should be written on a fatal error")
}

// TestRunWritesDotDumpWhenRequested exercises the optional debug artefact
// wiring (spec.md §6).
func TestRunWritesDotDumpWhenRequested(t *testing.T) {
	src := "aag 3 2 0 1 1\n2\n4\n7\n6 3 5\ni0 var_0[0]\ni1 var_0[1]\n"
	out := outputPath(t)
	dot := filepath.Join(t.TempDir(), "bdd.dot")
	err := Run(Config{AAGPath: writeAAG(t, src), Seed: 1, NumSolutions: 1, OutputPath: out, DotPath: dot})
	require.NoError(t, err)

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	require.Contains(t, string(data), "digraph G {")
}
