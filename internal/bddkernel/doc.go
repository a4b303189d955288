// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bddkernel implements a Reduced Ordered Binary Decision Diagram with
complemented edges: a DAG representation of Boolean functions over a fixed
set of variables, in the style of the CUDD/BuDDy family of packages.

Each node is a triple (variable, hi, lo) with a single reserved leaf, ONE; the
constant false is represented as the complement of ONE rather than as a
second allocated node. Edges — not nodes — carry the complement tag, so a
single shared sub-DAG can represent both a function and its negation.

This package is a direct generalization of the "tables" implementation in
github.com/dalzilio/rudd (the default, non-buddy-tagged backend selected
without build tags): a Go-runtime-hashmap unique table over an arena of node
records, a computed cache for the one binary operation we need (AND), and a
mark-sweep garbage collector triggered when the free list runs dry. Two
things differ from that package on purpose: nodes carry an explicit
complement tag (rudd's BDDs do not — Not is a full recursive rebuild there),
and reference counting is the manual ref/deref discipline of CUDD
(Cudd_Ref/Cudd_RecursiveDeref, as used by original_source's
aag2BDD.cpp/solution_gen.cpp) rather than rudd's Go-finalizer-driven scheme,
since the downstream path counter and sampler need to control exactly when a
transient edge's lifetime ends.

Variable order is fixed for the lifetime of a Manager. Dynamic reordering
(AutoReorder/ShouldReorder) is a kernel-level hook only: the kernel
itself never mutates its own live DAG in place to change variable order (the
in-place "ddSwapInPlace" transform that real BDD packages use to do that is
valuable but globally delicate to get right without the ability to run and
observe the result). Instead the kernel reports when more nodes than a
caller-set threshold have been created since the last reorder (or since
construction), and internal/aag — which still holds the
full AAG gate list at that point — acts on it by folding the same gates again
into a fresh Manager under a better variable order. This satisfies the same
contract (externally referenced edges keep denoting the same function; no
reordering occurs once the sampler starts descending the output edge) by
construction instead of by careful in-place surgery.
*/
package bddkernel
