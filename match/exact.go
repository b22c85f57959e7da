// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package match decides whether a method in one module corresponds to a
// method in another, surviving renames and body rewrites.  It offers exact
// opcode-sequence equality, a fuzzy block aligner tolerant of inserted,
// removed, duplicated or reordered instruction blocks, and a lazy finder
// that applies either mode across a type or a whole module tree.
//
// Only opcodes are compared; operands never participate.  The engine reads
// the metadata model and keeps no state beyond a single call, so concurrent
// searches over distinct model snapshots are safe.
package match

import (
	"expvar"

	"github.com/n3t3h/ClarifierEx/metadata"
)

// exactComparisons counts invocations of Exact across all searches.
var exactComparisons = expvar.NewInt("exact_comparisons_total")

// Exact reports whether two method bodies carry identical opcode sequences.
// Bodiless methods never match, and neither do bodies of different length.
func Exact(a, b *metadata.MethodBody) bool {
	exactComparisons.Add(1)
	if a == nil || b == nil {
		return false
	}
	if len(a.Instrs) != len(b.Instrs) {
		return false
	}
	for i := range a.Instrs {
		if a.Instrs[i].Opcode != b.Instrs[i].Opcode {
			return false
		}
	}
	return true
}
