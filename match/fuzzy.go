// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

package match

import (
	"expvar"

	"github.com/golang/glog"

	"github.com/n3t3h/ClarifierEx/metadata"
)

// CommitThresholdRatio is the minimum length of an aligned run, as a
// fraction of the reference body length, before the run is credited to
// coverage.  It filters accidental opcode coincidences (two adjacent nops
// agreeing by chance) out of the coverage score and is independent of the
// caller's match threshold.
const CommitThresholdRatio = 0.15

var (
	fuzzyComparisons  = expvar.NewInt("fuzzy_comparisons_total")
	fuzzyRunsCredited = expvar.NewInt("fuzzy_runs_credited_total")
)

// run is one aligned stretch of opcode-equal instructions, anchored at
// refStart/candStart and extending for length positions on both sides.
type run struct {
	refStart  int
	candStart int
	length    int
}

// Fuzzy reports whether candidate's coverage of reference strictly exceeds
// threshold.  The comparison is asymmetric: the commit threshold and the
// coverage denominator both derive from reference, so swapping the
// arguments changes the result.
func Fuzzy(reference, candidate *metadata.MethodBody, threshold float64) bool {
	return FuzzyCoverage(reference, candidate) > threshold
}

// FuzzyCoverage aligns candidate against reference and returns the fraction
// of reference instructions credited to some sufficiently long opcode-equal
// run, in [0,1].  Runs are anchored at positions sharing an opcode and
// extended while opcodes agree; all runs tying the maximum length for an
// anchor are credited, so blocks duplicated verbatim in the candidate count
// rather than being penalized for ambiguity.
//
// A nil or empty reference yields 0: the ratio is undefined there, and a
// conservative non-match beats guessing.  A nil candidate also yields 0.
func FuzzyCoverage(reference, candidate *metadata.MethodBody) float64 {
	fuzzyComparisons.Add(1)
	if reference.Len() == 0 || candidate.Len() == 0 {
		return 0
	}
	ref := reference.Instrs
	cand := candidate.Instrs

	// Opcode → ordered candidate positions.  Built per call and discarded;
	// the model itself is never touched.
	index := make(map[metadata.Opcode][]int, len(cand))
	for j, instr := range cand {
		index[instr.Opcode] = append(index[instr.Opcode], j)
	}

	commitThreshold := float64(len(ref)) * CommitThresholdRatio
	refCovered := make([]bool, len(ref))
	candCovered := make([]bool, len(cand))

	for i := range ref {
		if refCovered[i] {
			continue
		}
		positions := index[ref[i].Opcode]
		if len(positions) == 0 {
			continue
		}

		// Longest run anchored at i, keeping every candidate anchor that
		// ties it.  A strictly longer run replaces the collection.
		best := 0
		var runs []run
		for _, j := range positions {
			length := runLength(ref, cand, i, j)
			if length > best {
				best = length
				runs = runs[:0]
			}
			if length == best && length > 0 {
				runs = append(runs, run{refStart: i, candStart: j, length: length})
			}
		}

		if float64(best) > commitThreshold {
			for _, r := range runs {
				for k := 0; k < r.length; k++ {
					refCovered[r.refStart+k] = true
					candCovered[r.candStart+k] = true
				}
			}
			fuzzyRunsCredited.Add(int64(len(runs)))
			glog.V(2).Infof("credited %d run(s) of length %d at reference position %d", len(runs), best, i)
		}
	}

	covered := 0
	for _, c := range refCovered {
		if c {
			covered++
		}
	}
	if glog.V(2) {
		candCount := 0
		for _, c := range candCovered {
			if c {
				candCount++
			}
		}
		glog.V(2).Infof("coverage: reference %d/%d, candidate %d/%d", covered, len(ref), candCount, len(cand))
	}
	return float64(covered) / float64(len(ref))
}

// runLength counts the opcode-equal stretch starting at ref[i] and cand[j],
// anchor included.
func runLength(ref, cand []metadata.Instr, i, j int) int {
	n := 0
	for i+n < len(ref) && j+n < len(cand) && ref[i+n].Opcode == cand[j+n].Opcode {
		n++
	}
	return n
}
