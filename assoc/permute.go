// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package assoc

import (
	"math/rand/v2"
	"sort"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/mat"
	"gonum.org/v1/gonum/stat"
)

// Permute computes one draw from the null distribution of AI: the
// same reverse breadth-first computation as AI, but with each direct
// leaf child's membership replaced by a Bernoulli draw whose success
// rate equals the observed IN-leaf fraction of the traversed subtree,
// rather than its true assignment. This is the permutation mode of
// spec §4.3.
//
// The original matUtils seeds a process-wide PRNG from wall-clock
// time inside the association-index routine itself; rng is passed in
// explicitly instead, so permutation draws are reproducible and safe
// to run from multiple goroutines with per-worker generators (spec
// §9's "pass an explicit PRNG by reference" note).
//
// Permute never labels nodes; it is only ever used to build a null
// distribution for AI, one draw per call.
func Permute(rng *rand.Rand, t *mat.Tree, a assign.Assignments, subroot *mat.Node, opts Options) float32 {
	leafCount, sampleCount := 0, 0
	for _, n := range t.DepthFirstExpansion(subroot) {
		if !n.IsLeaf() {
			continue
		}
		leafCount++
		if a[n.Identifier()] > 0.5 {
			sampleCount++
		}
	}
	if leafCount == 0 {
		return 0
	}
	p := float64(sampleCount) / float64(leafCount)

	draw := func(string) bool {
		return rng.Float64() < p
	}
	return computeAI(t, a, subroot, opts, draw)
}

// Quantiles returns the empirical quantiles of draws at each
// probability in qs (e.g. 0.05, 0.25, 0.5, 0.75, 0.95), backed by
// gonum's statistics package rather than a hand-rolled percentile
// function. draws is not modified; Quantiles sorts a copy.
func Quantiles(draws []float64, qs []float64) []float64 {
	sorted := make([]float64, len(draws))
	copy(sorted, draws)
	sort.Float64s(sorted)

	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = stat.Quantile(q, stat.Empirical, sorted, nil)
	}
	return out
}
