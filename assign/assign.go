// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package assign implements the weighted nearest-leaf heuristic that
// assigns every node of a mutation-annotated tree a confidence that it
// belonged to a given geographic region (the State Assigner, C2, of
// the introduction-inference pipeline).
package assign

import (
	"fmt"
	"math"

	"github.com/mat-utils/introtree/mat"
)

// Assignments maps every node identifier in a tree to the region
// confidence computed for it, in [0, 1]. Leaf confidences are
// strictly 0 or 1; internal-node confidences are the heuristic
// estimate of §4.2.
type Assignments map[string]float32

// In reports whether id is IN the region at the given threshold,
// using a strict lower bound: id is IN when its confidence is
// strictly greater than threshold. This is the region-index
// convention (spec §9); the ancestor walk in package introduce uses
// the complementary "< threshold ⇒ OUT" test directly on the
// confidence value instead of calling In.
func (a Assignments) In(id string, threshold float32) bool {
	return a[id] > threshold
}

// Assign computes the region confidence of every node in t, given the
// set of leaf identifiers that are IN the region.
//
// Rule 1 (leaf): confidence is 1 if the leaf is in samples, else 0.
// Rule 2/3 (all-IN / all-OUT descendants): confidence is 1 or 0.
// Rule 4 (mixed): confidence balances the mutation-distance to the
// nearest IN and OUT descendant leaves, weighted by how many leaves
// of each kind exist below the node. Rule 5 gives confidence 1 when
// the IN distance is 0 (no mutations from the first IN leaf up to and
// including the node's own incoming edge), even when the OUT distance
// is 0 as well.
//
// Assign panics if a mixed node's confidence computes to NaN: per
// spec §4.2 and §7, this indicates a mixed node was reached without
// both a nearest-IN and a nearest-OUT distance, an invariant
// violation rather than recoverable user input.
func Assign(t *mat.Tree, samples map[string]bool) Assignments {
	out := make(Assignments, t.Len())
	for _, n := range t.DepthFirstExpansion(nil) {
		out[n.Identifier()] = assignNode(t, samples, n)
	}
	return out
}

func assignNode(t *mat.Tree, samples map[string]bool, n *mat.Node) float32 {
	if n.IsLeaf() {
		if samples[n.Identifier()] {
			return 1
		}
		return 0
	}

	leaves, err := t.GetLeavesIDs(n.Identifier())
	if err != nil {
		panic(fmt.Sprintf("assign: %v", err))
	}
	nIn, nOut := 0, 0
	for _, l := range leaves {
		if samples[l] {
			nIn++
		} else {
			nOut++
		}
	}
	if nOut == 0 {
		return 1
	}
	if nIn == 0 {
		return 0
	}

	dIn, dOut := nearestDistances(t, samples, n)
	if dIn == 0 {
		// Rule 5: an IN distance of 0 wins, even when dOut is also
		// 0.
		return 1
	}
	if dOut == 0 {
		return 0
	}

	vir := float32(dIn) / float32(nIn)
	vor := float32(dOut) / float32(nOut)
	r := vir / vor
	c := 1 / (1 + r)
	if math.IsNaN(float64(c)) {
		panic(fmt.Sprintf("assign: NaN confidence at node %q (dIn=%d, dOut=%d, nIn=%d, nOut=%d)", n.Identifier(), dIn, dOut, nIn, nOut))
	}
	return c
}

// nearestDistances walks the depth-first expansion of n, exactly as
// spec §4.2 prescribes, returning the mutation-distance to the first
// IN and first OUT leaf encountered in that order. The search stops
// as soon as both are known. The distance itself is the sum of edge
// mutation counts along the ancestor chain from the leaf up to, and
// including, n's own incoming edge.
func nearestDistances(t *mat.Tree, samples map[string]bool, n *mat.Node) (dIn, dOut int) {
	haveIn, haveOut := false, false
	for _, d := range t.DepthFirstExpansion(n) {
		if haveIn && haveOut {
			break
		}
		if !d.IsLeaf() {
			continue
		}
		if samples[d.Identifier()] {
			if !haveIn {
				dIn = distanceTo(t, d, n)
				haveIn = true
			}
		} else {
			if !haveOut {
				dOut = distanceTo(t, d, n)
				haveOut = true
			}
		}
	}
	return dIn, dOut
}

// distanceTo sums edge mutation counts from leaf up to, and
// including, stop's own incoming edge.
func distanceTo(t *mat.Tree, leaf, stop *mat.Node) int {
	total := 0
	anc, err := t.RSearch(leaf.Identifier(), true)
	if err != nil {
		panic(fmt.Sprintf("assign: %v", err))
	}
	for _, a := range anc {
		total += len(a.Mutations())
		if a == stop {
			break
		}
	}
	return total
}
