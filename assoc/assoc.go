// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package assoc implements the trait–phylogeny association metrics
// used to quantify how strongly a region's membership correlates
// with tree shape: the Association Index (AI) of Wang et al. 2005
// and the Monophyletic Clade size (MC) of Salemi et al. 2005, plus a
// permutation null for AI (the Association Metrics component, C3, of
// the introduction-inference pipeline).
package assoc

import (
	"fmt"
	"math"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/mat"
)

// Options configures the association-index formula; its one setting
// selects the division mode left ambiguous by the original matUtils
// code.
type Options struct {
	// IntegerDivision reproduces the original matUtils bug of
	// computing max(in,out)/(in+out) with integer division, which
	// truncates to 0 whenever the node is not purely IN or purely
	// OUT. The published Wang et al. formula uses float division;
	// this defaults to false, which follows the publication rather
	// than the bug.
	IntegerDivision bool
}

// AI computes the Association Index over the subtree rooted at
// subroot (the whole tree if subroot is nil):
//
//	AI = Σ_internal (1 − max(in, out)/(in+out)) / 2^(in+out−1)
//
// where in/out are the counts of IN/OUT leaves under that internal
// node. Smaller values indicate a stronger correlation between region
// membership and tree shape.
//
// AI is computed over a reverse breadth-first traversal so every
// child is processed before its parent; each internal node's (in,
// out) pair is cached for the duration of the call and discarded on
// return. A leaf's membership is IN when its assignment confidence is
// strictly greater than 0.5 (spec §9's normalized boundary for AI/MC,
// used in place of the original's inconsistent >=/> mix).
func AI(t *mat.Tree, a assign.Assignments, subroot *mat.Node, opts Options) float32 {
	return computeAI(t, a, subroot, opts, nil)
}

// computeAI is shared by AI and Permute; draw is nil for the
// unpermuted (real) computation and non-nil to draw Bernoulli leaf
// memberships instead of consulting a.
func computeAI(t *mat.Tree, a assign.Assignments, subroot *mat.Node, opts Options, draw func(leafID string) bool) float32 {
	bfs := t.BreadthFirstExpansion(subroot)
	if len(bfs) == 0 {
		return 0
	}
	leafTest := draw
	if leafTest == nil {
		leafTest = func(id string) bool { return a[id] > 0.5 }
	}

	type counts struct{ in, out int }
	cache := make(map[string]counts, len(bfs))

	var total float32
	for i := len(bfs) - 1; i >= 0; i-- {
		n := bfs[i]
		if n.IsLeaf() {
			continue
		}
		var in, out int
		for _, c := range n.Children() {
			if c.IsLeaf() {
				if leafTest(c.Identifier()) {
					in++
				} else {
					out++
				}
				continue
			}
			v, ok := cache[c.Identifier()]
			if !ok {
				panic(fmt.Sprintf("assoc: AI encountered unreachable internal child %q of %q", c.Identifier(), n.Identifier()))
			}
			in += v.in
			out += v.out
		}
		cache[n.Identifier()] = counts{in: in, out: out}

		leaves := in + out
		var frac float32
		if opts.IntegerDivision {
			frac = float32(max(in, out) / leaves)
		} else {
			frac = float32(max(in, out)) / float32(leaves)
		}
		total += (1 - frac) / float32(math.Pow(2, float64(leaves-1)))
	}
	return total
}

// MC returns the Monophyletic Clade size: the length of the longest
// contiguous run of IN leaves, in depth-first leaf order, within the
// subtree rooted at subroot (the whole tree if subroot is nil). A
// leaf is IN when its assignment confidence is strictly greater than
// 0.5.
func MC(t *mat.Tree, a assign.Assignments, subroot *mat.Node) int {
	id := ""
	if subroot != nil {
		id = subroot.Identifier()
	} else if r := t.Root(); r != nil {
		id = r.Identifier()
	} else {
		return 0
	}
	leaves, err := t.GetLeavesIDs(id)
	if err != nil {
		panic(fmt.Sprintf("assoc: %v", err))
	}

	best, cur := 0, 0
	for _, l := range leaves {
		if a[l] > 0.5 {
			cur++
			continue
		}
		if cur > best {
			best = cur
		}
		cur = 0
	}
	if cur > best {
		best = cur
	}
	return best
}
