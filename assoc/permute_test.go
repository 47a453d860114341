// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package assoc_test

import (
	"math/rand/v2"
	"testing"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/assoc"
	"github.com/mat-utils/introtree/internal/ntest"
)

func TestPermuteRange(t *testing.T) {
	tr := ntest.Monophyletic()
	a := assign.Assign(tr, ntest.MonophyleticLabels())
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 50; i++ {
		g := assoc.Permute(rng, tr, a, nil, assoc.Options{})
		if g < 0 || g > 1 {
			t.Fatalf("Permute draw %d: got %v, want a value in [0, 1]", i, g)
		}
	}
}

func TestPermuteLeafSubroot(t *testing.T) {
	tr := ntest.Trivial()
	a := assign.Assign(tr, map[string]bool{"A": true})
	leaf, _ := tr.Node("A")
	rng := rand.New(rand.NewPCG(1, 2))

	// A leaf subroot has no internal node to accumulate a term over,
	// so the draw is always 0 regardless of the leaf's own state.
	if g := assoc.Permute(rng, tr, a, leaf, assoc.Options{}); g != 0 {
		t.Errorf("Permute on a leaf subroot: got %v, want %v", g, float32(0))
	}
}

func TestQuantiles(t *testing.T) {
	draws := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	got := assoc.Quantiles(draws, []float64{0, 0.5, 1})
	if len(got) != 3 {
		t.Fatalf("Quantiles: got %d values, want %d", len(got), 3)
	}
	if got[0] != 0.1 {
		t.Errorf("Quantiles[0]: got %v, want %v", got[0], 0.1)
	}
	if got[2] != 1.0 {
		t.Errorf("Quantiles[2]: got %v, want %v", got[2], 1.0)
	}
}
