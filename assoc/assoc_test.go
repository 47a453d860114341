// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package assoc_test

import (
	"math"
	"testing"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/assoc"
	"github.com/mat-utils/introtree/internal/ntest"
)

func TestMC(t *testing.T) {
	tr := ntest.Monophyletic()
	a := assign.Assign(tr, ntest.MonophyleticLabels())

	if g := assoc.MC(tr, a, nil); g != 3 {
		t.Errorf("MC: got %d, want %d", g, 3)
	}
}

func TestAI(t *testing.T) {
	tr := ntest.Monophyletic()
	a := assign.Assign(tr, ntest.MonophyleticLabels())

	want := float32((1 - float64(6)/8) / math.Pow(2, 7))
	if g := assoc.AI(tr, a, nil, assoc.Options{}); math.Abs(float64(g-want)) > 1e-6 {
		t.Errorf("AI: got %v, want %v", g, want)
	}
}

func TestAIIntegerDivision(t *testing.T) {
	tr := ntest.Monophyletic()
	a := assign.Assign(tr, ntest.MonophyleticLabels())

	// max(6,2)/8 truncates to 0 under integer division, so the whole
	// root term becomes (1-0)/2^7 instead of (1-0.75)/2^7.
	want := float32(1 / math.Pow(2, 7))
	g := assoc.AI(tr, a, nil, assoc.Options{IntegerDivision: true})
	if math.Abs(float64(g-want)) > 1e-6 {
		t.Errorf("AI (integer division): got %v, want %v", g, want)
	}
}

func TestAIAllSameSide(t *testing.T) {
	tr := ntest.Trivial()
	a := assign.Assign(tr, map[string]bool{"A": true, "B": true})

	if g := assoc.AI(tr, a, nil, assoc.Options{}); g != 0 {
		t.Errorf("AI (all IN): got %v, want %v", g, float32(0))
	}
}
