// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package region_test

import (
	"strings"
	"testing"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/internal/ntest"
	"github.com/mat-utils/introtree/region"
)

func TestWriteCladeRegions(t *testing.T) {
	tr := ntest.AllInClade()
	r1 := assign.Assign(tr, map[string]bool{"A": true, "B": true, "C": true})
	r2 := assign.Assign(tr, map[string]bool{"D": true})

	var buf strings.Builder
	err := region.WriteCladeRegions(&buf, tr, []string{"R1", "R2"}, map[string]assign.Assignments{
		"R1": r1,
		"R2": r2,
	})
	if err != nil {
		t.Fatalf("WriteCladeRegions: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("WriteCladeRegions: got %d lines, want %d\noutput:\n%s", len(lines), 2, out)
	}
	if lines[0] != "clade\tR1\tR2\t" {
		t.Errorf("header: got %q, want %q", lines[0], "clade\tR1\tR2\t")
	}
	if !strings.HasPrefix(lines[1], "inner\t1\t0\t") {
		t.Errorf("clade row: got %q, want prefix %q", lines[1], "inner\t1\t0\t")
	}
}

func TestWriteCladeRegionsNoClades(t *testing.T) {
	tr := ntest.Trivial()
	a := assign.Assign(tr, map[string]bool{"A": true})

	var buf strings.Builder
	err := region.WriteCladeRegions(&buf, tr, []string{"R1"}, map[string]assign.Assignments{"R1": a})
	if err != nil {
		t.Fatalf("WriteCladeRegions: %v", err)
	}
	if g := strings.TrimRight(buf.String(), "\n"); g != "clade\tR1\t" {
		t.Errorf("WriteCladeRegions with no clade annotations: got %q, want %q", g, "clade\tR1\t")
	}
}
