// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mat_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mat-utils/introtree/mat"
)

func trivialTree(t testing.TB) *mat.Tree {
	t.Helper()
	tr, err := mat.Load(strings.NewReader(strings.Join([]string{
		"R\t\t\t\t",
		"N\tR\tn1\tinner\t",
		"A\tN\tA1T,A2C\t\t",
		"B\tN\tB1T\t\t",
		"D\tR\tD1T\t\t",
	}, "\n")))
	if err != nil {
		t.Fatalf("unable to load tree: %v", err)
	}
	return tr
}

func TestLoad(t *testing.T) {
	tr := trivialTree(t)

	if g := tr.Len(); g != 5 {
		t.Errorf("Len: got %d, want %d", g, 5)
	}
	root := tr.Root()
	if root == nil || root.Identifier() != "R" {
		t.Fatalf("Root: got %v, want node %q", root, "R")
	}
	if !root.IsRoot() {
		t.Errorf("root.IsRoot: got false, want true")
	}

	n, ok := tr.Node("N")
	if !ok {
		t.Fatalf("Node(%q): not found", "N")
	}
	if g := n.CladeAnnotations(); !reflect.DeepEqual(g, []string{"inner"}) {
		t.Errorf("N.CladeAnnotations: got %v, want %v", g, []string{"inner"})
	}

	a, ok := tr.Node("A")
	if !ok {
		t.Fatalf("Node(%q): not found", "A")
	}
	wantMuts := []mat.Mutation{"A1T", "A2C"}
	if g := a.Mutations(); !reflect.DeepEqual(g, wantMuts) {
		t.Errorf("A.Mutations: got %v, want %v", g, wantMuts)
	}
	if a.IsLeaf() != true {
		t.Errorf("A.IsLeaf: got false, want true")
	}
	if a.Parent() != n {
		t.Errorf("A.Parent: got %v, want %v", a.Parent(), n)
	}
}

func TestLoadNoRoot(t *testing.T) {
	_, err := mat.Load(strings.NewReader("A\tB\t\t\t"))
	if err == nil {
		t.Fatalf("Load: expecting error on a tree with no root row")
	}
}

func TestLoadUnknownParent(t *testing.T) {
	_, err := mat.Load(strings.NewReader(strings.Join([]string{
		"R\t\t\t\t",
		"A\tGHOST\t\t\t",
	}, "\n")))
	if err == nil {
		t.Fatalf("Load: expecting error on an unknown parent reference")
	}
}

func TestDepthFirstExpansion(t *testing.T) {
	tr := trivialTree(t)

	var ids []string
	for _, n := range tr.DepthFirstExpansion(nil) {
		ids = append(ids, n.Identifier())
	}
	want := []string{"R", "N", "A", "B", "D"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("DepthFirstExpansion: got %v, want %v", ids, want)
	}
}

func TestBreadthFirstExpansion(t *testing.T) {
	tr := trivialTree(t)

	var ids []string
	for _, n := range tr.BreadthFirstExpansion(nil) {
		ids = append(ids, n.Identifier())
	}
	want := []string{"R", "N", "D", "A", "B"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("BreadthFirstExpansion: got %v, want %v", ids, want)
	}
}

func TestGetLeavesIDs(t *testing.T) {
	tr := trivialTree(t)

	got, err := tr.GetLeavesIDs("N")
	if err != nil {
		t.Fatalf("GetLeavesIDs: %v", err)
	}
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetLeavesIDs(N): got %v, want %v", got, want)
	}

	if _, err := tr.GetLeavesIDs("ghost"); err == nil {
		t.Errorf("GetLeavesIDs(ghost): expecting error, got none")
	}
}

func TestRSearch(t *testing.T) {
	tr := trivialTree(t)

	anc, err := tr.RSearch("A", true)
	if err != nil {
		t.Fatalf("RSearch: %v", err)
	}
	var ids []string
	for _, n := range anc {
		ids = append(ids, n.Identifier())
	}
	want := []string{"A", "N", "R"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("RSearch(A, true): got %v, want %v", ids, want)
	}

	anc, err = tr.RSearch("A", false)
	if err != nil {
		t.Fatalf("RSearch: %v", err)
	}
	ids = nil
	for _, n := range anc {
		ids = append(ids, n.Identifier())
	}
	want = []string{"N", "R"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("RSearch(A, false): got %v, want %v", ids, want)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tr := trivialTree(t)

	var buf strings.Builder
	if err := tr.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rt, err := mat.Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Load(Write output): %v", err)
	}
	if g := rt.Len(); g != tr.Len() {
		t.Errorf("round trip Len: got %d, want %d", g, tr.Len())
	}
	a, ok := rt.Node("A")
	if !ok {
		t.Fatalf("round trip: node %q not found", "A")
	}
	wantMuts := []mat.Mutation{"A1T", "A2C"}
	if g := a.Mutations(); !reflect.DeepEqual(g, wantMuts) {
		t.Errorf("round trip A.Mutations: got %v, want %v", g, wantMuts)
	}
}

func TestUncondenseLeaves(t *testing.T) {
	tr, err := mat.Load(strings.NewReader(strings.Join([]string{
		"R\t\t\t\t",
		"G\tR\tg1\tclade\tX,Y,Z",
	}, "\n")))
	if err != nil {
		t.Fatalf("unable to load tree: %v", err)
	}
	tr.UncondenseLeaves()

	for _, id := range []string{"X", "Y", "Z"} {
		n, ok := tr.Node(id)
		if !ok {
			t.Fatalf("UncondenseLeaves: expanded leaf %q not found", id)
		}
		if !n.IsLeaf() {
			t.Errorf("%s.IsLeaf: got false, want true", id)
		}
		if g := n.Mutations(); !reflect.DeepEqual(g, []mat.Mutation{"g1"}) {
			t.Errorf("%s.Mutations: got %v, want %v", id, g, []mat.Mutation{"g1"})
		}
	}
	if _, ok := tr.Node("G"); ok {
		t.Errorf("UncondenseLeaves: group node %q should no longer be addressable", "G")
	}
	x, _ := tr.Node("X")
	if g := x.CladeAnnotations(); !reflect.DeepEqual(g, []string{"clade"}) {
		t.Errorf("X.CladeAnnotations: got %v, want %v", g, []string{"clade"})
	}
	y, _ := tr.Node("Y")
	if g := y.CladeAnnotations(); len(g) != 0 {
		t.Errorf("Y.CladeAnnotations: got %v, want none", g)
	}
}
