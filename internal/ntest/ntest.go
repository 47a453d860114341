// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ntest provides small, hand-built mutation-annotated trees
// shared by the introtree package tests, the way pruning and
// infer/walk build small timetree.Tree fixtures for their own tests.
package ntest

import (
	"strings"

	"github.com/mat-utils/introtree/mat"
)

// MustLoad parses tsv (the mat text interchange format: one
// node\tparent\tmutations\tclades\tcondensed row per line) and panics
// on error, for use in test table literals.
func MustLoad(tsv string) *mat.Tree {
	t, err := mat.Load(strings.NewReader(tsv))
	if err != nil {
		panic(err)
	}
	return t
}

// Trivial returns spec §8 scenario 1: a two-leaf tree (A,B)R, each
// leaf a single mutation from the root.
func Trivial() *mat.Tree {
	return MustLoad(strings.Join([]string{
		"R\t\t\t\t",
		"A\tR\tA1T\t\t",
		"B\tR\tB1T\t\t",
	}, "\n"))
}

// AllInClade returns spec §8 scenario 2: a clade of three leaves
// (A,B,C) under node N, with N and an outgroup leaf D both children
// of the root, and a clade annotation declared on N.
func AllInClade() *mat.Tree {
	return MustLoad(strings.Join([]string{
		"R\t\t\t\t",
		"N\tR\tN1T\tinner\t",
		"A\tN\tA1T\t\t",
		"B\tN\tB1T\t\t",
		"C\tN\tC1T\t\t",
		"D\tR\tD1T\t\t",
	}, "\n"))
}

// Monophyletic returns spec §8 scenario 3: an eight-leaf star tree
// whose leaves, in depth-first (= insertion) order, are
// I, I, O, I, I, I, O, I.
func Monophyletic() *mat.Tree {
	rows := []string{"R\t\t\t\t"}
	for _, leaf := range []string{"L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8"} {
		rows = append(rows, leaf+"\tR\tx\t\t")
	}
	return MustLoad(strings.Join(rows, "\n"))
}

// MonophyleticLabels gives the sample set that makes Monophyletic's
// leaves IN in the I,I,O,I,I,I,O,I pattern.
func MonophyleticLabels() map[string]bool {
	return map[string]bool{
		"L1": true, "L2": true,
		"L4": true, "L5": true, "L6": true,
		"L8": true,
	}
}

// TwoRegion returns spec §8 scenario 4: R -> W -> {M -> {S, T}, X},
// R -> Y, every edge carrying one mutation. With region1 = {S}, the
// ancestor walk from S reaches confidence 0.5 at M (not below the
// default threshold, so it advances) and drops below it at W, making
// M the introduction node. With region2 = {S, T}, W is IN for region2
// at confidence 4/7, so the origin lookup at W (the ancestor that ends
// region1's walk from S) finds region2.
func TwoRegion() *mat.Tree {
	return MustLoad(strings.Join([]string{
		"R\t\t\t\t",
		"W\tR\tw1\t\t",
		"M\tW\tm1\t\t",
		"S\tM\ts1\t\t",
		"T\tM\tt1\t\t",
		"X\tW\tx1\t\t",
		"Y\tR\ty1\t\t",
	}, "\n"))
}
