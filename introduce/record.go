// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package introduce implements the root-ward ancestor walk that
// locates, for every regional sample, the branch on which its
// lineage was introduced into its region (the Introduction Finder,
// C5), the cross-region lookup performed at that branch (the Origin
// Attributor, C6), and the record type and TSV writer (C7) that
// report the result.
package introduce

// A Record is one detected introduction: a regional sample and the
// ancestral branch on which its lineage entered the region.
type Record struct {
	Sample string
	Region string // only meaningful in multi-region mode

	IntroNodeID      string
	IntroConfidence  float32
	ParentConfidence float32
	Distance         int

	// Origins and OriginsConfidence are set only in multi-region
	// mode, for a non-root introduction node: the regions in which
	// the parent of IntroNodeID (the ancestor whose confidence ended
	// the walk, so never Region itself) is IN, and their
	// confidences, in parallel order. "indeterminate"/0 when that
	// parent is IN in no region.
	Origins           []string
	OriginsConfidence []float32

	Clades       []string
	MutationPath string

	// MC and AI are set only when additional-info metrics were
	// requested.
	HasMetrics bool
	MC         int
	AI         float32
}
