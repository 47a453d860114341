// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package introduce

import "github.com/mat-utils/introtree/assign"

// RegionIndex records, for every node that is IN at least one
// region, the regions it is IN and their confidences, in parallel
// order. It is built once after every region's assignments are known
// and consulted read-only by the Origin Attributor (C6).
type RegionIndex struct {
	regions     map[string][]string
	confidences map[string][]float32
}

// BuildRegionIndex scans every region's assignments, in the order
// regionOrder gives them, and records every node whose confidence
// exceeds threshold. The strict ">" bound matches spec §9's region-
// index convention, distinct from the ancestor walk's "< threshold"
// OUT test.
func BuildRegionIndex(regionOrder []string, assignments map[string]assign.Assignments, threshold float32) *RegionIndex {
	idx := &RegionIndex{
		regions:     make(map[string][]string),
		confidences: make(map[string][]float32),
	}
	for _, r := range regionOrder {
		a := assignments[r]
		for id, conf := range a {
			if conf > threshold {
				idx.regions[id] = append(idx.regions[id], r)
				idx.confidences[id] = append(idx.confidences[id], conf)
			}
		}
	}
	return idx
}

// At returns the regions in which id is IN, and their confidences in
// parallel order, and whether id has any such region.
func (idx *RegionIndex) At(id string) ([]string, []float32, bool) {
	r, ok := idx.regions[id]
	return r, idx.confidences[id], ok
}
