// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package introduce

import (
	"fmt"
	"strings"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/assoc"
	"github.com/mat-utils/introtree/mat"
	"github.com/mat-utils/introtree/region"
)

// MetricsOptions turns on the additional-info AI/MC columns and
// configures the association-index formula used to compute them.
type MetricsOptions struct {
	Enabled bool
	Assoc   assoc.Options
}

// Find walks ancestors of every sample in every region, in region
// order and then sample order, emitting one Record per sample at the
// branch where its lineage drops below threshold. idx is nil in
// single-region mode (Origins/OriginsConfidence are left unset on
// every record); otherwise it is consulted, at each detected
// introduction, for the parent of the introduction node (the Origin
// Attributor, C6).
func Find(t *mat.Tree, samples *region.Samples, assignments map[string]assign.Assignments, threshold float32, idx *RegionIndex, metrics MetricsOptions) []Record {
	multi := samples.Len() > 1

	var out []Record
	for _, r := range samples.Regions() {
		a := assignments[r]
		mc := make(map[string]int)
		ai := make(map[string]float32)

		for _, s := range samples.Of(r) {
			anc, err := t.RSearch(s, true)
			if err != nil {
				// The sample never appears in the tree's leaf DFS and
				// contributes nothing to any assignment; spec §7
				// requires it be silently ignored here too.
				continue
			}
			out = append(out, findOne(r, s, anc, a, threshold, multi, idx, metrics, mc, ai, t))
		}
	}
	return out
}

func findOne(regionName, sample string, anc []*mat.Node, a assign.Assignments, threshold float32, multi bool, idx *RegionIndex, metrics MetricsOptions, mcCache map[string]int, aiCache map[string]float32, t *mat.Tree) Record {
	lastEncountered := sample
	var lastNode *mat.Node
	lastAncState := float32(1)
	traversed := 0

	for _, node := range anc {
		var ancState float32
		if node.IsRoot() {
			// The root's effective state is forced to 0 regardless of
			// its assignment, and the root becomes the candidate
			// introduction node before the threshold test runs, so the
			// walk always terminates here at the latest (spec §4.5's
			// Root rule). last_node and last_anc_state are left as
			// whatever the last IN ancestor below the root set them
			// to, so metrics still describe that ancestor's subtree.
			lastEncountered = node.Identifier()
			ancState = 0
		} else {
			ancState = a[node.Identifier()]
		}

		if ancState < threshold {
			rec := Record{
				Sample:           sample,
				Region:           regionName,
				IntroNodeID:      lastEncountered,
				IntroConfidence:  lastAncState,
				ParentConfidence: ancState,
				Distance:         traversed,
			}
			rec.Clades, rec.MutationPath = ancestorTrace(t, lastEncountered)

			if multi && !node.IsRoot() {
				rec.Origins, rec.OriginsConfidence = originsAt(idx, node.Identifier())
			}

			if metrics.Enabled {
				rec.HasMetrics = true
				rec.MC = cachedMC(t, a, lastNode, mcCache)
				rec.AI = cachedAI(t, a, lastNode, metrics.Assoc, aiCache)
			}
			return rec
		}

		lastEncountered = node.Identifier()
		lastNode = node
		lastAncState = ancState
		traversed += len(node.Mutations())
	}

	// RSearch always yields the root, and the root's forced anc_state
	// of 0 terminates the loop above for any threshold > 0; this is
	// only reached for a non-positive threshold, which can never see
	// an OUT ancestor. Fall back to the root itself as the
	// introduction point.
	return Record{
		Sample:           sample,
		Region:           regionName,
		IntroNodeID:      lastEncountered,
		IntroConfidence:  lastAncState,
		ParentConfidence: 0,
		Distance:         traversed,
	}
}

// originsAt is the Origin Attributor (C6): it enumerates the regions
// (other than the sample's own) in which the OUT ancestor that
// terminated the walk is also IN. Keying the lookup on that ancestor,
// rather than on the introduction node itself, is what guarantees the
// sample's own region never appears among its origins: the ancestor's
// own-region confidence is below threshold by construction, so it can
// never also satisfy that same region's IN test in idx.
func originsAt(idx *RegionIndex, nodeID string) ([]string, []float32) {
	regions, confidences, ok := idx.At(nodeID)
	if !ok {
		return []string{"indeterminate"}, []float32{0}
	}
	return regions, confidences
}

// ancestorTrace walks from the introduction node to the root,
// collecting every non-empty clade annotation and every edge's
// mutation list along the way.
func ancestorTrace(t *mat.Tree, introNodeID string) (clades []string, mutationPath string) {
	anc, err := t.RSearch(introNodeID, true)
	if err != nil {
		panic(fmt.Sprintf("introduce: %v", err))
	}

	var sb strings.Builder
	for _, a := range anc {
		clades = append(clades, a.CladeAnnotations()...)

		muts := make([]string, len(a.Mutations()))
		for i, m := range a.Mutations() {
			muts[i] = m.String()
		}
		sb.WriteString(strings.Join(muts, ","))
		sb.WriteString("<")
	}
	clades = nonEmpty(clades)
	return clades, sb.String()
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// subtreeKey identifies the metrics cache entry by the subtree
// actually handed to assoc.MC/assoc.AI (introNode), not by the
// reported introduction node id: the Root rule can report "root" as
// IntroNodeID for many samples whose last IN ancestor (introNode)
// differs from one sample to the next, and those must not share a
// cache slot.
func subtreeKey(introNode *mat.Node) string {
	if introNode == nil {
		return ""
	}
	return introNode.Identifier()
}

func cachedMC(t *mat.Tree, a assign.Assignments, introNode *mat.Node, cache map[string]int) int {
	key := subtreeKey(introNode)
	if v, ok := cache[key]; ok {
		return v
	}
	v := assoc.MC(t, a, introNode)
	cache[key] = v
	return v
}

func cachedAI(t *mat.Tree, a assign.Assignments, introNode *mat.Node, opts assoc.Options, cache map[string]float32) float32 {
	key := subtreeKey(introNode)
	if v, ok := cache[key]; ok {
		return v
	}
	v := assoc.AI(t, a, introNode, opts)
	cache[key] = v
	return v
}
