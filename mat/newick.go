// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mat

import (
	"fmt"
	"io"
	"math"

	"github.com/js-arias/timetree"
)

// Newick builds a Tree from a newick-formatted reader, using the
// teacher's own js-arias/timetree parser the way cmd/phygeo/tree/add
// reads newick trees into a timetree.Collection. This is an alternate
// tree source for projects that only have a parenthetical tree and no
// UShER MAT binary: since the newick format carries branch lengths,
// not discrete mutation lists, each edge's mutation count is
// recovered by rounding its branch length to the nearest multiple of
// mutationUnit (the branch length, in the newick's own units, that
// corresponds to one mutation). A mutationUnit of 1 treats the
// branch length itself as a mutation count.
//
// Terminal nodes keep the taxon name read from the newick string as
// their identifier; internal nodes are given a synthetic
// "n<node-id>" identifier, since timetree has no label for them.
func Newick(r io.Reader, name string, mutationUnit float64) (*Tree, error) {
	if mutationUnit <= 0 {
		mutationUnit = 1
	}
	coll, err := timetree.Newick(r, name, 0)
	if err != nil {
		return nil, fmt.Errorf("mat: while reading newick tree: %v", err)
	}
	tt := coll.Tree(name)
	if tt == nil {
		return nil, fmt.Errorf("mat: newick reader produced no tree named %q", name)
	}

	t := New()
	ids := tt.Nodes()
	byID := make(map[int]*Node, len(ids))
	for _, id := range ids {
		n := &Node{identifier: identifierFor(tt, id)}
		t.nodes[n.identifier] = n
		byID[id] = n
	}
	for _, id := range ids {
		n := byID[id]
		if tt.IsRoot(id) {
			t.root = n
			continue
		}
		p := byID[tt.Parent(id)]
		n.parent = p
		p.children = append(p.children, n)

		delta := math.Abs(float64(tt.Age(tt.Parent(id)) - tt.Age(id)))
		count := int(math.Round(delta / mutationUnit))
		for i := 0; i < count; i++ {
			n.mutations = append(n.mutations, Mutation(fmt.Sprintf("m%d", i+1)))
		}
	}
	if t.root == nil {
		return nil, fmt.Errorf("mat: newick tree %q has no root", name)
	}
	return t, nil
}

func identifierFor(tt *timetree.Tree, id int) string {
	if tt.IsTerm(id) {
		if tx := tt.Taxon(id); tx != "" {
			return tx
		}
	}
	return fmt.Sprintf("n%d", id)
}
