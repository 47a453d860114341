// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Load reads a mutation-annotated tree from its text interchange
// format: one row per node, tab-separated, with fields
//
//	node	parent	mutations	clade_annotations	condensed_members
//
// parent is empty for the root. mutations, clade_annotations and
// condensed_members are comma-joined lists, empty when absent. Rows
// may appear in any order; Load links parents to children in a second
// pass, so a child may be read before its parent.
func Load(r io.Reader) (*Tree, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	type row struct {
		id, parent string
		muts       []string
		clades     []string
		condensed  []string
	}
	var rows []row
	for {
		rec, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ln, _ := tab.FieldPos(0)
			return nil, fmt.Errorf("mat: on row %d: %v", ln, err)
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("mat: expecting at least 3 columns, got %d", len(rec))
		}
		id := strings.TrimSpace(rec[0])
		if id == "" {
			continue
		}
		rw := row{id: id, parent: strings.TrimSpace(rec[1]), muts: splitNonEmpty(rec[2])}
		if len(rec) > 3 {
			rw.clades = splitNonEmpty(rec[3])
		}
		if len(rec) > 4 {
			rw.condensed = splitNonEmpty(rec[4])
		}
		rows = append(rows, rw)
	}

	t := New()
	for _, rw := range rows {
		if _, ok := t.nodes[rw.id]; ok {
			return nil, fmt.Errorf("mat: duplicate node %q", rw.id)
		}
		n := &Node{identifier: rw.id, clades: rw.clades, condensed: rw.condensed}
		for _, m := range rw.muts {
			n.mutations = append(n.mutations, Mutation(m))
		}
		t.nodes[rw.id] = n
	}
	var root *Node
	for _, rw := range rows {
		n := t.nodes[rw.id]
		if rw.parent == "" {
			if root != nil {
				return nil, fmt.Errorf("mat: multiple roots (%q and %q)", root.identifier, n.identifier)
			}
			root = n
			continue
		}
		p, ok := t.nodes[rw.parent]
		if !ok {
			return nil, fmt.Errorf("mat: node %q: unknown parent %q", rw.id, rw.parent)
		}
		n.parent = p
		p.children = append(p.children, n)
	}
	if root == nil {
		return nil, errors.New("mat: no root node (a row with an empty parent field)")
	}
	t.root = root
	return t, nil
}

// Write saves the tree in the same text interchange format Load
// reads, one row per node in depth-first order.
func (t *Tree) Write(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	for _, n := range t.DepthFirstExpansion(nil) {
		parent := ""
		if n.parent != nil {
			parent = n.parent.identifier
		}
		muts := make([]string, len(n.mutations))
		for i, m := range n.mutations {
			muts[i] = string(m)
		}
		row := []string{
			n.identifier,
			parent,
			strings.Join(muts, ","),
			strings.Join(n.clades, ","),
			strings.Join(n.condensed, ","),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("mat: when writing node %q: %v", n.identifier, err)
		}
	}
	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("mat: when writing tree: %v", err)
	}
	return nil
}

func splitNonEmpty(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
