// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package region

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/mat"
)

// WriteCladeRegions writes one row per clade root per non-empty
// clade annotation, in tree depth-first order: the clade label
// followed by that node's confidence in every region, in the order
// regionNames gives them. Every column, including the clade label,
// is followed by a tab, with no trailing column separator removed
// before the newline — this is a bit-exact match of the original
// matUtils record_clade_regions output, not an encoding/csv table.
//
// assignments must hold one Assignments map per name in regionNames.
func WriteCladeRegions(w io.Writer, t *mat.Tree, regionNames []string, assignments map[string]assign.Assignments) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("clade\t"); err != nil {
		return fmt.Errorf("region: while writing clade-region header: %v", err)
	}
	for _, r := range regionNames {
		if _, err := fmt.Fprintf(bw, "%s\t", r); err != nil {
			return fmt.Errorf("region: while writing clade-region header: %v", err)
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return fmt.Errorf("region: while writing clade-region header: %v", err)
	}

	for _, n := range t.DepthFirstExpansion(nil) {
		for _, ca := range n.CladeAnnotations() {
			if ca == "" {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%s\t", ca); err != nil {
				return fmt.Errorf("region: while writing clade %q: %v", ca, err)
			}
			for _, r := range regionNames {
				conf := assignments[r][n.Identifier()]
				if _, err := fmt.Fprintf(bw, "%v\t", conf); err != nil {
					return fmt.Errorf("region: while writing clade %q: %v", ca, err)
				}
			}
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("region: while writing clade %q: %v", ca, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("region: while writing clade-region table: %v", err)
	}
	return nil
}
