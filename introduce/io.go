// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package introduce

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteTSV writes the introduction TSV (C7): a header line followed
// by one row per record, in the order records were discovered.
// multi selects the multi-region header/columns (region, origins,
// origins_confidence); withMetrics adds the monophyl_size and
// assoc_index columns. Numerics are printed with the formatter's
// default floating-point form, matching spec §6 rather than a fixed
// precision.
func WriteTSV(w io.Writer, records []Record, multi, withMetrics bool) error {
	bw := bufio.NewWriter(w)

	header := []string{"sample", "introduction_node", "intro_confidence", "parent_confidence", "distance"}
	if multi {
		header = append(header, "region", "origins", "origins_confidence")
	}
	header = append(header, "clades", "mutation_path")
	if withMetrics {
		header = append(header, "monophyl_size", "assoc_index")
	}
	if _, err := fmt.Fprintln(bw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("introduce: while writing header: %v", err)
	}

	for _, r := range records {
		if err := writeRow(bw, r, multi, withMetrics); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("introduce: while writing introduction table: %v", err)
	}
	return nil
}

func writeRow(bw *bufio.Writer, r Record, multi, withMetrics bool) error {
	clades := "none"
	if len(r.Clades) > 0 {
		clades = strings.Join(r.Clades, ",")
	}

	cols := []string{
		r.Sample,
		r.IntroNodeID,
		fmt.Sprint(r.IntroConfidence),
		fmt.Sprint(r.ParentConfidence),
		fmt.Sprint(r.Distance),
	}
	if multi {
		origins := "indeterminate"
		if len(r.Origins) > 0 {
			origins = strings.Join(r.Origins, ",")
		}
		var cons strings.Builder
		if len(r.OriginsConfidence) == 0 {
			cons.WriteString("0")
		} else {
			for _, c := range r.OriginsConfidence {
				fmt.Fprintf(&cons, "%v,", c)
			}
		}
		cols = append(cols, r.Region, origins, cons.String())
	}
	cols = append(cols, clades, r.MutationPath)
	if withMetrics {
		cols = append(cols, fmt.Sprint(r.MC), fmt.Sprint(r.AI))
	}

	if _, err := fmt.Fprintln(bw, strings.Join(cols, "\t")); err != nil {
		return fmt.Errorf("introduce: while writing row for sample %q: %v", r.Sample, err)
	}
	return nil
}
