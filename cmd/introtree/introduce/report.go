// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package introduce

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotPermutations saves a histogram of the association index's
// permutation null distribution as an SVG to name, the way cmd/pgs's
// cmpcmd builds a bar chart from a slice of sampled values.
func plotPermutations(draws []float64, name string) error {
	p := plot.New()
	p.Title.Text = "association index permutation null distribution"
	p.X.Label.Text = "association index"
	p.Y.Label.Text = "draws"

	h, err := plotter.NewHist(plotter.Values(draws), 20)
	if err != nil {
		return fmt.Errorf("while building histogram: %v", err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
