// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package region reads the sample→region population table that
// seeds the introduction-inference pipeline (the Region Input
// Reader, C1), and writes the per-clade-root region support table
// produced once every region's assignments are known (the Clade
// Region Recorder, C4).
package region

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Samples maps a region name to the sample identifiers assigned to
// it, in first-seen order.
type Samples struct {
	// Order records region names in the order they were first seen
	// in the input, so callers can iterate deterministically instead
	// of over a Go map.
	Order    []string
	byRegion map[string][]string
}

// Regions returns the region names in first-seen order.
func (s *Samples) Regions() []string {
	return s.Order
}

// Of returns the sample identifiers assigned to region, in the order
// they appeared in the input.
func (s *Samples) Of(region string) []string {
	return s.byRegion[region]
}

// Len returns the total number of regions.
func (s *Samples) Len() int {
	return len(s.Order)
}

// ReadPopulationSamples reads a whitespace-split, one- or two-column
// sample→region table: column 1 is the sample identifier, column 2
// (if present) is the region name. A missing second column assigns
// the sample to region "default". A trailing carriage return on
// either field is tolerated (CRLF line endings). A line with more
// than two fields is a malformed-sample-table error.
func ReadPopulationSamples(r io.Reader) (*Samples, error) {
	s := &Samples{byRegion: make(map[string][]string)}

	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return nil, fmt.Errorf("region: line %d: too many columns (got %d, want 1 or 2)", ln, len(fields))
		}

		sample := strings.TrimSuffix(fields[0], "\r")
		reg := "default"
		if len(fields) == 2 {
			reg = strings.TrimSuffix(fields[1], "\r")
		}

		if _, ok := s.byRegion[reg]; !ok {
			s.Order = append(s.Order, reg)
		}
		s.byRegion[reg] = append(s.byRegion[reg], sample)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("region: while reading population samples: %v", err)
	}
	return s, nil
}
