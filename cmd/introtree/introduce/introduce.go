// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package introduce implements the introtree command that runs the
// full introduction-inference pipeline: it loads a mutation-annotated
// tree, assigns every node a per-region confidence, walks each
// region's samples root-ward to find where their lineage entered the
// region, and reports the result as a tab-delimited table.
package introduce

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/js-arias/command"
	"github.com/mat-utils/introtree/assign"
	"github.com/mat-utils/introtree/assoc"
	"github.com/mat-utils/introtree/introduce"
	"github.com/mat-utils/introtree/mat"
	"github.com/mat-utils/introtree/region"
	"golang.org/x/sync/errgroup"
)

var Command = &command.Command{
	Usage: `introduce [--mat <file>] [--newick <file>] [--mutation-unit <value>]
	--samples <file> [--threshold <value>]
	[--additional-info] [--integer-division]
	[--permutations <n>] [--seed <value>]
	[--clade-regions <file>] [--plot-permutations <file>]
	[--workers <n>] [-v|--verbose]
	[-o|--output <file>]`,
	Short: "infer phylogeographic introductions on a mutation-annotated tree",
	Long: `
Command introduce reads a mutation-annotated tree and a sample-to-region
population table, and for every regional sample walks its lineage root-ward
to find the branch on which the lineage entered the region.

The tree is read from the file given with --mat, in introtree's plain text
interchange format. As an alternative, --newick reads a time-calibrated
newick tree instead and recovers discrete mutation counts from branch
lengths, rounding each branch to the nearest multiple of --mutation-unit (a
branch length of 1 by default). Exactly one of --mat or --newick must be
given; either may name "-" to read the tree from standard input.

The flag --samples is required and names the sample-to-region population
table: one sample per line, optionally followed by a region name. Samples
with no region column are assigned to a region named "default".

The flag --threshold sets the confidence boundary C_orig used both to
detect the point along a lineage where its region membership is lost and
to decide in which regions a node counts as IN when origins are reported;
it defaults to 0.5. It does not change the node confidences themselves.

The flag --additional-info adds the monophyletic clade size and
association index of the introduction node's subtree to the output, and
for every region also computes the region's own global monophyletic clade
size and association index, draws a permutation null distribution for the
association index (100 draws by default, or --permutations many); the
region's values and the null's quantiles are printed on standard error
only when --verbose is also given. --seed sets the
pseudo-random generator's seed for those draws (it defaults to 1, for
reproducible output). The flag --integer-division reproduces the original
matUtils association index formula's integer-truncation bug instead of
the published float-division form.

The flag --clade-regions writes a per-clade region-support table to the
given file. The flag --plot-permutations, active only together with
--additional-info, saves a histogram of each region's permutation draws
as an SVG; when more than one region is processed, the region name is
inserted before the file's extension so every region gets its own file.

The flag --workers bounds the number of regions processed concurrently; it
defaults to the number of available CPUs. The flag --verbose, or -v, prints
progress to standard error.

The flag --output, or -o, names the output file for the introduction
table; if absent, it is written to standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var (
	matFile       string
	newickFile    string
	mutationUnit  float64
	samplesFile   string
	threshold     float64
	additionalInf bool
	integerDiv    bool
	permutations  int
	seed          int64
	cladeRegions  string
	plotFile      string
	workers       int
	verbose       bool
	output        string
)

func setFlags(c *command.Command) {
	c.Flags().StringVar(&matFile, "mat", "", "")
	c.Flags().StringVar(&newickFile, "newick", "", "")
	c.Flags().Float64Var(&mutationUnit, "mutation-unit", 1, "")
	c.Flags().StringVar(&samplesFile, "samples", "", "")
	c.Flags().Float64Var(&threshold, "threshold", 0.5, "")
	c.Flags().BoolVar(&additionalInf, "additional-info", false, "")
	c.Flags().BoolVar(&integerDiv, "integer-division", false, "")
	c.Flags().IntVar(&permutations, "permutations", 0, "")
	c.Flags().Int64Var(&seed, "seed", 1, "")
	c.Flags().StringVar(&cladeRegions, "clade-regions", "", "")
	c.Flags().StringVar(&plotFile, "plot-permutations", "", "")
	c.Flags().IntVar(&workers, "workers", 0, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) > 0 {
		return c.UsageError("introduce takes no positional arguments")
	}
	if matFile == "" && newickFile == "" {
		return c.UsageError("expecting a tree, flag --mat or --newick")
	}
	if matFile != "" && newickFile != "" {
		return c.UsageError("flags --mat and --newick are exclusive")
	}
	if samplesFile == "" {
		return c.UsageError("expecting a population sample table, flag --samples")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tree, err := readTree(c)
	if err != nil {
		return err
	}
	tree.UncondenseLeaves()
	verbosef(c, "read tree with %d nodes", tree.Len())

	samples, err := readSamples()
	if err != nil {
		return err
	}
	verbosef(c, "read %d regions from %q", samples.Len(), samplesFile)

	c32 := float32(threshold)
	assignments, err := assignRegions(tree, samples)
	if err != nil {
		return err
	}
	verbosef(c, "assigned node confidences for %d regions", len(assignments))

	var idx *introduce.RegionIndex
	if samples.Len() > 1 {
		idx = introduce.BuildRegionIndex(samples.Regions(), assignments, c32)
	}

	metrics := introduce.MetricsOptions{
		Enabled: additionalInf,
		Assoc:   assoc.Options{IntegerDivision: integerDiv},
	}
	records := introduce.Find(tree, samples, assignments, c32, idx, metrics)
	verbosef(c, "found %d introduction records", len(records))

	if cladeRegions != "" {
		if err := writeCladeRegions(tree, samples, assignments); err != nil {
			return err
		}
		verbosef(c, "wrote clade-region table to %q", cladeRegions)
	}

	if additionalInf {
		if err := runPermutations(c, tree, samples.Regions(), assignments, metrics.Assoc); err != nil {
			return err
		}
	}

	w, closeW, err := outputWriter()
	if err != nil {
		return err
	}
	defer closeW()

	if err := introduce.WriteTSV(w, records, samples.Len() > 1, additionalInf); err != nil {
		return err
	}
	return nil
}

func readTree(c *command.Command) (*mat.Tree, error) {
	if newickFile != "" {
		f, err := openOrStdin(c, newickFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		t, err := mat.Newick(f, "introduced", mutationUnit)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", newickFile, err)
		}
		return t, nil
	}

	f, err := openOrStdin(c, matFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := mat.Load(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", matFile, err)
	}
	return t, nil
}

func readSamples() (*region.Samples, error) {
	f, err := os.Open(samplesFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := region.ReadPopulationSamples(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", samplesFile, err)
	}
	return s, nil
}

// assignRegions computes assign.Assign for every region concurrently,
// bounded by --workers. Each goroutine writes to its own slot of a
// preallocated slice (never to a shared map), so the only
// synchronization needed is errgroup's own completion barrier.
func assignRegions(tree *mat.Tree, samples *region.Samples) (map[string]assign.Assignments, error) {
	names := samples.Regions()
	out := make([]assign.Assignments, len(names))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			set := make(map[string]bool, len(samples.Of(name)))
			for _, s := range samples.Of(name) {
				set[s] = true
			}
			out[i] = assign.Assign(tree, set)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assignments := make(map[string]assign.Assignments, len(names))
	for i, name := range names {
		assignments[name] = out[i]
	}
	return assignments, nil
}

func writeCladeRegions(tree *mat.Tree, samples *region.Samples, assignments map[string]assign.Assignments) error {
	f, err := os.Create(cladeRegions)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := region.WriteCladeRegions(f, tree, samples.Regions(), assignments); err != nil {
		return fmt.Errorf("while writing to %q: %v", cladeRegions, err)
	}
	return nil
}

// defaultPermutations is the original matUtils draw count, used
// whenever --permutations is left at its zero value.
const defaultPermutations = 100

// runPermutations is additional-info's region-level reporting: the
// observed global monophyletic clade size and association index for
// each region's full tree, followed by the quantiles of a permutation
// null distribution for the association index, the way the original
// introduce_main prints "Region largest monophyletic clade: %ld,
// regional association index: %f" followed by the permuted quantiles
// for every region it processes.
func runPermutations(c *command.Command, tree *mat.Tree, regionOrder []string, assignments map[string]assign.Assignments, opts assoc.Options) error {
	n := permutations
	if n <= 0 {
		n = defaultPermutations
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	qs := []float64{0.05, 0.25, 0.5, 0.75, 0.95}

	for _, name := range regionOrder {
		a := assignments[name]
		gmc := assoc.MC(tree, a, nil)
		gai := assoc.AI(tree, a, nil, opts)
		verbosef(c, "region %q: largest monophyletic clade %d, regional association index %.6f", name, gmc, gai)

		draws := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			draws = append(draws, float64(assoc.Permute(rng, tree, a, nil, opts)))
		}
		verbosef(c, "drew %d permutations for region %q", n, name)

		vals := assoc.Quantiles(draws, qs)
		verbosef(c, "region %q: quantiles of the permuted association index null", name)
		for i, q := range qs {
			verbosef(c, "  %.3f\t%.6f", q, vals[i])
		}

		if plotFile != "" {
			dest := plotFileFor(name, len(regionOrder))
			if err := plotPermutations(draws, dest); err != nil {
				return err
			}
			verbosef(c, "wrote permutation histogram for region %q to %q", name, dest)
		}
	}
	return nil
}

// plotFileFor returns --plot-permutations's filename, unchanged when
// there is only one region; otherwise the region name is inserted
// before the extension, so each region's histogram gets its own file.
func plotFileFor(regionName string, regionCount int) string {
	if regionCount <= 1 {
		return plotFile
	}
	ext := filepath.Ext(plotFile)
	base := strings.TrimSuffix(plotFile, ext)
	return base + "-" + regionName + ext
}

func outputWriter() (w *os.File, closeW func(), err error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// openOrStdin opens name, or reads from standard input when name is
// "-".
func openOrStdin(c *command.Command, name string) (*os.File, error) {
	if name == "-" {
		if f, ok := c.Stdin().(*os.File); ok {
			return f, nil
		}
		return os.Stdin, nil
	}
	return os.Open(name)
}

func verbosef(c *command.Command, format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(c.Stderr(), "introduce: "+format+"\n", args...)
}
