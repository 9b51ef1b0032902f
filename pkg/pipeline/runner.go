package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	statio "github.com/matzehuels/statenet/pkg/io"
	"github.com/matzehuels/statenet/pkg/itinerary"
	"github.com/matzehuels/statenet/pkg/multilayer"
	"github.com/matzehuels/statenet/pkg/paths"
	"github.com/matzehuels/statenet/pkg/states"
)

// Runner executes pipeline stages and writes their outputs.
//
// The Runner is stateless except for the logger - every model is built
// from the options passed to a stage and dropped when the stage returns.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// PathsResult is the outcome of [Runner.AssemblePaths].
type PathsResult struct {
	Output      string
	Paths       *paths.Set
	Legs        int
	Itineraries int
	Names       int
	Duration    time.Duration
}

// StatesResult is the outcome of [Runner.ExpandStates].
type StatesResult struct {
	Output   string
	Inputs   []string
	Network  *states.Network
	Stats    states.Stats
	Duration time.Duration
}

// MultilayerResult is the outcome of [Runner.MergeLayers].
type MultilayerResult struct {
	Output   string
	Network  *states.Network
	Stats    multilayer.Stats
	Duration time.Duration
}

// IntraResult is the outcome of [Runner.IntraLayers].
type IntraResult struct {
	Output   string
	Inputs   []string
	Layers   []string
	Paths    int
	Links    int
	Duration time.Duration
}

// FilterResult is the outcome of [Runner.FilterPaths].
type FilterResult struct {
	Outputs  []string
	Stats    paths.FilterStats
	Duration time.Duration
}

// AssemblePaths reads the leg file in opts.Inputs, groups legs by
// itinerary, validates each itinerary and writes the merged weighted paths.
// The first itinerary with a broken sequence aborts the run with a
// *errors.SequenceError and nothing is written.
func (r *Runner) AssemblePaths(ctx context.Context, opts Options) (result *PathsResult, err error) {
	done := observe(ctx, StagePaths, opts.Inputs)
	defer func() { done(result, err) }()

	if err := opts.ValidateForPaths(); err != nil {
		return nil, err
	}
	start := time.Now()
	input := opts.Inputs[0]
	output := opts.Output
	if output == "" {
		output = PathsOutput(input)
	}

	cols, err := itinerary.ResolveColumns(opts.Columns, input, opts.CustomColumns)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("reading legs", "file", input, "columns", cols.Names())

	f, err := statio.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	asm := itinerary.NewAssembler()
	n, err := statio.ReadLegs(f, cols, func(l itinerary.Leg) error {
		asm.Add(l)
		if asm.Legs()%ProgressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.Logger.Info("reading legs", "legs", asm.Legs(), "itineraries", asm.Itineraries())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	set, err := asm.Paths()
	if err != nil {
		return nil, err
	}

	result = &PathsResult{
		Output:      output,
		Paths:       set,
		Legs:        n,
		Itineraries: asm.Itineraries(),
	}
	if opts.Names != "" {
		if result.Names, err = r.readNames(opts.Names, set); err != nil {
			return nil, err
		}
	}

	if err := statio.ExportPaths(set, output); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)

	r.Logger.Info("assembled paths",
		"legs", result.Legs,
		"itineraries", result.Itineraries,
		"paths", set.Len(),
		"duration", result.Duration)
	return result, nil
}

func (r *Runner) readNames(path string, set *paths.Set) (int, error) {
	f, err := statio.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := statio.ReadNames(f, set)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	r.Logger.Debug("read vertex names", "file", path, "names", n)
	return n, nil
}

// ExpandStates expands path files into one Markov state network of
// opts.Order and writes it. Inputs are opts.Inputs, or the quarter files
// of opts.Year in opts.DataDir. Every file is thresholded on its own
// before its paths are aggregated into the shared network.
func (r *Runner) ExpandStates(ctx context.Context, opts Options) (result *StatesResult, err error) {
	done := observe(ctx, StageStates, opts.Inputs)
	defer func() { done(result, err) }()

	if err := opts.ValidateForStates(); err != nil {
		return nil, err
	}
	start := time.Now()

	inputs := opts.Inputs
	if opts.Year != 0 {
		inputs = make([]string, len(opts.Quarters))
		for i, q := range opts.Quarters {
			inputs[i] = PeriodFile(opts.DataDir, opts.Year, q)
		}
	}
	output := opts.Output
	if output == "" {
		output = StatesOutput(opts)
	}

	exp, err := states.NewExpander(opts.Order, opts.MinWeight)
	if err != nil {
		return nil, err
	}

	sets, err := loadAll(ctx, inputs, opts.Parallelism, r.importPaths)
	if err != nil {
		return nil, err
	}
	for i, set := range sets {
		before := exp.Stats()
		for _, p := range set.Paths() {
			exp.Add(p)
			if n := exp.Stats().Paths; n%ProgressEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				r.Logger.Info("expanding paths", "paths", n, "states", exp.Network().NodeCount())
			}
		}
		after := exp.Stats()
		r.Logger.Debug("expanded path file",
			"file", inputs[i],
			"paths", after.Paths-before.Paths,
			"skipped_weight", after.SkippedWeight-before.SkippedWeight,
			"skipped_length", after.SkippedLength-before.SkippedLength)
		sets[i] = nil
	}

	net := exp.Network()
	if err := statio.ExportStates(net, output); err != nil {
		return nil, err
	}

	result = &StatesResult{
		Output:   output,
		Inputs:   inputs,
		Network:  net,
		Stats:    exp.Stats(),
		Duration: time.Since(start),
	}
	r.Logger.Info("expanded states",
		"order", opts.Order,
		"paths", result.Stats.Paths,
		"nodes", net.NodeCount(),
		"links", net.LinkCount(),
		"skipped_weight", result.Stats.SkippedWeight,
		"skipped_length", result.Stats.SkippedLength,
		"duration", result.Duration)
	return result, nil
}

func (r *Runner) importPaths(_ context.Context, path string) (*paths.Set, error) {
	r.Logger.Debug("reading paths", "file", path)
	return statio.ImportPaths(path)
}

// MergeLayers reads one state network per input, loading up to
// opts.Parallelism files at once, merges them with opts.RelaxRate and
// writes the multilayer network. Layer names come from opts.LayerNames
// or default to the input position.
func (r *Runner) MergeLayers(ctx context.Context, opts Options) (result *MultilayerResult, err error) {
	done := observe(ctx, StageMultilayer, opts.Inputs)
	defer func() { done(result, err) }()

	if err := opts.ValidateForMultilayer(); err != nil {
		return nil, err
	}
	start := time.Now()

	nets, err := loadAll(ctx, opts.Inputs, opts.Parallelism, func(_ context.Context, path string) (*states.Network, error) {
		r.Logger.Debug("reading states", "file", path)
		return statio.ImportStates(path)
	})
	if err != nil {
		return nil, err
	}

	layers := make([]multilayer.Layer, len(nets))
	for i, net := range nets {
		layers[i] = multilayer.Layer{Name: opts.LayerName(i), Network: net}
		r.Logger.Debug("loaded layer",
			"layer", layers[i].Name,
			"file", opts.Inputs[i],
			"nodes", net.NodeCount(),
			"links", net.LinkCount())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged, stats, err := multilayer.Merge(layers, opts.RelaxRate)
	if err != nil {
		return nil, err
	}
	if err := statio.ExportMultilayer(merged, opts.Output); err != nil {
		return nil, err
	}

	result = &MultilayerResult{
		Output:   opts.Output,
		Network:  merged,
		Stats:    stats,
		Duration: time.Since(start),
	}
	r.Logger.Info("merged layers",
		"layers", stats.Layers,
		"relax_rate", opts.RelaxRate,
		"nodes", stats.Nodes,
		"links", merged.LinkCount(),
		"intra_edges", stats.IntraEdges,
		"inter_edges", stats.InterEdges,
		"duration", result.Duration)
	return result, nil
}

// IntraLayers collects the first-order links of every layer without
// coupling the layers and writes them as one intra-layer file. Each input
// path file is one layer; for year runs every quarter of every year in
// opts.Years is one layer named by [PeriodLayer].
func (r *Runner) IntraLayers(ctx context.Context, opts Options) (result *IntraResult, err error) {
	done := observe(ctx, StageIntra, opts.Inputs)
	defer func() { done(result, err) }()

	if err := opts.ValidateForIntra(); err != nil {
		return nil, err
	}
	start := time.Now()

	inputs, names := opts.Inputs, make([]string, len(opts.Inputs))
	for i := range inputs {
		names[i] = opts.LayerName(i)
	}
	output := opts.Output
	if len(opts.Years) > 0 {
		quarters := opts.Quarters
		if len(quarters) == 0 {
			quarters = []int{1, 2, 3, 4}
		}
		inputs, names = nil, nil
		for _, y := range opts.Years {
			for _, q := range quarters {
				inputs = append(inputs, PeriodFile(opts.DataDir, y, q))
				names = append(names, PeriodLayer(y, q))
			}
		}
		if output == "" {
			output = IntraOutput(opts)
		}
	}

	sets, err := loadAll(ctx, inputs, opts.Parallelism, r.importPaths)
	if err != nil {
		return nil, err
	}

	intra := multilayer.NewIntra()
	npaths := 0
	for i, set := range sets {
		if _, err := intra.AddLayer(names[i], set); err != nil {
			return nil, err
		}
		npaths += set.Len()
		r.Logger.Debug("collected layer", "layer", names[i], "file", inputs[i], "paths", set.Len())
		sets[i] = nil
	}
	if err := statio.ExportIntra(intra, output); err != nil {
		return nil, err
	}

	result = &IntraResult{
		Output:   output,
		Inputs:   inputs,
		Layers:   intra.Layers(),
		Paths:    npaths,
		Links:    len(intra.Links()),
		Duration: time.Since(start),
	}
	r.Logger.Info("collected intra-layer links",
		"layers", len(result.Layers),
		"paths", result.Paths,
		"links", result.Links,
		"duration", result.Duration)
	return result, nil
}

// FilterPaths drops paths below opts.WeightThreshold from every input and
// writes the rest to opts.Output. With opts.Split > 0 the survivors are
// split at random into training and validation files named by
// [SplitOutputs]. Vertex names from the inputs and from opts.Names are
// carried over.
func (r *Runner) FilterPaths(ctx context.Context, opts Options) (result *FilterResult, err error) {
	done := observe(ctx, StageFilter, opts.Inputs)
	defer func() { done(result, err) }()

	if err := opts.ValidateForFilter(); err != nil {
		return nil, err
	}
	start := time.Now()

	sets, err := loadAll(ctx, opts.Inputs, opts.Parallelism, r.importPaths)
	if err != nil {
		return nil, err
	}

	names := paths.NewSet()
	for _, set := range sets {
		names.MergeNames(set)
	}
	if opts.Names != "" {
		if _, err := r.readNames(opts.Names, names); err != nil {
			return nil, err
		}
	}

	splitter := paths.NewSplitter(paths.FilterOptions{
		WeightThreshold: opts.WeightThreshold,
		Split:           opts.Split,
		Seed:            opts.Seed,
	}, names)
	for _, set := range sets {
		splitter.AddSet(set)
	}

	var outputs []string
	if opts.Split > 0 {
		training, validation := SplitOutputs(opts.Output)
		if err := statio.ExportPaths(splitter.Training(), training); err != nil {
			return nil, err
		}
		if err := statio.ExportPaths(splitter.Validation(), validation); err != nil {
			return nil, err
		}
		outputs = []string{training, validation}
	} else {
		if err := statio.ExportPaths(splitter.Training(), opts.Output); err != nil {
			return nil, err
		}
		outputs = []string{opts.Output}
	}

	result = &FilterResult{
		Outputs:  outputs,
		Stats:    splitter.Stats(),
		Duration: time.Since(start),
	}
	r.Logger.Info("filtered paths",
		"read", result.Stats.Read,
		"below_threshold", result.Stats.BelowThreshold,
		"training", result.Stats.Training,
		"validation", result.Stats.Validation,
		"duration", result.Duration)
	return result, nil
}
