// Package pipeline runs the stages of statenet: legs to paths, paths to
// state networks, state networks to a multilayer network, and path
// filtering.
//
// This package is the single place where files, options and the core
// packages meet, so the CLI stays a thin layer of flags and output.
//
// # Stages
//
//  1. Paths: assemble itinerary legs into weighted paths ([Runner.AssemblePaths])
//  2. States: expand paths into a Markov state network ([Runner.ExpandStates])
//  3. Multilayer: merge state networks with a relax rate ([Runner.MergeLayers])
//
// [Runner.FilterPaths] thresholds a path file and optionally splits it into
// training and validation sets.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Inputs: []string{"2011_1_Coupon_paths.net"},
//	    Order:  2,
//	}
//	result, err := runner.ExpandStates(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output, result.Network.NodeCount())
package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/statenet/pkg/errors"
	statio "github.com/matzehuels/statenet/pkg/io"
	"github.com/matzehuels/statenet/pkg/itinerary"
	"github.com/matzehuels/statenet/pkg/paths"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config
// =============================================================================

const (
	// DefaultOrder is the default Markov order.
	DefaultOrder = 1

	// DefaultMinWeight drops paths seen only once when expanding states.
	DefaultMinWeight = 2

	// DefaultRelaxRate is the default multilayer relax rate.
	DefaultRelaxRate = 0.15

	// DefaultSeed is the default random seed for the train/validation split.
	DefaultSeed = paths.DefaultSeed

	// DefaultDataDir is where period path files are looked up and period
	// state networks are written.
	DefaultDataDir = "data"

	// DefaultColumns is the default column scheme for leg records.
	DefaultColumns = itinerary.SchemeAuto

	// ProgressEvery is the number of input rows between progress log lines.
	ProgressEvery = 100000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline stages.
// Zero values of RelaxRate, MinWeight, WeightThreshold and Split are
// meaningful, so callers start from [DefaultOptions] rather than relying
// on SetDefaults for them.
type Options struct {
	// Inputs are the files read by a stage: leg records for paths, path
	// files for states and filter, state networks for multilayer.
	Inputs []string
	// Output is the file written by a stage. Empty picks a name derived
	// from the inputs where the stage supports it.
	Output string

	// Paths options
	Columns       string `validate:"omitempty,oneof=auto prezipped selected custom"`
	CustomColumns itinerary.Columns
	Names         string // Code/Description CSV attached as vertex names

	// States options
	Order     int   `validate:"min=1,max=3"`
	MinWeight int   `validate:"min=0"`
	Year      int   `validate:"omitempty,min=1900,max=9999"`
	Quarters  []int `validate:"dive,min=1,max=4"`
	DataDir   string

	// Multilayer options
	RelaxRate   float64 `validate:"min=0,max=1"`
	LayerNames  []string
	Parallelism int `validate:"min=0"`

	// Intra options
	Years []int `validate:"dive,min=1900,max=9999"`

	// Filter options
	WeightThreshold float64 `validate:"min=0"`
	Split           float64 `validate:"min=0,max=1"`
	Seed            uint64
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	o := Options{
		MinWeight: DefaultMinWeight,
		RelaxRate: DefaultRelaxRate,
	}
	o.SetDefaults()
	return o
}

// SetDefaults fills in fields whose zero value is not meaningful.
func (o *Options) SetDefaults() {
	if o.Columns == "" {
		o.Columns = DefaultColumns
	}
	if o.Order == 0 {
		o.Order = DefaultOrder
	}
	if o.DataDir == "" {
		o.DataDir = DefaultDataDir
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// Validate checks every option against its bounds. Violations are
// reported together as one ConfigError.
func (o *Options) Validate() error {
	return errors.ValidateStruct(o)
}

// ValidateForPaths applies defaults and checks options for path assembly.
func (o *Options) ValidateForPaths() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	if len(o.Inputs) != 1 {
		return errors.Config("paths needs exactly one leg file, got %d", len(o.Inputs))
	}
	return nil
}

// ValidateForStates applies defaults and checks options for state
// expansion. Inputs come either from explicit path files or from a year
// and quarters, never both.
func (o *Options) ValidateForStates() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	periods := o.Year != 0 || len(o.Quarters) > 0
	switch {
	case periods && len(o.Inputs) > 0:
		return errors.Config("give either input files or year and quarters, not both")
	case periods && (o.Year == 0 || len(o.Quarters) == 0):
		return errors.Config("year and at least one quarter are required together")
	case !periods && len(o.Inputs) == 0:
		return errors.Config("states needs input path files or year and quarters")
	}
	return nil
}

// ValidateForMultilayer applies defaults and checks options for merging.
func (o *Options) ValidateForMultilayer() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	if len(o.Inputs) == 0 {
		return errors.Config("multilayer needs at least one state network")
	}
	if len(o.LayerNames) > 0 && len(o.LayerNames) != len(o.Inputs) {
		return errors.Config("got %d layer names for %d inputs", len(o.LayerNames), len(o.Inputs))
	}
	if o.Output == "" {
		return errors.Config("multilayer needs an output file")
	}
	return nil
}

// ValidateForIntra applies defaults and checks options for collecting
// intra-layer links. Layers come either from path files or from every
// year in Years, each split into Quarters (all four when empty).
func (o *Options) ValidateForIntra() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	switch {
	case len(o.Years) > 0 && len(o.Inputs) > 0:
		return errors.Config("give either input files or years, not both")
	case len(o.Years) == 0 && len(o.Inputs) == 0:
		return errors.Config("intra needs input path files or years")
	case len(o.Inputs) > 0 && len(o.Quarters) > 0:
		return errors.Config("quarters only apply to years")
	case len(o.Inputs) > 0 && o.Output == "":
		return errors.Config("intra needs an output file for input files")
	}
	if len(o.LayerNames) > 0 && len(o.LayerNames) != len(o.Inputs) {
		return errors.Config("got %d layer names for %d inputs", len(o.LayerNames), len(o.Inputs))
	}
	return nil
}

// ValidateForFilter applies defaults and checks options for filtering.
func (o *Options) ValidateForFilter() error {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	if len(o.Inputs) == 0 {
		return errors.Config("filter needs at least one path file")
	}
	if o.Output == "" {
		return errors.Config("filter needs an output file")
	}
	return nil
}

// =============================================================================
// File Naming
// =============================================================================

// PeriodFile returns the path file of one quarter in dataDir.
func PeriodFile(dataDir string, year, quarter int) string {
	return filepath.Join(dataDir, fmt.Sprintf("%d_%d_Coupon_paths.net", year, quarter))
}

// PathsOutput returns the default path file name for a leg file.
func PathsOutput(input string) string {
	return statio.Stem(input) + "_paths.net"
}

// StatesOutput returns the default state network name for the options.
// Period runs are named after year and quarters inside DataDir; file runs
// after the first input.
func StatesOutput(o Options) string {
	if o.Year != 0 {
		var qs strings.Builder
		for _, q := range o.Quarters {
			qs.WriteString(strconv.Itoa(q))
		}
		return filepath.Join(o.DataDir, fmt.Sprintf("%d_%s_states_%d.net", o.Year, qs.String(), o.Order))
	}
	return fmt.Sprintf("%s_states_%d.net", statio.Stem(o.Inputs[0]), o.Order)
}

// IntraOutput returns the default intra-layer file for year runs,
// named after the first and last year inside DataDir.
func IntraOutput(o Options) string {
	return filepath.Join(o.DataDir, fmt.Sprintf("multilayer_%d_%d_states.net", o.Years[0], o.Years[len(o.Years)-1]))
}

// PeriodLayer returns the layer name of one quarter, such as "2011_3".
func PeriodLayer(year, quarter int) string {
	return fmt.Sprintf("%d_%d", year, quarter)
}

// SplitOutputs returns the training and validation file names for output.
// "out/paths.net" becomes "out/paths_training.net" and
// "out/paths_validation.net". A trailing .sz is kept on both.
func SplitOutputs(output string) (training, validation string) {
	suffix := ""
	if statio.IsCompressed(output) {
		output, suffix = strings.TrimSuffix(output, statio.CompressedExt), statio.CompressedExt
	}
	name, ext := output, ""
	if i := strings.LastIndexByte(output, '.'); i > strings.LastIndexAny(output, `/\`) {
		name, ext = output[:i], output[i:]
	}
	return name + "_training" + ext + suffix, name + "_validation" + ext + suffix
}

// LayerName returns the name of the layer read from input i.
func (o *Options) LayerName(i int) string {
	if i < len(o.LayerNames) {
		return o.LayerNames[i]
	}
	return strconv.Itoa(i)
}
