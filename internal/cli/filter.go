package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/statenet/pkg/pipeline"
)

// filterFlags holds the command-line flags for the filter command.
type filterFlags struct {
	output      string
	threshold   float64
	split       float64
	seed        uint64
	names       string
	parallelism int
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output path file; with --split, the base of the _training/_validation pair (required)")
	fs.Float64VarP(&f.threshold, "threshold", "t", 0, "drop paths lighter than this")
	fs.Float64VarP(&f.split, "split", "s", 0, "fraction of paths sent to validation (0-1)")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for the split")
	fs.StringVar(&f.names, "names", "", "Code/Description CSV used to name vertices")
	fs.IntVarP(&f.parallelism, "parallelism", "j", 0, "files read concurrently (0 = GOMAXPROCS)")
}

func (f *filterFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("output") {
		opts.Output = f.output
	}
	if fs.Changed("threshold") {
		opts.WeightThreshold = f.threshold
	}
	if fs.Changed("split") {
		opts.Split = f.split
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("names") {
		opts.Names = f.names
	}
	if fs.Changed("parallelism") {
		opts.Parallelism = f.parallelism
	}
}

// filterCommand creates the filter command, which thresholds path files and
// optionally splits them into training and validation sets.
func (c *CLI) filterCommand() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "filter [paths.net...]",
		Short: "Threshold path files and split them into training and validation sets",
		Example: `  statenet filter 2011_1_Coupon_paths.net -t 2 -o filtered.net
  statenet filter 2011_1_Coupon_paths.net -s 0.2 -o 2011_1.net`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &opts)
			opts.Inputs = args
			return c.runFilter(cmd, opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runFilter(cmd *cobra.Command, opts pipeline.Options) error {
	res, err := c.newRunner().FilterPaths(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printSuccess("Filtered %s paths", fmtCount(res.Stats.Read))
	for _, out := range res.Outputs {
		printFile(out)
	}
	stats := []string{fmt.Sprintf("%d below threshold", res.Stats.BelowThreshold)}
	if len(res.Outputs) > 1 {
		stats = append(stats,
			fmt.Sprintf("%d training", res.Stats.Training),
			fmt.Sprintf("%d validation", res.Stats.Validation))
	} else {
		stats = append(stats, fmt.Sprintf("%d kept", res.Stats.Training))
	}
	printStats(stats, res.Duration)
	return nil
}
