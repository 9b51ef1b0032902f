package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/statenet/pkg/pipeline"
)

// statesFlags holds the command-line flags for the states command.
type statesFlags struct {
	output      string
	order       int
	minWeight   int
	year        int
	quarters    []int
	dataDir     string
	parallelism int
}

func (f *statesFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output state network (default derived from the inputs)")
	fs.IntVarP(&f.order, "order", "k", pipeline.DefaultOrder, "Markov order (1-3)")
	fs.IntVar(&f.minWeight, "min-weight", pipeline.DefaultMinWeight, "skip paths lighter than this")
	fs.IntVar(&f.year, "year", 0, "period year, reads <data-dir>/<year>_<quarter>_Coupon_paths.net")
	fs.IntSliceVarP(&f.quarters, "quarter", "q", nil, "period quarter(s) 1-4 (repeatable)")
	fs.StringVar(&f.dataDir, "data-dir", pipeline.DefaultDataDir, "directory of period path files")
	fs.IntVarP(&f.parallelism, "parallelism", "j", 0, "files read concurrently (0 = GOMAXPROCS)")
}

func (f *statesFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("output") {
		opts.Output = f.output
	}
	if fs.Changed("order") {
		opts.Order = f.order
	}
	if fs.Changed("min-weight") {
		opts.MinWeight = f.minWeight
	}
	if fs.Changed("year") {
		opts.Year = f.year
	}
	if fs.Changed("quarter") {
		opts.Quarters = f.quarters
	}
	if fs.Changed("data-dir") {
		opts.DataDir = f.dataDir
	}
	if fs.Changed("parallelism") {
		opts.Parallelism = f.parallelism
	}
}

// statesCommand creates the states command, which expands weighted paths
// into a higher-order state network.
func (c *CLI) statesCommand() *cobra.Command {
	var flags statesFlags

	cmd := &cobra.Command{
		Use:   "states [paths.net...]",
		Short: "Expand weighted paths into an order-k state network",
		Long: `Slide a window of k airports over every path and accumulate the visited
states and their transitions into one state network.

Inputs are either path files given as arguments or a period selected with
--year and --quarter. Paths lighter than --min-weight or with k or fewer
transitions are skipped and counted.`,
		Example: `  statenet states 2011_1_Coupon_paths.net -k 2
  statenet states --year 2011 -q 1 -q 2 --data-dir data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &opts)
			opts.Inputs = args
			return c.runStates(cmd, opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runStates(cmd *cobra.Command, opts pipeline.Options) error {
	res, err := c.newRunner().ExpandStates(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printSuccess("Expanded %s paths into %s states", fmtCount(res.Stats.Accepted), fmtCount(res.Network.NodeCount()))
	printFile(res.Output)
	printStats([]string{
		fmt.Sprintf("%d links", res.Network.LinkCount()),
		fmt.Sprintf("%d skipped by weight", res.Stats.SkippedWeight),
		fmt.Sprintf("%d skipped by length", res.Stats.SkippedLength),
	}, res.Duration)
	if res.Stats.Accepted == 0 {
		printWarning("No path passed the thresholds; the network is empty")
	}
	return nil
}
