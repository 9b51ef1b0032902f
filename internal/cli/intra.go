package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/statenet/pkg/pipeline"
)

// intraFlags holds the command-line flags for the intra command.
type intraFlags struct {
	output      string
	years       []int
	quarters    []int
	layers      []string
	dataDir     string
	parallelism int
}

func (f *intraFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (default <data-dir>/multilayer_<first>_<last>_states.net for --years)")
	fs.IntSliceVar(&f.years, "years", nil, "period years, one layer per quarter of each (repeatable)")
	fs.IntSliceVarP(&f.quarters, "quarter", "q", nil, "quarters read for each year (default 1-4)")
	fs.StringSliceVar(&f.layers, "layers", nil, "layer names, one per input file (default 0,1,2,...)")
	fs.StringVar(&f.dataDir, "data-dir", pipeline.DefaultDataDir, "directory of period path files")
	fs.IntVarP(&f.parallelism, "parallelism", "j", 0, "files read concurrently (0 = GOMAXPROCS)")
}

func (f *intraFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("output") {
		opts.Output = f.output
	}
	if fs.Changed("years") {
		opts.Years = f.years
	}
	if fs.Changed("quarter") {
		opts.Quarters = f.quarters
	}
	if fs.Changed("layers") {
		opts.LayerNames = f.layers
	}
	if fs.Changed("data-dir") {
		opts.DataDir = f.dataDir
	}
	if fs.Changed("parallelism") {
		opts.Parallelism = f.parallelism
	}
}

// intraCommand creates the intra command, which lists the first-order links
// of every layer without coupling the layers.
func (c *CLI) intraCommand() *cobra.Command {
	var flags intraFlags

	cmd := &cobra.Command{
		Use:   "intra [paths.net...]",
		Short: "Collect first-order links per layer from path files",
		Long: `Count the first-order transitions of every layer straight from path files
and write them as one list of "layer source target weight" lines. Layers are
not coupled, so the file suits tools that apply their own relax rate.

Each input path file is one layer. With --years every quarter of every year
is one layer, read from <data-dir>/<year>_<quarter>_Coupon_paths.net.`,
		Example: `  statenet intra --years 2011 --years 2012 --data-dir data
  statenet intra q1_paths.net q2_paths.net --layers q1,q2 -o intra.net`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &opts)
			opts.Inputs = args
			return c.runIntra(cmd, opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runIntra(cmd *cobra.Command, opts pipeline.Options) error {
	res, err := c.newRunner().IntraLayers(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printSuccess("Collected %s links from %d layers", fmtCount(res.Links), len(res.Layers))
	printFile(res.Output)
	printStats([]string{
		fmt.Sprintf("%s paths", fmtCount(res.Paths)),
	}, res.Duration)
	return nil
}
