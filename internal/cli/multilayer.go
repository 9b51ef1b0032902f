package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/statenet/pkg/pipeline"
)

// multilayerFlags holds the command-line flags for the multilayer command.
type multilayerFlags struct {
	output      string
	relaxRate   float64
	layers      []string
	parallelism int
}

func (f *multilayerFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output multilayer network (required)")
	fs.Float64VarP(&f.relaxRate, "relax-rate", "r", pipeline.DefaultRelaxRate, "probability of relaxing to another layer (0-1)")
	fs.StringSliceVar(&f.layers, "layers", nil, "layer names, one per input (default 0,1,2,...)")
	fs.IntVarP(&f.parallelism, "parallelism", "j", 0, "files read concurrently (0 = GOMAXPROCS)")
}

func (f *multilayerFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("output") {
		opts.Output = f.output
	}
	if fs.Changed("relax-rate") {
		opts.RelaxRate = f.relaxRate
	}
	if fs.Changed("layers") {
		opts.LayerNames = f.layers
	}
	if fs.Changed("parallelism") {
		opts.Parallelism = f.parallelism
	}
}

// multilayerCommand creates the multilayer command, which merges state
// networks into one multilayer network.
func (c *CLI) multilayerCommand() *cobra.Command {
	var flags multilayerFlags

	cmd := &cobra.Command{
		Use:   "multilayer [states.net...]",
		Short: "Merge per-period state networks into a multilayer network",
		Long: `Treat every input state network as one layer. A walker at a state follows
its own layer's transitions with probability 1 - r. With probability r it
follows the transitions of the same state pooled over all layers, weighted
by their share of the state's total outgoing weight across layers.

r = 0 keeps the layers disconnected.`,
		Example: `  statenet multilayer q1_states_2.net q2_states_2.net -r 0.15 --layers q1,q2 -o multi.net`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &opts)
			opts.Inputs = args
			return c.runMultilayer(cmd, opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runMultilayer(cmd *cobra.Command, opts pipeline.Options) error {
	res, err := c.newRunner().MergeLayers(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printSuccess("Merged %d layers into %s states", res.Stats.Layers, fmtCount(res.Stats.Nodes))
	printFile(res.Output)
	printStats([]string{
		fmt.Sprintf("%d intra-layer links", res.Stats.IntraEdges),
		fmt.Sprintf("%d inter-layer links", res.Stats.InterEdges),
		fmt.Sprintf("%d dangling states", res.Stats.Skipped),
	}, res.Duration)
	printNextStep("Draw it", fmt.Sprintf("%s render %s --layers", appName, res.Output))
	return nil
}
