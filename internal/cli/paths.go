package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/itinerary"
	"github.com/matzehuels/statenet/pkg/pipeline"
)

// pathsFlags holds the command-line flags for the paths command.
type pathsFlags struct {
	output      string // output path file (default <input-stem>_paths.net)
	columns     string // column scheme: auto, prezipped, selected, custom
	columnNames string // comma-separated custom column names
	names       string // Code/Description lookup CSV
}

func (f *pathsFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output path file (default <input>_paths.net)")
	fs.StringVar(&f.columns, "columns", "", "column scheme: auto (default), prezipped, selected, custom")
	fs.StringVar(&f.columnNames, "column-names", "", "custom columns as itin,mkt,seq,origin,dest (implies --columns custom)")
	fs.StringVar(&f.names, "names", "", "Code/Description CSV used to name vertices")
}

// apply copies changed flags onto opts.
func (f *pathsFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("output") {
		opts.Output = f.output
	}
	if fs.Changed("columns") {
		opts.Columns = f.columns
	}
	if fs.Changed("column-names") {
		cols, err := parseColumnNames(f.columnNames)
		if err != nil {
			return err
		}
		opts.Columns = itinerary.SchemeCustom
		opts.CustomColumns = cols
	}
	if fs.Changed("names") {
		opts.Names = f.names
	}
	return nil
}

// pathsCommand creates the paths command, which assembles leg records into
// weighted paths.
func (c *CLI) pathsCommand() *cobra.Command {
	var flags pathsFlags

	cmd := &cobra.Command{
		Use:   "paths [legs.csv]",
		Short: "Assemble itinerary legs into weighted paths",
		Long: `Read a delimited leg file, chain the legs of every itinerary into a path of
airports and merge identical paths into one weighted line.

The first itinerary whose sequence numbers or airports do not chain aborts
the run and no output is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			opts.Inputs = args
			return c.runPaths(cmd, opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runPaths(cmd *cobra.Command, opts pipeline.Options) error {
	res, err := c.newRunner().AssemblePaths(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printSuccess("Assembled %s paths from %s itineraries", fmtCount(res.Paths.Len()), fmtCount(res.Itineraries))
	printFile(res.Output)
	stats := []string{
		fmt.Sprintf("%d legs", res.Legs),
		fmt.Sprintf("weight %d", res.Paths.TotalWeight()),
	}
	if res.Names > 0 {
		stats = append(stats, fmt.Sprintf("%d names", res.Names))
	}
	printStats(stats, res.Duration)
	printNextStep("Expand into a state network", fmt.Sprintf("%s states %s", appName, res.Output))
	return nil
}

// parseColumnNames parses "itin,mkt,seq,origin,dest" into custom columns.
func parseColumnNames(s string) (itinerary.Columns, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return itinerary.Columns{}, errors.Config("--column-names needs 5 comma-separated names, got %d", len(parts))
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return itinerary.Columns{}, errors.Config("--column-names: name %d is empty", i+1)
		}
	}
	return itinerary.Columns{
		ItinID: parts[0],
		MktID:  parts[1],
		SeqNum: parts[2],
		Origin: parts[3],
		Dest:   parts[4],
	}, nil
}
