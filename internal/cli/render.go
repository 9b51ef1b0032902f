package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statenet/pkg/errors"
	statio "github.com/matzehuels/statenet/pkg/io"
	"github.com/matzehuels/statenet/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"

	defaultScale = 2.0 // PNG zoom factor
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: "dot", "svg", "pdf", "png"
	detailed  bool     // add the physical node to labels
	layers    bool     // cluster states by layer
	minWeight float64  // hide lighter links
	scale     float64  // PNG zoom factor
}

// renderCommand creates the render command for drawing a state network.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "render [network.net]",
		Short: "Render a state network to DOT, SVG, PDF or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show the physical node of each state")
	cmd.Flags().BoolVar(&opts.layers, "layers", false, "group multilayer states into one cluster per layer")
	cmd.Flags().Float64Var(&opts.minWeight, "min-weight", 0, "hide links lighter than this")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPDF: true, formatPNG: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.Config("invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

func (c *CLI) runRender(input string, opts *renderOpts) error {
	prog := newProgress(c.Logger)

	net, err := statio.ImportStates(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("Loaded network", "nodes", net.NodeCount(), "links", net.LinkCount())

	dot := render.ToDOT(net, render.Options{
		Detailed:  opts.detailed,
		Layers:    opts.layers,
		MinWeight: opts.minWeight,
	})

	base := opts.output
	if base == "" || len(opts.formats) > 1 {
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if base == "" {
			base = statio.Stem(input)
		}
	}

	var svg []byte
	var written []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, base, format, len(opts.formats))
		var data []byte
		switch format {
		case formatDOT:
			data = []byte(dot)
		default:
			if svg == nil {
				if svg, err = render.RenderSVG(dot); err != nil {
					return err
				}
			}
			data, err = convertSVG(svg, format, opts.scale)
			if err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		written = append(written, path)
	}

	prog.done(fmt.Sprintf("Rendered %d states", net.NodeCount()))
	printSuccess("Rendered %s", filepath.Base(input))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

func convertSVG(svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case formatPDF:
		return render.ToPDF(svg)
	case formatPNG:
		return render.ToPNG(svg, scale)
	default:
		return svg, nil
	}
}

// outputPath returns output itself for a single format with an explicit
// name, and base.<format> otherwise.
func outputPath(output, base, format string, formats int) string {
	if output != "" && formats == 1 {
		return output
	}
	return base + "." + format
}
