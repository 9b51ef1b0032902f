package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	statio "github.com/matzehuels/statenet/pkg/io"
	"github.com/matzehuels/statenet/pkg/states"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the physical node to node labels. Visit counts are not
	// shown: they are not stored in state files.
	Detailed bool
	// Layers groups multilayer states into one cluster per layer.
	Layers bool
	// MinWeight hides links lighter than this.
	MinWeight float64
}

// ToDOT converts a state network to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(net *states.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	if opts.Layers {
		writeClusters(&buf, net, opts)
	} else {
		for _, n := range net.Nodes() {
			writeNode(&buf, "  ", n, opts)
		}
	}

	buf.WriteString("\n")
	for _, l := range net.Links() {
		if l.Weight < opts.MinWeight {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", statio.FormatWeight(l.Weight))}
		if opts.Layers && layerOf(net, l.Source) != layerOf(net, l.Target) {
			attrs = append(attrs, "style=dashed", "color=grey40")
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", nodeID(l.Source), nodeID(l.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "s" + strconv.Itoa(id) }

func writeNode(buf *bytes.Buffer, indent string, n states.Node, opts Options) {
	fmt.Fprintf(buf, "%s%s [label=%q];\n", indent, nodeID(n.ID), fmtLabel(n, opts.Detailed))
}

func fmtLabel(n states.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	return fmt.Sprintf("%s\nphys: %s", n.Name, n.PhysID)
}

// layerOf returns the layer prefix of a multilayer state name.
func layerOf(net *states.Network, id int) string {
	n, ok := net.Node(id)
	if !ok {
		return ""
	}
	layer, _, _ := strings.Cut(n.Name, " ")
	return layer
}

func writeClusters(buf *bytes.Buffer, net *states.Network, opts Options) {
	var order []string
	members := make(map[string][]states.Node)
	for _, n := range net.Nodes() {
		layer := layerOf(net, n.ID)
		if _, seen := members[layer]; !seen {
			order = append(order, layer)
		}
		members[layer] = append(members[layer], n)
	}
	for i, layer := range order {
		fmt.Fprintf(buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(buf, "    label=%q;\n", "layer "+layer)
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, n := range members[layer] {
			writeNode(buf, "    ", n, opts)
		}
		buf.WriteString("  }\n")
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
