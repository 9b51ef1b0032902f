// Package render draws state networks as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a state network into Graphviz DOT source. Each state
// becomes a rounded box labelled with its state name; each link becomes an
// arrow labelled with its weight. DOT output can be saved for external
// Graphviz tools or rendered in-process:
//
//	dot := render.ToDOT(net, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// # Multilayer Networks
//
// With [Options.Layers] set, nodes are grouped into one cluster per layer,
// taken from the first word of each multilayer state name ("q1 JFK LAX"
// belongs to layer "q1"). Links between clusters are drawn dashed.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output using the external rsvg-convert
// tool (from librsvg).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
