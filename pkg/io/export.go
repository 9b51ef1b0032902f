package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/statenet/pkg/multilayer"
	"github.com/matzehuels/statenet/pkg/paths"
	"github.com/matzehuels/statenet/pkg/states"
)

// FormatWeight renders a weight in its shortest round-trip form. Integral
// weights are written without a fraction.
func FormatWeight(w float64) string {
	if w == math.Trunc(w) && math.Abs(w) < 1e15 {
		return strconv.FormatInt(int64(w), 10)
	}
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// quoteName makes a label safe for a quoted field. The file formats have no
// escape sequence, so double quotes become single quotes.
func quoteName(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `'`) + `"`
}

// WritePaths encodes set as a path file. When names are attached to the set
// a *vertices section lists every vertex in first-encounter order before
// the paths. The output can be re-read with [ReadPaths]. Double quotes in
// names are written as single quotes and do not survive a round trip.
func WritePaths(set *paths.Set, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if set.HasNames() {
		vs := set.Vertices()
		fmt.Fprintf(bw, "*vertices %d\n", len(vs))
		for _, v := range vs {
			fmt.Fprintf(bw, "%s %s\n", v, quoteName(set.Name(v)))
		}
	}
	bw.WriteString("*paths\n")
	for _, p := range set.Paths() {
		bw.WriteString(p.Key())
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(p.Weight))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write paths: %w", err)
	}
	return nil
}

// ExportPaths writes set to the file at path, creating or truncating it.
func ExportPaths(set *paths.Set, path string) error {
	return export(path, func(w io.Writer) error { return WritePaths(set, w) })
}

// WriteStates encodes a state network. Nodes are written with their ids as
// file indices, followed by all links in creation order. Double quotes in
// state names are written as single quotes, so a name containing them reads
// back changed.
func WriteStates(net *states.Network, w io.Writer) error {
	return writeNetwork(net, w, false)
}

// WriteMultilayer encodes a merged multilayer network. The layout matches
// [WriteStates] except that the *links line carries the link count.
func WriteMultilayer(net *states.Network, w io.Writer) error {
	return writeNetwork(net, w, true)
}

func writeNetwork(net *states.Network, w io.Writer, countLinks bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "*states %d\n", net.NodeCount())
	for _, n := range net.Nodes() {
		fmt.Fprintf(bw, "%d %s %s\n", n.ID, n.PhysID, quoteName(n.Name))
	}
	if countLinks {
		fmt.Fprintf(bw, "*links %d\n", net.LinkCount())
	} else {
		bw.WriteString("*links\n")
	}
	for _, l := range net.Links() {
		bw.WriteString(strconv.Itoa(l.Source))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(l.Target))
		bw.WriteByte(' ')
		bw.WriteString(FormatWeight(l.Weight))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write states: %w", err)
	}
	return nil
}

// ExportStates writes a state network to the file at path.
func ExportStates(net *states.Network, path string) error {
	return export(path, func(w io.Writer) error { return WriteStates(net, w) })
}

// ExportMultilayer writes a multilayer network to the file at path.
func ExportMultilayer(net *states.Network, path string) error {
	return export(path, func(w io.Writer) error { return WriteMultilayer(net, w) })
}

// WriteIntra encodes per-layer first-order links. Each line holds the layer
// index, source node, target node and weight.
func WriteIntra(in *multilayer.Intra, w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("*Intra\n# layer node node weight\n")
	for _, l := range in.Links() {
		fmt.Fprintf(bw, "%d %s %s %d\n", l.Layer, l.Source, l.Target, l.Weight)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write intra links: %w", err)
	}
	return nil
}

// ExportIntra writes per-layer first-order links to the file at path.
func ExportIntra(in *multilayer.Intra, path string) error {
	return export(path, func(w io.Writer) error { return WriteIntra(in, w) })
}

func export(path string, write func(io.Writer) error) error {
	f, err := Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
