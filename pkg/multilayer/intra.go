package multilayer

import (
	"strings"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/paths"
)

// IntraLink is a first-order transition between two physical nodes inside
// one layer.
type IntraLink struct {
	Layer  int // index into Intra.Layers
	Source string
	Target string
	Weight int
}

type intraKey struct {
	layer          int
	source, target string
}

// Intra collects first-order transitions per layer straight from path sets.
// Layers are not coupled; the result is the raw intra-layer link list a
// multilayer tool can relax on its own.
type Intra struct {
	layers []string
	links  []IntraLink
	index  map[intraKey]int
}

// NewIntra creates an empty intra-layer link collection.
func NewIntra() *Intra {
	return &Intra{index: make(map[intraKey]int)}
}

// AddLayer appends set as a new layer and returns its index. Every pair of
// consecutive nodes of a path of weight w adds w to that link of the layer.
// Links keep first-seen order within and across layers.
func (in *Intra) AddLayer(name string, set *paths.Set) (int, error) {
	if err := checkName(name); err != nil {
		return 0, err
	}
	for _, l := range in.layers {
		if l == name {
			return 0, errors.Config("duplicate layer name: %q", name)
		}
	}
	layer := len(in.layers)
	in.layers = append(in.layers, name)

	for _, p := range set.Paths() {
		for i := 1; i < len(p.Nodes); i++ {
			k := intraKey{layer, p.Nodes[i-1], p.Nodes[i]}
			if j, ok := in.index[k]; ok {
				in.links[j].Weight += p.Weight
				continue
			}
			in.index[k] = len(in.links)
			in.links = append(in.links, IntraLink{Layer: layer, Source: k.source, Target: k.target, Weight: p.Weight})
		}
	}
	return layer, nil
}

// Layers returns the layer names in index order.
func (in *Intra) Layers() []string { return in.layers }

// Links returns all links. The slice must not be modified.
func (in *Intra) Links() []IntraLink { return in.links }

func checkName(name string) error {
	if name == "" {
		return errors.Config("layer has no name")
	}
	if strings.ContainsAny(name, " \t\"") {
		return errors.Config("layer name %q must not contain whitespace or quotes", name)
	}
	return nil
}
