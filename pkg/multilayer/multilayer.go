// Package multilayer merges independently built state networks into one
// multilayer state network.
//
// Each input network becomes a [Layer]. Every state node of every layer is
// re-keyed as "<layer> <state name>" and gets a fresh global id. Transitions
// are then mixed with a relax rate r: a walker at state s in layer L follows
// L's own transitions with probability 1-r and the transitions of s pooled
// over all layers with probability r. For a link s -> t recorded in layer L2
// the edge from (L1, s) to (L2, t) gets weight
//
//	L2 != L1:  r / global(s) * w
//	L2 == L1:  (r / global(s) + (1-r) / local(L1, s)) * w
//
// where global(s) sums the outgoing weight of s over all layers and
// local(L1, s) only within L1. r = 0 yields disconnected layers and r = 1
// makes the layer irrelevant to where the walker goes next.
package multilayer

import (
	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/states"
)

// Layer is one named state network, typically one reporting period.
type Layer struct {
	Name    string
	Network *states.Network
}

// Stats summarises a merge.
type Stats struct {
	Layers     int
	Nodes      int
	IntraEdges int
	InterEdges int
	Skipped    int // source states without any outgoing weight
}

// NodeName returns the multilayer name of a state in a layer.
func NodeName(layer, state string) string { return layer + " " + state }

// Merge builds the multilayer network for layers with the given relax rate.
// Layer names must be unique and non-empty; relaxRate must lie in [0, 1].
// Global node ids follow layer order, then node order within each layer.
func Merge(layers []Layer, relaxRate float64) (*states.Network, Stats, error) {
	var stats Stats
	if relaxRate < 0 || relaxRate > 1 {
		return nil, stats, errors.Config("relax rate must be between 0 and 1, got %v", relaxRate)
	}
	if err := checkLayers(layers); err != nil {
		return nil, stats, err
	}
	stats.Layers = len(layers)

	out := states.NewNetwork()

	// globalIDs[i][local id] is the multilayer id of node local id in layer i.
	globalIDs := make([][]int, len(layers))
	globalOut := make(map[string]float64)
	for i, l := range layers {
		ids := make([]int, l.Network.NodeCount())
		for _, n := range l.Network.Nodes() {
			id, err := out.AddNode(n.PhysID, NodeName(l.Name, n.Name))
			if err != nil {
				return nil, stats, errors.Wrap(errors.ErrCodeInternal, err, "layer %s: state %q", l.Name, n.Name)
			}
			out.SetCount(id, n.Count)
			ids[n.ID] = id
			globalOut[n.Name] += l.Network.OutDegree(n.ID)
		}
		globalIDs[i] = ids
	}
	stats.Nodes = out.NodeCount()

	for i1, l1 := range layers {
		for _, n1 := range l1.Network.Nodes() {
			global := globalOut[n1.Name]
			if global == 0 {
				stats.Skipped++
				continue
			}
			source := globalIDs[i1][n1.ID]

			for i2, l2 := range layers {
				n2, ok := l2.Network.NodeByName(n1.Name)
				if !ok {
					continue
				}
				factor := relaxRate / global
				intra := i2 == i1
				if intra {
					local := l1.Network.OutDegree(n1.ID)
					if local == 0 {
						continue
					}
					factor += (1 - relaxRate) / local
				}
				if factor == 0 {
					continue
				}
				for _, link := range l2.Network.OutLinks(n2.ID) {
					if err := out.AddLink(source, globalIDs[i2][link.Target], factor*link.Weight); err != nil {
						return nil, stats, err
					}
					if intra {
						stats.IntraEdges++
					} else {
						stats.InterEdges++
					}
				}
			}
		}
	}

	return out, stats, nil
}

func checkLayers(layers []Layer) error {
	seen := make(map[string]bool, len(layers))
	for i, l := range layers {
		if l.Name == "" {
			return errors.Config("layer %d has no name", i)
		}
		if err := checkName(l.Name); err != nil {
			return err
		}
		if seen[l.Name] {
			return errors.Config("duplicate layer name: %q", l.Name)
		}
		if l.Network == nil {
			return errors.Config("layer %s has no network", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}
