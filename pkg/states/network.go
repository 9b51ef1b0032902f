// Package states builds and holds state networks: higher-order Markov
// networks whose nodes remember the last k physical nodes visited.
//
// A [Network] is a plain node table plus a weighted link list with an
// outgoing-adjacency index. Node ids are dense, zero-based and assigned in
// insertion order, which is also the order nodes and links are written, so
// identical input always yields identical output.
//
// An [Expander] slides a window of width k over weighted paths and
// accumulates the resulting state nodes and links into a Network.
package states

import (
	"errors"
	"math"

	staterr "github.com/matzehuels/statenet/pkg/errors"
)

var (
	// ErrDuplicateName is returned by [Network.AddNode] when a node with the
	// same name already exists.
	ErrDuplicateName = errors.New("duplicate state name")

	// ErrNegativeWeight is returned by [Network.AddLink] for weights below zero.
	ErrNegativeWeight = errors.New("negative link weight")

	// ErrNonFiniteWeight is returned by [Network.AddLink] for NaN or infinite
	// weights.
	ErrNonFiniteWeight = errors.New("non-finite link weight")
)

// Node is a state node.
type Node struct {
	ID     int    // Dense index, assigned in insertion order
	PhysID string // Physical node the state sits on
	Name   string // Human-readable state label, unique within the network
	Count  int    // Number of path visits (informational)
}

// Link is a directed, weighted edge between two state nodes.
type Link struct {
	Source int
	Target int
	Weight float64
}

type linkKey struct{ source, target int }

// Network is a state network. The zero value is not usable; use NewNetwork.
// Network is not safe for concurrent modification.
type Network struct {
	nodes     []Node
	byName    map[string]int
	links     []Link
	linkIndex map[linkKey]int
	outgoing  [][]int   // node id -> positions in links
	outWeight []float64 // node id -> sum of outgoing link weights
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		byName:    make(map[string]int),
		linkIndex: make(map[linkKey]int),
	}
}

// AddNode appends a node and returns its id. Names must be unique.
func (n *Network) AddNode(physID, name string) (int, error) {
	if _, exists := n.byName[name]; exists {
		return 0, ErrDuplicateName
	}
	id := len(n.nodes)
	n.nodes = append(n.nodes, Node{ID: id, PhysID: physID, Name: name})
	n.byName[name] = id
	n.outgoing = append(n.outgoing, nil)
	n.outWeight = append(n.outWeight, 0)
	return id, nil
}

// Visit increments the informational visit counter of a node.
func (n *Network) Visit(id int) {
	if id >= 0 && id < len(n.nodes) {
		n.nodes[id].Count++
	}
}

// SetCount overwrites the visit counter of a node.
func (n *Network) SetCount(id, count int) {
	if id >= 0 && id < len(n.nodes) {
		n.nodes[id].Count = count
	}
}

// AddLink adds weight to the link source -> target, creating it on first use.
// Both endpoints must exist; an unknown id is a ReferentialError.
func (n *Network) AddLink(source, target int, weight float64) error {
	if !n.valid(source) {
		return staterr.Reference("link %d -> %d: unknown source node %d", source, target, source)
	}
	if !n.valid(target) {
		return staterr.Reference("link %d -> %d: unknown target node %d", source, target, target)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrNonFiniteWeight
	}
	if weight < 0 {
		return ErrNegativeWeight
	}
	k := linkKey{source, target}
	if i, ok := n.linkIndex[k]; ok {
		n.links[i].Weight += weight
	} else {
		n.linkIndex[k] = len(n.links)
		n.outgoing[source] = append(n.outgoing[source], len(n.links))
		n.links = append(n.links, Link{Source: source, Target: target, Weight: weight})
	}
	n.outWeight[source] += weight
	return nil
}

func (n *Network) valid(id int) bool { return id >= 0 && id < len(n.nodes) }

// Node returns the node with the given id.
func (n *Network) Node(id int) (Node, bool) {
	if !n.valid(id) {
		return Node{}, false
	}
	return n.nodes[id], true
}

// NodeByName looks a node up by its state name.
func (n *Network) NodeByName(name string) (Node, bool) {
	id, ok := n.byName[name]
	if !ok {
		return Node{}, false
	}
	return n.nodes[id], true
}

// Nodes returns all nodes in id order. The slice must not be modified.
func (n *Network) Nodes() []Node { return n.nodes }

// Links returns all links in creation order. The slice must not be modified.
func (n *Network) Links() []Link { return n.links }

// OutLinks returns the outgoing links of a node in creation order.
func (n *Network) OutLinks(id int) []Link {
	if !n.valid(id) {
		return nil
	}
	out := make([]Link, len(n.outgoing[id]))
	for i, pos := range n.outgoing[id] {
		out[i] = n.links[pos]
	}
	return out
}

// LinkWeight returns the weight of source -> target, or 0 if absent.
func (n *Network) LinkWeight(source, target int) float64 {
	if i, ok := n.linkIndex[linkKey{source, target}]; ok {
		return n.links[i].Weight
	}
	return 0
}

// OutDegree returns the summed weight of the node's outgoing links.
func (n *Network) OutDegree(id int) float64 {
	if !n.valid(id) {
		return 0
	}
	return n.outWeight[id]
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// LinkCount returns the number of distinct links.
func (n *Network) LinkCount() int { return len(n.links) }

// TotalWeight returns the summed weight of all links.
func (n *Network) TotalWeight() float64 {
	var total float64
	for _, w := range n.outWeight {
		total += w
	}
	return total
}
