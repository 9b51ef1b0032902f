package states

import (
	staterr "github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/paths"
)

// Stats counts the paths an Expander has seen.
type Stats struct {
	Paths         int // paths offered
	Accepted      int // paths expanded into the network
	SkippedWeight int // paths below the minimum weight
	SkippedLength int // paths with too few transitions for the order
}

// Expander turns weighted paths into an order-k state network.
// An Expander is not safe for concurrent use.
type Expander struct {
	order     int
	minWeight int
	net       *Network
	index     map[Key]int
	stats     Stats
}

// NewExpander creates an expander for Markov order 1..MaxOrder. Paths with
// weight below minWeight are skipped; minWeight must not be negative, so
// paths with negative weight never reach the network.
func NewExpander(order, minWeight int) (*Expander, error) {
	if order < 1 || order > MaxOrder {
		return nil, staterr.Config("order not supported: %d (must be 1, 2 or 3)", order)
	}
	if minWeight < 0 {
		return nil, staterr.Config("minimum path weight must not be negative, got %d", minWeight)
	}
	return &Expander{
		order:     order,
		minWeight: minWeight,
		net:       NewNetwork(),
		index:     make(map[Key]int),
	}, nil
}

// Order returns the Markov order.
func (e *Expander) Order() int { return e.order }

// Add expands one path. It reports whether the path was used; paths below
// the weight threshold or with at most k transitions are counted and skipped.
//
// For a path n0..nL of weight w, the state at position i >= k-1 is the
// window n[i-k+1..i]. Each consecutive pair of states gains a link of
// weight w, and each visited state's counter grows by one.
func (e *Expander) Add(p paths.Path) bool {
	e.stats.Paths++
	if p.Weight < e.minWeight {
		e.stats.SkippedWeight++
		return false
	}
	if p.Transitions() <= e.order {
		e.stats.SkippedLength++
		return false
	}
	e.stats.Accepted++

	k := e.order
	weight := float64(p.Weight)
	prev := -1
	for i := k - 1; i < len(p.Nodes); i++ {
		id := e.state(NewKey(p.Nodes[i-k+1 : i+1]...))
		e.net.Visit(id)
		if prev >= 0 {
			// Both ids come from e.state, so AddLink cannot fail.
			_ = e.net.AddLink(prev, id, weight)
		}
		prev = id
	}
	return true
}

// AddSet expands every path in set, in set order.
func (e *Expander) AddSet(set *paths.Set) {
	for _, p := range set.Paths() {
		e.Add(p)
	}
}

// state returns the id of the state for key, creating it on first encounter.
func (e *Expander) state(key Key) int {
	if id, ok := e.index[key]; ok {
		return id
	}
	// Names are unique per key since node ids never contain spaces.
	id, _ := e.net.AddNode(key.PhysID(), key.Name())
	e.index[key] = id
	return id
}

// Network returns the network built so far.
func (e *Expander) Network() *Network { return e.net }

// Stats returns the running counters.
func (e *Expander) Stats() Stats { return e.stats }
