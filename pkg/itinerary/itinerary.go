// Package itinerary reconstructs travel paths from unordered itinerary legs.
//
// Legs are grouped by itinerary id, ordered by sequence number and checked
// for consistency: sequence numbers must run 1..n without gaps or
// duplicates, and each leg must start where the previous one ended. A valid
// itinerary becomes the node sequence
//
//	source(leg1) target(leg1) target(leg2) ... target(legN)
//
// and identical sequences from different itineraries are merged into one
// weighted path.
package itinerary

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/paths"
)

// Leg is one directed origin -> destination segment of an itinerary.
type Leg struct {
	ItinID string
	MktID  string
	SeqNum int
	Source string
	Target string
}

// String renders the leg as "seq:source->target".
func (l Leg) String() string {
	return fmt.Sprintf("%d:%s->%s", l.SeqNum, l.Source, l.Target)
}

// Assembler collects legs and turns them into weighted paths.
// Itineraries are emitted in the order their first leg was added.
// An Assembler is not safe for concurrent use.
type Assembler struct {
	groups map[string][]Leg
	order  []string
	legs   int
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{groups: make(map[string][]Leg)}
}

// Add records one leg.
func (a *Assembler) Add(l Leg) {
	if _, ok := a.groups[l.ItinID]; !ok {
		a.order = append(a.order, l.ItinID)
	}
	a.groups[l.ItinID] = append(a.groups[l.ItinID], l)
	a.legs++
}

// Itineraries returns the number of distinct itinerary ids seen.
func (a *Assembler) Itineraries() int { return len(a.order) }

// Legs returns the number of legs added.
func (a *Assembler) Legs() int { return a.legs }

// Paths validates every itinerary and merges them into a path set.
// The first invalid itinerary aborts the whole run with a
// *errors.SequenceError; no partial set is returned.
func (a *Assembler) Paths() (*paths.Set, error) {
	set := paths.NewSet()
	for _, id := range a.order {
		nodes, err := Chain(id, a.groups[id])
		if err != nil {
			return nil, err
		}
		set.Add(nodes, 1)
	}
	return set, nil
}

// Chain orders the legs of a single itinerary by sequence number, validates
// them and returns the node sequence they describe. legs is sorted in place.
func Chain(itinID string, legs []Leg) ([]string, error) {
	if len(legs) == 0 {
		return nil, sequenceError(itinID, "no legs", legs)
	}
	slices.SortStableFunc(legs, func(a, b Leg) int { return cmp.Compare(a.SeqNum, b.SeqNum) })

	nodes := make([]string, 0, len(legs)+1)
	nodes = append(nodes, legs[0].Source)
	for i, l := range legs {
		if l.SeqNum != i+1 {
			return nil, sequenceError(itinID, fmt.Sprintf("leg %s has sequence number %d, want %d", l, l.SeqNum, i+1), legs)
		}
		if i > 0 && legs[i-1].Target != l.Source {
			return nil, sequenceError(itinID, fmt.Sprintf("leg %s does not connect to previous leg %s", l, legs[i-1]), legs)
		}
		nodes = append(nodes, l.Target)
	}
	return nodes, nil
}

func sequenceError(itinID, reason string, legs []Leg) error {
	rendered := make([]string, len(legs))
	for i, l := range legs {
		rendered[i] = l.String()
	}
	return &errors.SequenceError{ItinID: itinID, Reason: reason, Legs: rendered}
}
