// Package paths holds weighted travel paths: node sequences that were
// observed one or more times, with the observation count as weight.
//
// A [Set] deduplicates identical sequences and remembers the order in which
// each distinct sequence was first seen, so every consumer iterates paths in
// the same, reproducible order.
package paths

import (
	"slices"
	"strings"
)

// Path is an ordered node sequence and the number of times it occurred.
type Path struct {
	Nodes  []string
	Weight int
}

// Key returns the canonical space-separated form of the node sequence.
func (p Path) Key() string { return strings.Join(p.Nodes, " ") }

// Transitions returns the number of hops in the path.
func (p Path) Transitions() int { return max(len(p.Nodes)-1, 0) }

// Set is an insertion-ordered collection of unique weighted paths.
// The zero value is not usable; use NewSet.
type Set struct {
	paths []Path
	index map[string]int // canonical key -> position in paths
	names map[string]string
}

// NewSet creates an empty path set.
func NewSet() *Set {
	return &Set{
		index: make(map[string]int),
		names: make(map[string]string),
	}
}

// Add records weight more occurrences of the node sequence. Identical
// sequences collapse onto one entry whose weight is the sum.
func (s *Set) Add(nodes []string, weight int) {
	key := strings.Join(nodes, " ")
	if i, ok := s.index[key]; ok {
		s.paths[i].Weight += weight
		return
	}
	s.index[key] = len(s.paths)
	s.paths = append(s.paths, Path{Nodes: slices.Clone(nodes), Weight: weight})
}

// AddPath is Add for an existing Path value.
func (s *Set) AddPath(p Path) { s.Add(p.Nodes, p.Weight) }

// Weight returns the accumulated weight of the node sequence, or 0.
func (s *Set) Weight(nodes ...string) int {
	if i, ok := s.index[strings.Join(nodes, " ")]; ok {
		return s.paths[i].Weight
	}
	return 0
}

// Paths returns the unique paths in first-encounter order.
// The slice must not be modified.
func (s *Set) Paths() []Path { return s.paths }

// Len returns the number of unique paths.
func (s *Set) Len() int { return len(s.paths) }

// TotalWeight returns the sum of all path weights.
func (s *Set) TotalWeight() int {
	total := 0
	for _, p := range s.paths {
		total += p.Weight
	}
	return total
}

// SetName attaches a display name to a vertex id.
func (s *Set) SetName(id, name string) { s.names[id] = name }

// Name returns the display name of a vertex, falling back to its id.
func (s *Set) Name(id string) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return id
}

// MergeNames copies the vertex names of other into s, overwriting names
// already set for the same ids.
func (s *Set) MergeNames(other *Set) {
	for id, name := range other.names {
		s.names[id] = name
	}
}

// HasNames reports whether any vertex names are attached.
func (s *Set) HasNames() bool { return len(s.names) > 0 }

// Vertices returns every vertex id appearing in the paths, in first-encounter order.
func (s *Set) Vertices() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.paths {
		for _, n := range p.Nodes {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
