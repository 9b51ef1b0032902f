package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMergesIdenticalSequences(t *testing.T) {
	s := NewSet()
	s.Add([]string{"A", "B", "C", "D"}, 1)
	s.Add([]string{"X", "Y"}, 3)
	s.Add([]string{"A", "B", "C", "D"}, 1)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Weight("A", "B", "C", "D"))
	assert.Equal(t, 3, s.Weight("X", "Y"))
	assert.Equal(t, 0, s.Weight("A", "B"))
	assert.Equal(t, 5, s.TotalWeight())
}

func TestSetPreservesFirstEncounterOrder(t *testing.T) {
	s := NewSet()
	s.Add([]string{"C", "D"}, 1)
	s.Add([]string{"A", "B"}, 1)
	s.Add([]string{"C", "D"}, 4)

	keys := make([]string, 0, s.Len())
	for _, p := range s.Paths() {
		keys = append(keys, p.Key())
	}
	assert.Equal(t, []string{"C D", "A B"}, keys)
	assert.Equal(t, []string{"C", "D", "A", "B"}, s.Vertices())
}

func TestSetCopiesNodes(t *testing.T) {
	nodes := []string{"A", "B"}
	s := NewSet()
	s.Add(nodes, 1)
	nodes[0] = "Z"

	assert.Equal(t, "A B", s.Paths()[0].Key())
}

func TestPathTransitions(t *testing.T) {
	assert.Equal(t, 0, Path{}.Transitions())
	assert.Equal(t, 0, Path{Nodes: []string{"A"}}.Transitions())
	assert.Equal(t, 2, Path{Nodes: []string{"A", "B", "C"}}.Transitions())
}

func TestNames(t *testing.T) {
	s := NewSet()
	assert.False(t, s.HasNames())
	s.SetName("10397", "Atlanta, GA")
	assert.True(t, s.HasNames())
	assert.Equal(t, "Atlanta, GA", s.Name("10397"))
	assert.Equal(t, "12478", s.Name("12478"))
}

func TestSplitterThreshold(t *testing.T) {
	sp := NewSplitter(FilterOptions{WeightThreshold: 2}, nil)
	sp.Add(Path{Nodes: []string{"A", "B"}, Weight: 1})
	sp.Add(Path{Nodes: []string{"B", "C"}, Weight: 2})
	sp.Add(Path{Nodes: []string{"C", "D"}, Weight: 5})

	stats := sp.Stats()
	assert.Equal(t, FilterStats{Read: 3, BelowThreshold: 1, Training: 2}, stats)
	assert.Equal(t, 2, sp.Training().Len())
	assert.Equal(t, 0, sp.Validation().Len())
}

func TestSplitterSplitIsReproducible(t *testing.T) {
	input := NewSet()
	for i := range 200 {
		input.Add([]string{"N", string(rune('a' + i%26)), string(rune('a' + i/26))}, 1)
	}

	run := func() (int, int) {
		sp := NewSplitter(FilterOptions{Split: 0.3, Seed: 7}, nil)
		sp.AddSet(input)
		return sp.Training().Len(), sp.Validation().Len()
	}

	t1, v1 := run()
	t2, v2 := run()
	assert.Equal(t, t1, t2)
	assert.Equal(t, v1, v2)
	assert.Equal(t, input.Len(), t1+v1)
	assert.Greater(t, v1, 0)
	assert.Greater(t, t1, v1)
}

func TestSplitterCarriesNames(t *testing.T) {
	names := NewSet()
	names.SetName("A", "Alpha")

	sp := NewSplitter(FilterOptions{}, names)
	sp.Add(Path{Nodes: []string{"A", "B"}, Weight: 1})

	assert.Equal(t, "Alpha", sp.Training().Name("A"))
	assert.Equal(t, "Alpha", sp.Validation().Name("A"))
}

func TestMergeNames(t *testing.T) {
	a := NewSet()
	a.SetName("A", "Alpha")
	b := NewSet()
	b.SetName("A", "Old")
	b.SetName("B", "Beta")
	b.MergeNames(a)

	assert.Equal(t, "Alpha", b.Name("A"))
	assert.Equal(t, "Beta", b.Name("B"))
}
