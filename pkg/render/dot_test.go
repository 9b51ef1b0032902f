package render

import (
	"path/filepath"
	"strings"
	"testing"

	statio "github.com/matzehuels/statenet/pkg/io"
	"github.com/matzehuels/statenet/pkg/multilayer"
	"github.com/matzehuels/statenet/pkg/paths"
	"github.com/matzehuels/statenet/pkg/states"
)

func firstOrder(t *testing.T, ps ...paths.Path) *states.Network {
	t.Helper()
	e, err := states.NewExpander(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range ps {
		e.Add(p)
	}
	return e.Network()
}

func TestToDOT_Basic(t *testing.T) {
	net := firstOrder(t, paths.Path{Nodes: []string{"A", "B", "C"}, Weight: 5})

	dot := ToDOT(net, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `s0 [label="A"]`) {
		t.Error("ToDOT() output missing node A")
	}
	if !strings.Contains(dot, `s0 -> s1 [label="5"]`) {
		t.Error("ToDOT() output missing edge A -> B")
	}
	if strings.Contains(dot, "cluster") {
		t.Error("ToDOT() without Layers should not cluster")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	net := firstOrder(t, paths.Path{Nodes: []string{"A", "B", "C"}, Weight: 5})

	dot := ToDOT(net, Options{Detailed: true})

	if !strings.Contains(dot, `label="B\nphys: B"`) {
		t.Errorf("ToDOT() detailed output missing node info:\n%s", dot)
	}
}

func TestToDOT_DetailedFromFile(t *testing.T) {
	net := firstOrder(t, paths.Path{Nodes: []string{"A", "B", "C"}, Weight: 5})
	file := filepath.Join(t.TempDir(), "states.net")
	if err := statio.ExportStates(net, file); err != nil {
		t.Fatal(err)
	}
	loaded, err := statio.ImportStates(file)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(loaded, Options{Detailed: true})

	if !strings.Contains(dot, `label="B\nphys: B"`) {
		t.Errorf("ToDOT() detailed output missing node info:\n%s", dot)
	}
	if strings.Contains(dot, "visits") {
		t.Errorf("ToDOT() shows visit counts that state files do not carry:\n%s", dot)
	}
}

func TestToDOT_MinWeight(t *testing.T) {
	net := firstOrder(t,
		paths.Path{Nodes: []string{"A", "B", "C"}, Weight: 5},
		paths.Path{Nodes: []string{"A", "D", "E"}, Weight: 1},
	)

	dot := ToDOT(net, Options{MinWeight: 2})

	if strings.Count(dot, "->") != 2 {
		t.Errorf("ToDOT() should keep 2 links, got:\n%s", dot)
	}
}

func TestToDOT_Layers(t *testing.T) {
	l0 := firstOrder(t, paths.Path{Nodes: []string{"A", "B", "C"}, Weight: 2})
	l1 := firstOrder(t, paths.Path{Nodes: []string{"A", "B", "D"}, Weight: 2})
	net, _, err := multilayer.Merge([]multilayer.Layer{{Name: "q1", Network: l0}, {Name: "q2", Network: l1}}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(net, Options{Layers: true})

	if !strings.Contains(dot, "subgraph cluster_0") || !strings.Contains(dot, "subgraph cluster_1") {
		t.Error("ToDOT() should emit one cluster per layer")
	}
	if !strings.Contains(dot, `label="layer q2"`) {
		t.Error("ToDOT() missing layer label")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("ToDOT() inter-layer links should be dashed")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave SVG without viewBox unchanged")
	}
}
