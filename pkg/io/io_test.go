package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/itinerary"
	"github.com/matzehuels/statenet/pkg/multilayer"
	"github.com/matzehuels/statenet/pkg/paths"
	"github.com/matzehuels/statenet/pkg/states"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		header string
		want   rune
	}{
		{"ItinID,MktID,SeqNum", ','},
		{"ItinID\tMktID\tSeqNum", '\t'},
		{"ItinID;MktID;SeqNum", ';'},
		{"ItinID|MktID|SeqNum", '|'},
		{"a;b,c;d", ';'},
	}
	for _, tt := range tests {
		got, err := SniffDelimiter(tt.header)
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}

	_, err := SniffDelimiter("ItinID MktID")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func readLegs(t *testing.T, input string, cols itinerary.Columns) ([]itinerary.Leg, error) {
	t.Helper()
	var legs []itinerary.Leg
	_, err := ReadLegs(strings.NewReader(input), cols, func(l itinerary.Leg) error {
		legs = append(legs, l)
		return nil
	})
	return legs, err
}

func TestReadLegs(t *testing.T) {
	input := "ItinID,MktID,SeqNum,Coupons,OriginAirportID,DestAirportID\n" +
		"1,10,2,2,B,C\n" +
		"1,10,1,2,A,B\n" +
		"2,20,1.0,1,X,Y\n"

	legs, err := readLegs(t, input, itinerary.PrezippedColumns)
	require.NoError(t, err)
	assert.Equal(t, []itinerary.Leg{
		{ItinID: "1", MktID: "10", SeqNum: 2, Source: "B", Target: "C"},
		{ItinID: "1", MktID: "10", SeqNum: 1, Source: "A", Target: "B"},
		{ItinID: "2", MktID: "20", SeqNum: 1, Source: "X", Target: "Y"},
	}, legs)
}

func TestReadLegsTabSelectedColumns(t *testing.T) {
	input := "ITIN_ID\tMKT_ID\tSEQ_NUM\tORIGIN_AIRPORT_ID\tDEST_AIRPORT_ID\n" +
		"7\t70\t1\t10397\t12478\n"

	legs, err := readLegs(t, input, itinerary.SelectedColumns)
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, "10397", legs[0].Source)
	assert.Equal(t, "12478", legs[0].Target)
}

func TestReadLegsErrors(t *testing.T) {
	header := "ItinID,MktID,SeqNum,OriginAirportID,DestAirportID\n"
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"missing column", "ItinID,MktID,SeqNum,OriginAirportID\n1,1,1,A\n", "line 1"},
		{"no delimiter", "ItinID\n1\n", "line 1"},
		{"field count", header + "1,10,1,A,B\n1,10,2,B\n", "line 3"},
		{"non-numeric seq", header + "1,10,first,A,B\n", "line 2"},
		{"empty node", header + "1,10,1,,B\n", "line 2"},
		{"empty file", "", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readLegs(t, tt.input, itinerary.PrezippedColumns)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestReadLegsCallbackError(t *testing.T) {
	input := "ItinID,MktID,SeqNum,OriginAirportID,DestAirportID\n1,10,1,A,B\n1,10,2,B,C\n"
	stop := errors.New(errors.ErrCodeInternal, "stop")
	n, err := ReadLegs(strings.NewReader(input), itinerary.PrezippedColumns, func(itinerary.Leg) error {
		return stop
	})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, stop)
}

func TestReadNames(t *testing.T) {
	input := "Code,Description\n" +
		"10397,\"Atlanta, GA: Hartsfield-Jackson Atlanta International\"\n" +
		"12478,\"New York, NY: John F. Kennedy International\"\n"
	set := paths.NewSet()
	n, err := ReadNames(strings.NewReader(input), set)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Atlanta, GA: Hartsfield-Jackson Atlanta International", set.Name("10397"))
}

func TestReadPaths(t *testing.T) {
	input := `# quarterly paths
*paths
JFK LAX SFO 5

BOS JFK 2
JFK LAX SFO 1
`
	set, err := ReadPaths(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 6, set.Weight("JFK", "LAX", "SFO"))
	assert.Equal(t, 2, set.Weight("BOS", "JFK"))
	assert.False(t, set.HasNames())
}

func TestReadPathsVertices(t *testing.T) {
	input := `*vertices 2
JFK "New York, NY"
LAX "Los Angeles, CA"
*paths
JFK LAX 3
`
	set, err := ReadPaths(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, set.HasNames())
	assert.Equal(t, "Los Angeles, CA", set.Name("LAX"))
	assert.Equal(t, 3, set.Weight("JFK", "LAX"))
}

func TestReadPathsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"empty", "", "line 1"},
		{"no header", "A B 1\n", "line 1"},
		{"one token", "*paths\nA B 1\n5\n", "line 3"},
		{"non-numeric weight", "*paths\nA B x\n", "line 2"},
		{"negative weight", "*paths\nA B -1\n", "line 2"},
		{"bad vertex", "*vertices 1\nJFK New York\n*paths\n", "line 2"},
		{"short vertices", "*vertices 2\nJFK \"New York\"\n*paths\n", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPaths(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestWritePaths(t *testing.T) {
	set := paths.NewSet()
	set.Add([]string{"JFK", "LAX", "SFO"}, 5)
	set.Add([]string{"BOS", "JFK"}, 2)

	var buf bytes.Buffer
	require.NoError(t, WritePaths(set, &buf))
	assert.Equal(t, "*paths\nJFK LAX SFO 5\nBOS JFK 2\n", buf.String())

	set.SetName("JFK", `New York "Kennedy"`)
	buf.Reset()
	require.NoError(t, WritePaths(set, &buf))
	assert.Equal(t, "*vertices 4\n"+
		"JFK \"New York 'Kennedy'\"\n"+
		"LAX \"LAX\"\n"+
		"SFO \"SFO\"\n"+
		"BOS \"BOS\"\n"+
		"*paths\nJFK LAX SFO 5\nBOS JFK 2\n", buf.String())
}

func sampleNetwork(t *testing.T) *states.Network {
	t.Helper()
	e, err := states.NewExpander(2, 0)
	require.NoError(t, err)
	e.Add(paths.Path{Nodes: []string{"A", "B", "C", "D"}, Weight: 3})
	e.Add(paths.Path{Nodes: []string{"A", "B", "C", "E"}, Weight: 1})
	return e.Network()
}

func TestWriteStates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStates(sampleNetwork(t), &buf))
	assert.Equal(t, `*states 4
0 B "A B"
1 C "B C"
2 D "C D"
3 E "C E"
*links
0 1 4
1 2 3
1 3 1
`, buf.String())
}

func TestWriteMultilayerCountsLinks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMultilayer(sampleNetwork(t), &buf))
	assert.Contains(t, buf.String(), "*links 3\n")
}

func TestWriteStatesReplacesQuotes(t *testing.T) {
	net := states.NewNetwork()
	_, err := net.AddNode("JFK", `say "hi"`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStates(net, &buf))
	assert.Contains(t, buf.String(), `0 JFK "say 'hi'"`)

	got, err := ReadStates(&buf)
	require.NoError(t, err)
	assert.Equal(t, "say 'hi'", got.Nodes()[0].Name)
}

func TestWriteIntra(t *testing.T) {
	in := multilayer.NewIntra()
	q1 := paths.NewSet()
	q1.Add([]string{"A", "B", "C"}, 3)
	q2 := paths.NewSet()
	q2.Add([]string{"B", "C"}, 2)
	_, err := in.AddLayer("2011_1", q1)
	require.NoError(t, err)
	_, err = in.AddLayer("2011_2", q2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteIntra(in, &buf))
	assert.Equal(t, "*Intra\n# layer node node weight\n0 A B 3\n0 B C 3\n1 B C 2\n", buf.String())
}

func TestReadStates(t *testing.T) {
	input := `*states 3
# sparse indices are remapped
5 A "x A"
2 B "A B"
9 C "B C"
*links
5 2 0.25
2 9 3
5 2 0.5
`
	net, err := ReadStates(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, net.NodeCount())
	assert.Equal(t, 2, net.LinkCount())

	ab, ok := net.NodeByName("A B")
	require.True(t, ok)
	assert.Equal(t, 1, ab.ID)
	assert.Equal(t, "B", ab.PhysID)
	assert.InDelta(t, 0.75, net.LinkWeight(0, 1), 1e-12)
	assert.InDelta(t, 3, net.LinkWeight(1, 2), 1e-12)
}

func TestReadStatesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidFormat},
		{"missing count", "*states\n*links\n", errors.ErrCodeInvalidFormat},
		{"unquoted name", "*states 1\n0 A A\n*links\n", errors.ErrCodeInvalidFormat},
		{"too few states", "*states 2\n0 A \"A\"\n*links\n", errors.ErrCodeInvalidFormat},
		{"too many states", "*states 1\n0 A \"A\"\n1 B \"B\"\n*links\n", errors.ErrCodeInvalidFormat},
		{"duplicate index", "*states 2\n0 A \"A\"\n0 B \"B\"\n*links\n", errors.ErrCodeInvalidFormat},
		{"duplicate name", "*states 2\n0 A \"A\"\n1 A \"A\"\n*links\n", errors.ErrCodeInvalidFormat},
		{"missing links", "*states 1\n0 A \"A\"\n", errors.ErrCodeInvalidFormat},
		{"short link", "*states 1\n0 A \"A\"\n*links\n0 0\n", errors.ErrCodeInvalidFormat},
		{"bad weight", "*states 1\n0 A \"A\"\n*links\n0 0 heavy\n", errors.ErrCodeInvalidFormat},
		{"negative weight", "*states 1\n0 A \"A\"\n*links\n0 0 -1\n", errors.ErrCodeInvalidFormat},
		{"nan weight", "*states 1\n0 A \"A\"\n*links\n0 0 NaN\n", errors.ErrCodeInvalidFormat},
		{"inf weight", "*states 1\n0 A \"A\"\n*links\n0 0 Inf\n", errors.ErrCodeInvalidFormat},
		{"negative inf weight", "*states 1\n0 A \"A\"\n*links\n0 0 -inf\n", errors.ErrCodeInvalidFormat},
		{"link count", "*states 1\n0 A \"A\"\n*links 2\n0 0 1\n", errors.ErrCodeInvalidFormat},
		{"unknown source", "*states 1\n0 A \"A\"\n*links\n4 0 1\n", errors.ErrCodeUnknownReference},
		{"unknown target", "*states 1\n0 A \"A\"\n*links\n0 4 1\n", errors.ErrCodeUnknownReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadStates(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "5", FormatWeight(5))
	assert.Equal(t, "0", FormatWeight(0))
	assert.Equal(t, "0.25", FormatWeight(0.25))
	assert.Equal(t, "0.1", FormatWeight(0.1))
	assert.Equal(t, "1e+20", FormatWeight(1e20))
}

func TestExportImportFiles(t *testing.T) {
	dir := t.TempDir()
	net := sampleNetwork(t)

	for _, name := range []string{"net.net", "net.net.sz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ExportStates(net, path))

			got, err := ImportStates(path)
			require.NoError(t, err)
			assert.Equal(t, net.Nodes()[1].Name, got.Nodes()[1].Name)
			assert.Equal(t, net.Links(), got.Links())
		})
	}

	set := paths.NewSet()
	set.Add([]string{"A", "B"}, 7)
	path := filepath.Join(dir, "p_paths.net.sz")
	require.NoError(t, ExportPaths(set, path))
	got, err := ImportPaths(path)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Weight("A", "B"))
}

func TestImportMissingFile(t *testing.T) {
	_, err := ImportPaths(filepath.Join(t.TempDir(), "missing.net"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestExportEmptyPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.net")
	require.NoError(t, ExportPaths(paths.NewSet(), path))

	set, err := ImportPaths(path)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestImportErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.net")
	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("*paths\nA B oops\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = ImportPaths(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	assert.Contains(t, err.Error(), "broken.net")
	assert.Contains(t, err.Error(), "line 2")
}

func TestStem(t *testing.T) {
	assert.Equal(t, "data/2011_1", Stem("data/2011_1.csv.sz"))
	assert.Equal(t, "data/2011_1", Stem("data/2011_1.csv"))
	assert.Equal(t, "data.d/raw", Stem("data.d/raw"))
}
