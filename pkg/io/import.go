package io

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/paths"
	"github.com/matzehuels/statenet/pkg/states"
)

var (
	vertexLine = regexp.MustCompile(`^(\S+) "(.*)"$`)
	stateLine  = regexp.MustCompile(`^(\d+) (\S+) "(.*)"$`)
)

const maxLineSize = 16 << 20

// lineScanner yields trimmed, non-empty, non-comment lines with their
// 1-based line numbers.
type lineScanner struct {
	s    *bufio.Scanner
	line int
	text string
}

func newLineScanner(r io.Reader) *lineScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineScanner{s: s}
}

func (ls *lineScanner) next() bool {
	for ls.s.Scan() {
		ls.line++
		t := strings.TrimSpace(ls.s.Text())
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		ls.text = t
		return true
	}
	return false
}

func (ls *lineScanner) err() error {
	if err := ls.s.Err(); err != nil {
		return errors.Format(ls.line+1, "%v", err)
	}
	return nil
}

// header splits a section line such as "*states 12" into its keyword and
// optional count. keyword is empty if the line is not a section line.
func header(line string) (keyword string, count int, hasCount bool, err error) {
	if !strings.HasPrefix(line, "*") {
		return "", 0, false, nil
	}
	f := strings.Fields(line)
	keyword = strings.ToLower(f[0])
	switch len(f) {
	case 1:
		return keyword, 0, false, nil
	case 2:
		n, err := strconv.Atoi(f[1])
		if err != nil || n < 0 {
			return keyword, 0, false, errNotCount
		}
		return keyword, n, true, nil
	default:
		return keyword, 0, false, errNotCount
	}
}

var errNotCount = errors.New(errors.ErrCodeInvalidFormat, "section count must be a non-negative integer")

// ReadPaths decodes a path file from r.
//
// The format is an optional vertex section followed by the paths:
//
//	*vertices 3
//	JFK "New York, NY: John F. Kennedy International"
//	LAX "Los Angeles, CA: Los Angeles International"
//	SFO "San Francisco, CA: San Francisco International"
//	*paths
//	JFK LAX SFO 5
//
// Every path line lists at least one node id followed by a non-negative
// integer weight. Repeated paths are merged by adding their weights. Blank
// lines and lines starting with '#' are ignored. Any other deviation is a
// FormatError naming the offending line.
func ReadPaths(r io.Reader) (*paths.Set, error) {
	ls := newLineScanner(r)
	set := paths.NewSet()

	if !ls.next() {
		if err := ls.err(); err != nil {
			return nil, err
		}
		return nil, errors.Format(1, "empty path file, expected *paths")
	}

	kw, n, hasCount, err := header(ls.text)
	if err != nil {
		return nil, errors.Format(ls.line, "%q: %s", ls.text, errors.UserMessage(err))
	}
	if kw == "*vertices" {
		if !hasCount {
			return nil, errors.Format(ls.line, "*vertices requires a count")
		}
		for i := 0; i < n; i++ {
			if !ls.next() {
				if err := ls.err(); err != nil {
					return nil, err
				}
				return nil, errors.Format(ls.line, "expected %d vertices, found %d", n, i)
			}
			m := vertexLine.FindStringSubmatch(ls.text)
			if m == nil {
				return nil, errors.Format(ls.line, "malformed vertex line %q", ls.text)
			}
			set.SetName(m[1], m[2])
		}
		if !ls.next() {
			if err := ls.err(); err != nil {
				return nil, err
			}
			return nil, errors.Format(ls.line, "missing *paths after vertices")
		}
		if kw, _, _, err = header(ls.text); err != nil {
			return nil, errors.Format(ls.line, "%q: %s", ls.text, errors.UserMessage(err))
		}
	}
	if kw != "*paths" {
		return nil, errors.Format(ls.line, "expected *paths, found %q", ls.text)
	}

	for ls.next() {
		nodes, weight, err := parsePathLine(ls.text)
		if err != nil {
			return nil, errors.Format(ls.line, "%s", errors.UserMessage(err))
		}
		set.Add(nodes, weight)
	}
	if err := ls.err(); err != nil {
		return nil, err
	}
	return set, nil
}

func parsePathLine(line string) ([]string, int, error) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return nil, 0, errors.New(errors.ErrCodeInvalidFormat, "path line %q needs at least one node and a weight", line)
	}
	w, err := strconv.Atoi(f[len(f)-1])
	if err != nil {
		return nil, 0, errors.New(errors.ErrCodeInvalidFormat, "weight %q is not an integer", f[len(f)-1])
	}
	if w < 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidFormat, "negative weight %d", w)
	}
	nodes := f[:len(f)-1]
	for _, id := range nodes {
		if err := errors.ValidateNodeID(id); err != nil {
			return nil, 0, err
		}
	}
	return nodes, w, nil
}

// ImportPaths reads the path file at path. Files ending in .sz are
// decompressed transparently.
func ImportPaths(path string) (*paths.Set, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	set, err := ReadPaths(f)
	if err != nil {
		return nil, wrapFile(path, err)
	}
	return set, nil
}

// ReadStates decodes a state network file from r.
//
//	*states 3
//	0 A "A"
//	1 B "B"
//	2 C "C"
//	*links
//	0 1 5
//	1 2 5
//
// Node indices in the file need not be dense or ordered; nodes receive
// fresh ids in file order and links are remapped accordingly. The *links
// line may carry a count, which is then checked. Node lines that do not
// match `<index> <physId> "<name>"`, duplicate indices or names, and link
// lines with non-numeric fields are FormatErrors; links naming an unknown
// index are ReferentialErrors.
func ReadStates(r io.Reader) (*states.Network, error) {
	ls := newLineScanner(r)
	if !ls.next() {
		if err := ls.err(); err != nil {
			return nil, err
		}
		return nil, errors.Format(1, "empty state file, expected *states")
	}
	kw, n, hasCount, err := header(ls.text)
	if err != nil {
		return nil, errors.Format(ls.line, "%q: %s", ls.text, errors.UserMessage(err))
	}
	if kw != "*states" || !hasCount {
		return nil, errors.Format(ls.line, "expected *states <count>, found %q", ls.text)
	}

	net := states.NewNetwork()
	ids := make(map[int]int, n)
	for i := 0; i < n; i++ {
		if !ls.next() {
			if err := ls.err(); err != nil {
				return nil, err
			}
			return nil, errors.Format(ls.line, "expected %d states, found %d", n, i)
		}
		m := stateLine.FindStringSubmatch(ls.text)
		if m == nil {
			return nil, errors.Format(ls.line, "malformed state line %q", ls.text)
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, errors.Format(ls.line, "state index %q out of range", m[1])
		}
		if _, dup := ids[idx]; dup {
			return nil, errors.Format(ls.line, "duplicate state index %d", idx)
		}
		id, err := net.AddNode(m[2], m[3])
		if err != nil {
			return nil, errors.Format(ls.line, "state %q: %v", m[3], err)
		}
		ids[idx] = id
	}

	if !ls.next() {
		if err := ls.err(); err != nil {
			return nil, err
		}
		return nil, errors.Format(ls.line+1, "missing *links")
	}
	kw, m, hasLinkCount, err := header(ls.text)
	if err != nil {
		return nil, errors.Format(ls.line, "%q: %s", ls.text, errors.UserMessage(err))
	}
	if kw != "*links" {
		if strings.HasPrefix(kw, "*") {
			return nil, errors.Format(ls.line, "expected *links, found %q", ls.text)
		}
		return nil, errors.Format(ls.line, "expected %d states, found more: %q", n, ls.text)
	}

	links := 0
	for ls.next() {
		f := strings.Fields(ls.text)
		if len(f) != 3 {
			return nil, errors.Format(ls.line, "link line %q needs source, target and weight", ls.text)
		}
		src, err1 := strconv.Atoi(f[0])
		tgt, err2 := strconv.Atoi(f[1])
		w, err3 := strconv.ParseFloat(f[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, errors.Format(ls.line, "malformed link line %q", ls.text)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Format(ls.line, "link weight %q is not finite", f[2])
		}
		s, ok := ids[src]
		if !ok {
			return nil, errors.Reference("line %d: link references unknown state %d", ls.line, src)
		}
		t, ok := ids[tgt]
		if !ok {
			return nil, errors.Reference("line %d: link references unknown state %d", ls.line, tgt)
		}
		if err := net.AddLink(s, t, w); err != nil {
			return nil, errors.Format(ls.line, "link %d -> %d: %v", src, tgt, err)
		}
		links++
	}
	if err := ls.err(); err != nil {
		return nil, err
	}
	if hasLinkCount && links != m {
		return nil, errors.Format(ls.line, "expected %d links, found %d", m, links)
	}
	return net, nil
}

// ImportStates reads the state network file at path.
func ImportStates(path string) (*states.Network, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	net, err := ReadStates(f)
	if err != nil {
		return nil, wrapFile(path, err)
	}
	return net, nil
}

// wrapFile prefixes the message of err with the file name, keeping its code.
func wrapFile(path string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		return errors.Wrap(errors.ErrCodeInternal, err, "%s", path)
	}
	return errors.New(code, "%s: %s", path, errors.UserMessage(err))
}
