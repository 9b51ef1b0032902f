package io

import (
	"bufio"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/itinerary"
)

// delimiters are the candidates tried by SniffDelimiter, in tie-break order.
var delimiters = []rune{',', '\t', ';', '|'}

// SniffDelimiter picks the delimiter of a delimited header line: the
// candidate occurring most often. It fails if none occurs.
func SniffDelimiter(header string) (rune, error) {
	best, bestCount := rune(0), 0
	for _, d := range delimiters {
		if c := strings.Count(header, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	if bestCount == 0 {
		return 0, errors.Format(1, "could not determine delimiter of header %q", strings.TrimSpace(header))
	}
	return best, nil
}

// newSniffedReader reads the header line of r, detects its delimiter and
// returns a csv.Reader positioned at the header together with the header fields.
func newSniffedReader(r io.Reader) (*csv.Reader, []string, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if strings.TrimSpace(header) == "" {
		return nil, nil, errors.Format(1, "missing header line")
	}
	delim, err := SniffDelimiter(header)
	if err != nil {
		return nil, nil, err
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.Comma = delim
	cr.ReuseRecord = true
	fields, err := cr.Read()
	if err != nil {
		return nil, nil, csvError(err)
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
	}
	return cr, cols, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.Format(pe.Line, "%v", pe.Err)
	}
	return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read record")
}

func columnIndex(header []string, names ...string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[h] = i
	}
	idx := make([]int, len(names))
	for i, n := range names {
		p, ok := pos[n]
		if !ok {
			return nil, errors.Format(1, "missing column %q in header %v", n, header)
		}
		idx[i] = p
	}
	return idx, nil
}

// ReadLegs decodes delimited leg records from r and calls fn for each leg
// in input order. The delimiter is detected from the header line and the
// fields are located by the names in cols. It returns the number of legs read.
//
// A record with the wrong field count, a non-numeric sequence number or an
// unusable node id is a FormatError naming the line.
func ReadLegs(r io.Reader, cols itinerary.Columns, fn func(itinerary.Leg) error) (int, error) {
	cr, header, err := newSniffedReader(r)
	if err != nil {
		return 0, err
	}
	idx, err := columnIndex(header, cols.Names()...)
	if err != nil {
		return 0, err
	}
	itinIdx, mktIdx, seqIdx, srcIdx, tgtIdx := idx[0], idx[1], idx[2], idx[3], idx[4]

	n := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, csvError(err)
		}
		line, _ := cr.FieldPos(0)

		seqField := strings.TrimSpace(rec[seqIdx])
		seq, err := strconv.Atoi(seqField)
		if err != nil {
			// Some exports write integral columns as floats.
			f, ferr := strconv.ParseFloat(seqField, 64)
			if ferr != nil || f != float64(int(f)) {
				return n, errors.Format(line, "sequence number %q is not an integer", rec[seqIdx])
			}
			seq = int(f)
		}
		l := itinerary.Leg{
			ItinID: strings.TrimSpace(rec[itinIdx]),
			MktID:  strings.TrimSpace(rec[mktIdx]),
			SeqNum: seq,
			Source: strings.TrimSpace(rec[srcIdx]),
			Target: strings.TrimSpace(rec[tgtIdx]),
		}
		if l.ItinID == "" {
			return n, errors.Format(line, "empty itinerary id")
		}
		for _, id := range []string{l.Source, l.Target} {
			if err := errors.ValidateNodeID(id); err != nil {
				return n, errors.Format(line, "%s", errors.UserMessage(err))
			}
		}
		n++
		if err := fn(l); err != nil {
			return n, err
		}
	}
}

// ReadNames decodes a delimited name lookup table with "Code" and
// "Description" columns and attaches each name to set.
func ReadNames(r io.Reader, set namer) (int, error) {
	cr, header, err := newSniffedReader(r)
	if err != nil {
		return 0, err
	}
	idx, err := columnIndex(header, "Code", "Description")
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, csvError(err)
		}
		set.SetName(strings.TrimSpace(rec[idx[0]]), strings.TrimSpace(rec[idx[1]]))
		n++
	}
}

type namer interface {
	SetName(id, name string)
}
