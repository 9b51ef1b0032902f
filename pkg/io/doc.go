// Package io reads and writes the text formats of the pipeline.
//
// # Overview
//
// Every stage consumes and produces plain line-oriented text so intermediate
// results can be inspected, diffed and fed to external tools:
//
//   - Leg records: delimited input with a header line ([ReadLegs])
//   - Path files: weighted node sequences ([ReadPaths], [WritePaths])
//   - State network files: state table plus links ([ReadStates], [WriteStates])
//   - Multilayer files: same shape, link count on the *links line ([WriteMultilayer])
//   - Name tables: Code/Description lookups for vertices ([ReadNames])
//
// Blank lines and lines starting with '#' are ignored by the path and state
// readers.
//
// # Path Format
//
//	*paths
//	JFK LAX SFO 5
//	BOS JFK 2
//
// Each line is a space separated node sequence followed by its integer
// weight. An optional section naming the vertices may precede *paths:
//
//	*vertices 2
//	JFK "New York, NY: John F. Kennedy International"
//	LAX "Los Angeles, CA: Los Angeles International"
//
// # State Network Format
//
//	*states 3
//	0 JFK "BOS JFK"
//	1 LAX "JFK LAX"
//	2 SFO "LAX SFO"
//	*links
//	0 1 5
//	1 2 5
//
// Indices are zero-based in first-encounter order. The second field is the
// physical node the state sits on and the quoted field its label. Weights are
// written in the shortest form that parses back to the same value, so a
// written network re-reads to identical names, physical ids and weights.
//
// # Leg Records
//
// [ReadLegs] sniffs the delimiter of the header line among ',', tab, ';' and
// '|', then locates the itinerary id, market id, sequence number, origin and
// destination columns by name. The column names are supplied as an
// [itinerary.Columns], usually from [itinerary.ResolveColumns].
//
// # Files
//
// The Import*/Export* helpers open and create files through [Open] and
// [Create]. A path ending in ".sz" is read and written in the snappy framing
// format, so large inputs can stay compressed on disk:
//
//	set, err := io.ImportPaths("2011_1_Coupon_paths.net.sz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// Malformed input is reported as an INVALID_FORMAT error naming the line.
// Links that reference unknown state indices are UNKNOWN_REFERENCE errors.
// A missing file is FILE_NOT_FOUND. See package errors for the codes.
//
// [itinerary.Columns]: github.com/matzehuels/statenet/pkg/itinerary.Columns
// [itinerary.ResolveColumns]: github.com/matzehuels/statenet/pkg/itinerary.ResolveColumns
package io
