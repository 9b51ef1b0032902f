// Package pkg provides the core libraries for statenet state network construction.
//
// # Overview
//
// Statenet turns flight itinerary records into higher-order Markov state
// networks. A state remembers the last k airports of a trip, so the network
// preserves where travellers came from when it predicts where they go next.
// The pkg directory is organized into these areas:
//
//  1. [itinerary], [paths], [states], [multilayer] - Domain models and algorithms
//  2. [io] - Text formats for legs, paths and state networks
//  3. [pipeline] - Orchestration (legs → paths → states → multilayer)
//  4. [config], [errors], [observability] - Configuration, error codes and hooks
//  5. [render] - Graphviz diagrams of state networks
//
// # Architecture
//
// The typical data flow through statenet:
//
//	Leg records (CSV)
//	         ↓
//	    [itinerary] package (chain legs into paths)
//	         ↓
//	    [paths] package (weighted path sets, filter and split)
//	         ↓
//	    [states] package (order-k state network)
//	         ↓
//	    [multilayer] package (merge periods with a relax rate)
//	         ↓
//	    .net files / DOT / SVG
//
// # Quick Start
//
// Expand a path file into a second-order network:
//
//	import (
//	    "github.com/matzehuels/statenet/pkg/io"
//	    "github.com/matzehuels/statenet/pkg/states"
//	)
//
//	set, _ := io.ImportPaths("2011_1_Coupon_paths.net")
//	exp, _ := states.NewExpander(2, 2)
//	exp.AddSet(set)
//	_ = io.ExportStates(exp.Network(), "2011_1_states_2.net")
//
// Or run a whole stage with logging and default file names:
//
//	opts := pipeline.DefaultOptions()
//	opts.Year, opts.Quarters = 2011, []int{1, 2}
//	opts.Order = 2
//	res, err := pipeline.NewRunner(nil).ExpandStates(ctx, opts)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/states/...         # Specific package
//
// [itinerary]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/itinerary
// [paths]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/paths
// [states]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/states
// [multilayer]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/multilayer
// [io]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/statenet/pkg/render
package pkg
