package pipeline

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/statenet/pkg/observability"
)

// loadAll runs load for every input with at most limit loads in flight and
// returns the results in input order. limit <= 0 uses GOMAXPROCS. The first
// failure cancels the context passed to the remaining loads.
func loadAll[T any](ctx context.Context, inputs []string, limit int, load func(ctx context.Context, path string) (T, error)) ([]T, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	out := make([]T, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			v, err := load(gctx, path)
			observability.IO().OnFileLoad(gctx, path, time.Since(start), err)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

