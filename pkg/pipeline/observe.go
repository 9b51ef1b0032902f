package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/statenet/pkg/observability"
)

// Stage names reported to observability hooks.
const (
	StagePaths      = "paths"
	StageStates     = "states"
	StageMultilayer = "multilayer"
	StageIntra      = "intra"
	StageFilter     = "filter"
)

// counted is a stage result that knows how many records the stage consumed.
type counted interface{ records() int }

func (r *PathsResult) records() int {
	if r == nil {
		return 0
	}
	return r.Legs
}

func (r *StatesResult) records() int {
	if r == nil {
		return 0
	}
	return r.Stats.Paths
}

func (r *MultilayerResult) records() int {
	if r == nil {
		return 0
	}
	return r.Stats.Nodes
}

func (r *IntraResult) records() int {
	if r == nil {
		return 0
	}
	return r.Paths
}

func (r *FilterResult) records() int {
	if r == nil {
		return 0
	}
	return r.Stats.Read
}

// observe reports the start of stage and returns the matching completion callback.
func observe(ctx context.Context, stage string, inputs []string) func(res counted, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage, inputs)
	return func(res counted, err error) {
		hooks.OnStageComplete(ctx, stage, res.records(), time.Since(start), err)
	}
}
