// Package observability provides hooks for metrics and tracing of pipeline runs.
//
// The pipeline emits events through registered hooks without depending on a
// specific backend. Hooks default to no-ops; a program registers its own
// implementations once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&stageTimer{})
//	    observability.SetIOHooks(&fileCounter{})
//	    // ... run commands
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStageStart(ctx, "states", inputs)
//	// ... run the stage ...
//	observability.Pipeline().OnStageComplete(ctx, "states", records, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives events from pipeline stages.
type PipelineHooks interface {
	// OnStageStart is called before a stage reads its inputs.
	OnStageStart(ctx context.Context, stage string, inputs []string)

	// OnStageComplete is called when a stage returns. records counts the
	// stage's primary input unit (legs, paths or states).
	OnStageComplete(ctx context.Context, stage string, records int, duration time.Duration, err error)
}

// IOHooks receives events from input file loading.
type IOHooks interface {
	// OnFileLoad is called after one input file has been read and decoded.
	OnFileLoad(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string, []string) {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {
}

// NoopIOHooks is a no-op implementation of IOHooks.
type NoopIOHooks struct{}

func (NoopIOHooks) OnFileLoad(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	ioHooks       IOHooks       = NoopIOHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetIOHooks registers custom file loading hooks. A nil h is ignored.
func SetIOHooks(h IOHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ioHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// IO returns the registered file loading hooks.
// Implementations must be safe for concurrent use: files load in parallel.
func IO() IOHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ioHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	ioHooks = NoopIOHooks{}
}
