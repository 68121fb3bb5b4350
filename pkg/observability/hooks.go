// Package observability provides hooks for progress reporting and metrics.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hooks are passed to the pipeline runner
// explicitly; there is no global registry, so two runners in one process can
// report to different sinks.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let the caller inject its own implementation per runner
//
// # Usage
//
//	runner := &pipeline.Runner{
//	    Config: cfg,
//	    Hooks:  observability.Hooks{Batch: myProgress},
//	}
//
// The runner calls hooks around every stage and sprite:
//
//	hooks.Stage.OnStageStart(ctx, "mavi_sapka", "key")
//	// ... keying ...
//	hooks.Stage.OnStageComplete(ctx, "mavi_sapka", "key", duration, err)
//
// Hooks may be called from several goroutines at once.
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Stage Hooks
// =============================================================================

// StageHooks receives events for each pipeline stage of a sprite.
type StageHooks interface {
	// OnStageStart records the start of a stage ("render", "key", ...).
	OnStageStart(ctx context.Context, sprite, stage string)

	// OnStageComplete records the end of a stage.
	OnStageComplete(ctx context.Context, sprite, stage string, duration time.Duration, err error)
}

// =============================================================================
// Batch Hooks
// =============================================================================

// BatchHooks receives events for a batch of sprites.
type BatchHooks interface {
	// OnBatchStart records the start of a run over total sprites.
	OnBatchStart(ctx context.Context, runID string, total int)

	// OnSpriteDone records the outcome of one sprite ("ok", "skipped", "failed").
	OnSpriteDone(ctx context.Context, runID, sprite, status string, duration time.Duration, err error)

	// OnBatchComplete records the end of a run.
	OnBatchComplete(ctx context.Context, runID string, ok, skipped, failed int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string, string)                          {}
func (NoopStageHooks) OnStageComplete(context.Context, string, string, time.Duration, error) {}

// NoopBatchHooks is a no-op implementation of BatchHooks.
type NoopBatchHooks struct{}

func (NoopBatchHooks) OnBatchStart(context.Context, string, int)                                  {}
func (NoopBatchHooks) OnSpriteDone(context.Context, string, string, string, time.Duration, error) {}
func (NoopBatchHooks) OnBatchComplete(context.Context, string, int, int, int, time.Duration)      {}

// =============================================================================
// Hook Set
// =============================================================================

// Hooks bundles the hook categories. Nil members mean no-op.
type Hooks struct {
	Stage StageHooks
	Batch BatchHooks
}

// OrNoop returns h with every nil member replaced by its no-op implementation.
func (h Hooks) OrNoop() Hooks {
	if h.Stage == nil {
		h.Stage = NoopStageHooks{}
	}
	if h.Batch == nil {
		h.Batch = NoopBatchHooks{}
	}
	return h
}
