package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spriteforge/pkg/anchor"
	"github.com/matzehuels/spriteforge/pkg/chroma"
	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/export"
	"github.com/matzehuels/spriteforge/pkg/fx"
	"github.com/matzehuels/spriteforge/pkg/observability"
	"github.com/matzehuels/spriteforge/pkg/raster"
	"github.com/matzehuels/spriteforge/pkg/shape"
	"github.com/matzehuels/spriteforge/pkg/source"
)

// Runner executes sprites with a fixed configuration.
//
// The Runner is stateless apart from its read-only configuration, logger and
// hooks. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Config *config.Config
	Logger *log.Logger
	Hooks  observability.Hooks
}

// NewRunner creates a runner. A nil config selects the defaults and a nil
// logger the default logger.
func NewRunner(cfg *config.Config, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Config: cfg, Logger: logger}
}

// stages holds the stage settings derived once per batch.
type stages struct {
	canvas     shape.Canvas
	glow       fx.GlowOptions
	remover    *chroma.Remover
	compositor *anchor.Compositor
	exporter   *export.Exporter
	output     string
	workers    int
}

func (r *Runner) prepare() (*stages, error) {
	cfg := r.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	glow, err := cfg.GlowOptions()
	if err != nil {
		return nil, err
	}
	remover, err := cfg.Remover()
	if err != nil {
		return nil, err
	}
	return &stages{
		canvas:     shape.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height),
		glow:       glow,
		remover:    remover,
		compositor: cfg.Compositor(),
		exporter:   cfg.Exporter(),
		output:     cfg.Export.Output,
		workers:    cfg.WorkerCount(),
	}, nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Process runs one sprite through every stage.
func (r *Runner) Process(ctx context.Context, s Sprite) Result {
	st, err := r.prepare()
	if err != nil {
		return Result{Sprite: s, Status: StatusFailed, Err: err}
	}
	return r.process(ctx, st, r.Hooks.OrNoop(), r.logger(), s)
}

// Run processes sprites in parallel and returns their results in input order.
// A failing sprite does not cancel the others. When ctx is cancelled no new
// sprites are started; the remaining ones fail with the context error.
func (r *Runner) Run(ctx context.Context, sprites []Sprite) *Batch {
	start := time.Now()
	runID := uuid.NewString()
	hooks := r.Hooks.OrNoop()
	logger := r.logger().With("run", runID[:8])

	batch := &Batch{RunID: runID, Results: make([]Result, len(sprites))}
	hooks.Batch.OnBatchStart(ctx, runID, len(sprites))

	st, err := r.prepare()
	if err != nil {
		for i, s := range sprites {
			batch.Results[i] = Result{Sprite: s, Status: StatusFailed, Err: err}
		}
		batch.Duration = time.Since(start)
		hooks.Batch.OnBatchComplete(ctx, runID, 0, 0, len(sprites), batch.Duration)
		return batch
	}

	logger.Info("starting batch", "sprites", len(sprites), "workers", st.workers)

	dup := duplicates(sprites)
	g := new(errgroup.Group)
	g.SetLimit(st.workers)
	for i, s := range sprites {
		if dup[s.Name] {
			batch.Results[i] = Result{Sprite: s, Status: StatusFailed,
				Err: errors.New(errors.ErrCodeInvalidInput, "sprite name %q used more than once", s.Name)}
			hooks.Batch.OnSpriteDone(ctx, runID, s.Name, string(StatusFailed), 0, batch.Results[i].Err)
			continue
		}
		if err := ctx.Err(); err != nil {
			batch.Results[i] = Result{Sprite: s, Status: StatusFailed, Err: err}
			hooks.Batch.OnSpriteDone(ctx, runID, s.Name, string(StatusFailed), 0, err)
			continue
		}
		g.Go(func() error {
			res := r.process(ctx, st, hooks, logger, s)
			batch.Results[i] = res
			hooks.Batch.OnSpriteDone(ctx, runID, s.Name, string(res.Status), res.Stats.Total, res.Err)
			return nil
		})
	}
	_ = g.Wait()

	batch.Duration = time.Since(start)
	hooks.Batch.OnBatchComplete(ctx, runID,
		batch.Count(StatusOK), batch.Count(StatusSkipped), batch.Count(StatusFailed), batch.Duration)
	logger.Info("batch complete", "result", batch.Summary(), "duration", batch.Duration)
	return batch
}

func duplicates(sprites []Sprite) map[string]bool {
	seen := make(map[string]int, len(sprites))
	for _, s := range sprites {
		seen[s.Name]++
	}
	dup := make(map[string]bool)
	for name, n := range seen {
		if n > 1 {
			dup[name] = true
		}
	}
	return dup
}

// =============================================================================
// Per-sprite stages
// =============================================================================

func (r *Runner) process(ctx context.Context, st *stages, hooks observability.Hooks, logger *log.Logger, s Sprite) Result {
	start := time.Now()
	res := Result{Sprite: s}
	logger = logger.With("sprite", s.Name)

	finish := func(status Status, err error) Result {
		res.Status, res.Err = status, err
		res.Stats.Total = time.Since(start)
		switch status {
		case StatusFailed:
			logger.Error("sprite failed", "err", err)
		case StatusSkipped:
			logger.Warn("sprite skipped", "reason", "no visible content")
		default:
			logger.Info("sprite written", "dir", res.Dir, "duration", res.Stats.Total)
		}
		return res
	}

	if err := s.Validate(); err != nil {
		return finish(StatusFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return finish(StatusFailed, err)
	}

	run := func(stage string, d *time.Duration, fn func() error) error {
		hooks.Stage.OnStageStart(ctx, s.Name, stage)
		t := time.Now()
		err := fn()
		*d = time.Since(t)
		hooks.Stage.OnStageComplete(ctx, s.Name, stage, *d, err)
		logger.Debug("stage done", "stage", stage, "duration", *d)
		if err != nil {
			return fmt.Errorf("%s: %w", stage, err)
		}
		return nil
	}

	var img raster.RasterImage
	if err := run(StageRender, &res.Stats.RenderTime, func() (err error) {
		img, err = r.render(st, s)
		return err
	}); err != nil {
		return finish(StatusFailed, err)
	}

	if s.Glow {
		if err := run(StageGlow, &res.Stats.GlowTime, func() error {
			img = fx.Glow(img, st.glow)
			return nil
		}); err != nil {
			return finish(StatusFailed, err)
		}
	}

	if s.Key {
		if err := run(StageKey, &res.Stats.KeyTime, func() (err error) {
			img, err = st.remover.Remove(img)
			return err
		}); err != nil {
			return finish(StatusFailed, err)
		}
	}

	if s.Category != "" {
		err := run(StagePlace, &res.Stats.PlaceTime, func() error {
			pl, err := st.compositor.Place(img, s.Category)
			if err != nil {
				return err
			}
			img, res.Overflow = pl.Image, pl.Overflow
			return nil
		})
		if errors.Is(err, errors.ErrCodeEmptyContent) {
			return finish(StatusSkipped, err)
		}
		if err != nil {
			return finish(StatusFailed, err)
		}
		if res.Overflow {
			logger.Warn("content extends past its anchor band", "category", s.Category)
		}
	}

	var files []export.File
	var manifest export.Manifest
	if err := run(StageExport, &res.Stats.ExportTime, func() (err error) {
		if res.Variants, err = st.exporter.Variants(s.Name, img); err != nil {
			return err
		}
		manifest = export.NewManifest(res.Variants)
		files, err = export.Encode(res.Variants)
		return err
	}); err != nil {
		return finish(StatusFailed, err)
	}

	if err := run(StageWrite, &res.Stats.WriteTime, func() (err error) {
		res.Dir, err = export.WriteImageSet(st.output, s.Name, files, manifest)
		return err
	}); err != nil {
		return finish(StatusFailed, err)
	}
	return finish(StatusOK, nil)
}

// render produces the master raster on the configured canvas.
func (r *Runner) render(st *stages, s Sprite) (raster.RasterImage, error) {
	if p := s.Procedural; p != nil {
		ops, err := shape.Build(st.canvas, shape.Spec{Kind: p.Kind, Variant: p.Variant, Color: p.Color, Accent: p.Accent})
		if err != nil {
			return nil, err
		}
		return shape.Render(st.canvas.W, st.canvas.H, ops)
	}

	img, err := source.Load(s.Path, st.canvas.W, st.canvas.H)
	if err != nil {
		return nil, err
	}
	// Placed sprites are rescaled by the compositor.
	if s.Category != "" {
		return img, nil
	}
	return source.Fit(img, st.canvas.W, st.canvas.H)
}
