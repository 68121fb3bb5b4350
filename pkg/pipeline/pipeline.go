// Package pipeline runs sprites through the compositing stages.
//
// Each sprite is processed sequentially:
//
//  1. Render: draw a procedural sprite, or load an upstream bitmap/SVG
//  2. Glow: optionally add a soft halo
//  3. Key: remove a flat backdrop by chroma keying
//  4. Place: crop to content and anchor on the base canvas (accessories only)
//  5. Export: derive the 3x/2x/1x variants and encode them
//  6. Write: commit the imageset atomically
//
// A sprite's files are only written after every stage has succeeded. Sprites in
// a batch run in parallel on a bounded worker group; each worker owns its own
// images and a failing sprite never affects its siblings.
//
// # Usage
//
//	runner := pipeline.NewRunner(cfg, logger)
//	sprites, err := pipeline.SpritesFromConfig(cfg)
//	batch := runner.Run(ctx, sprites)
//	for _, res := range batch.Results {
//	    fmt.Println(res.Sprite.Name, res.Status)
//	}
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/spriteforge/pkg/anchor"
	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/export"
	"github.com/matzehuels/spriteforge/pkg/raster"
	"github.com/matzehuels/spriteforge/pkg/shape"
)

// Stage names used in logs, hooks and error prefixes.
const (
	StageRender = "render"
	StageGlow   = "glow"
	StageKey    = "key"
	StagePlace  = "place"
	StageExport = "export"
	StageWrite  = "write"
)

// Status is the outcome of one sprite.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped" // no visible content; nothing written
	StatusFailed  Status = "failed"
)

// =============================================================================
// Sprite - Job Description
// =============================================================================

// Procedural selects a catalog shape.
type Procedural struct {
	Kind    shape.Kind
	Variant string
	Color   raster.ColorSpec
	Accent  raster.ColorSpec
}

// Sprite describes one job. Exactly one of Procedural and Path is set.
type Sprite struct {
	Name       string
	Procedural *Procedural
	Path       string          // upstream image file
	Category   anchor.Category // empty: no crop/anchor step
	Glow       bool
	Key        bool
}

// Validate checks the job description.
func (s Sprite) Validate() error {
	if err := errors.ValidateSpriteName(s.Name); err != nil {
		return err
	}
	switch {
	case s.Procedural == nil && s.Path == "":
		return errors.New(errors.ErrCodeInvalidInput, "sprite %q has no source", s.Name)
	case s.Procedural != nil && s.Path != "":
		return errors.New(errors.ErrCodeInvalidInput, "sprite %q has two sources", s.Name)
	case s.Path != "":
		return errors.ValidatePath(s.Path)
	}
	return nil
}

// Source describes where the sprite comes from, for display.
func (s Sprite) Source() string {
	if s.Procedural != nil {
		return shape.Spec{Kind: s.Procedural.Kind, Variant: s.Procedural.Variant, Color: s.Procedural.Color}.String()
	}
	return s.Path
}

// SpritesFromConfig converts the configured catalog into jobs.
func SpritesFromConfig(cfg *config.Config) ([]Sprite, error) {
	out := make([]Sprite, 0, len(cfg.Sprites))
	for _, e := range cfg.Sprites {
		s := Sprite{Name: e.Name, Path: e.Source, Glow: e.Glow, Key: !e.SkipKey}
		if e.Category != "" {
			cat, err := anchor.ParseCategory(e.Category)
			if err != nil {
				return nil, err
			}
			s.Category = cat
		}
		if e.Kind != "" {
			p := &Procedural{Kind: shape.Kind(e.Kind), Variant: e.Variant}
			var err error
			if e.Color != "" {
				if p.Color, err = cfg.Color(e.Color); err != nil {
					return nil, err
				}
			}
			if e.Accent != "" {
				if p.Accent, err = cfg.Color(e.Accent); err != nil {
					return nil, err
				}
			}
			s.Procedural = p
		}
		out = append(out, s)
	}
	return out, nil
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of one sprite.
type Result struct {
	Sprite   Sprite
	Status   Status
	Err      error
	Variants []export.Variant
	Dir      string // written imageset, empty unless Status is ok
	Overflow bool   // placed content extends past its anchor band
	Stats    Stats
}

// Stats contains per-stage timing.
type Stats struct {
	RenderTime time.Duration
	GlowTime   time.Duration
	KeyTime    time.Duration
	PlaceTime  time.Duration
	ExportTime time.Duration
	WriteTime  time.Duration
	Total      time.Duration
}

// Batch is the outcome of a Run.
type Batch struct {
	RunID    string
	Results  []Result // same order as the input sprites
	Duration time.Duration
}

// Count returns the number of results with status s.
func (b *Batch) Count(s Status) int {
	n := 0
	for _, r := range b.Results {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Failed reports whether any sprite failed.
func (b *Batch) Failed() bool {
	return b.Count(StatusFailed) > 0
}

// Summary renders the counts for log lines.
func (b *Batch) Summary() string {
	return fmt.Sprintf("%d ok, %d skipped, %d failed", b.Count(StatusOK), b.Count(StatusSkipped), b.Count(StatusFailed))
}
