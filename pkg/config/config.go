// Package config loads the spriteforge configuration from TOML.
//
// Every tunable of the pipeline lives here: canvas size, chroma-key tolerance
// and estimator, glow, anchor policies, export scales, the named colour palette
// and the sprite catalog. Stages never read globals; they receive the values
// they need from a [Config].
//
// A config file only needs the keys it changes:
//
//	[chroma]
//	tolerance = 40
//	estimator = "edge-median"
//
//	[anchors.hat]
//	target_width = 130
//	offset_y = 0
//	band_height = 160
//
// Tables under [anchors] and [palette] replace the matching default entry and
// keep the others. A [[sprites]] list replaces the default catalog.
package config

import (
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spriteforge/pkg/anchor"
	"github.com/matzehuels/spriteforge/pkg/chroma"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/export"
	"github.com/matzehuels/spriteforge/pkg/fx"
	"github.com/matzehuels/spriteforge/pkg/raster"
	"github.com/matzehuels/spriteforge/pkg/shape"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "spriteforge.toml"

// Config is the full pipeline configuration.
type Config struct {
	Canvas  Canvas                   `toml:"canvas"`
	Chroma  Chroma                   `toml:"chroma"`
	Glow    Glow                     `toml:"glow"`
	Export  Export                   `toml:"export"`
	Workers int                      `toml:"workers"`
	Anchors map[string]anchor.Policy `toml:"anchors"`
	Palette map[string]string        `toml:"palette"`
	Sprites []Sprite                 `toml:"sprites"`
}

// Canvas is the base character canvas.
type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Chroma configures background removal.
type Chroma struct {
	Tolerance int    `toml:"tolerance"`
	Estimator string `toml:"estimator"`
}

// Glow configures the halo filter.
type Glow struct {
	Radius float64 `toml:"radius"`
	Color  string  `toml:"color"`
}

// Export configures variant derivation and output.
type Export struct {
	Output string         `toml:"output"`
	Filter string         `toml:"filter"`
	Scales []export.Scale `toml:"scales"`
}

// Sprite is one catalog entry. Either Kind (procedural) or Source (file) is set.
type Sprite struct {
	Name     string `toml:"name"`
	Kind     string `toml:"kind,omitempty"`
	Variant  string `toml:"variant,omitempty"`
	Color    string `toml:"color,omitempty"`
	Accent   string `toml:"accent,omitempty"`
	Source   string `toml:"source,omitempty"`
	Category string `toml:"category,omitempty"`
	Glow     bool   `toml:"glow,omitempty"`
	SkipKey  bool   `toml:"skip_key,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	anchors := make(map[string]anchor.Policy)
	for c, p := range anchor.DefaultPolicies() {
		anchors[string(c)] = p
	}
	return &Config{
		Canvas: Canvas{Width: shape.DesignW, Height: shape.DesignH},
		Chroma: Chroma{Tolerance: chroma.DefaultTolerance, Estimator: chroma.EstimatorCorner},
		Glow:   Glow{Radius: fx.DefaultGlow.Radius, Color: fx.DefaultGlow.Color.Hex()},
		Export: Export{
			Output: "Assets.xcassets",
			Filter: export.FilterLanczos,
			Scales: export.DefaultScales(),
		},
		Workers: 0,
		Anchors: anchors,
		Palette: DefaultPalette(),
		Sprites: DefaultSprites(),
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes a TOML document on top of the defaults and validates it.
func Parse(doc string) (*Config, error) {
	cfg := Default()
	anchors, palette := cfg.Anchors, cfg.Palette
	sprites, scales := cfg.Sprites, cfg.Export.Scales
	cfg.Anchors, cfg.Palette = nil, nil
	cfg.Sprites, cfg.Export.Scales = nil, nil

	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}

	for k, v := range cfg.Anchors {
		anchors[k] = v
	}
	for k, v := range cfg.Palette {
		palette[k] = v
	}
	cfg.Anchors, cfg.Palette = anchors, palette
	if !md.IsDefined("sprites") {
		cfg.Sprites = sprites
	}
	if !md.IsDefined("export", "scales") {
		cfg.Export.Scales = scales
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode config")
	}
	return nil
}

// WorkerCount returns the batch concurrency, defaulting to the CPU count.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// =============================================================================
// Derived stage settings
// =============================================================================

// Policies returns the anchor policies keyed by category.
func (c *Config) Policies() map[anchor.Category]anchor.Policy {
	out := make(map[anchor.Category]anchor.Policy, len(c.Anchors))
	for k, v := range c.Anchors {
		out[anchor.Category(k)] = v
	}
	return out
}

// Compositor returns an anchor compositor for the configured canvas.
func (c *Config) Compositor() *anchor.Compositor {
	return &anchor.Compositor{CanvasW: c.Canvas.Width, CanvasH: c.Canvas.Height, Policies: c.Policies()}
}

// Remover returns the configured background remover.
func (c *Config) Remover() (*chroma.Remover, error) {
	est, err := chroma.ParseEstimator(c.Chroma.Estimator)
	if err != nil {
		return nil, err
	}
	return &chroma.Remover{Estimator: est, Tolerance: c.Chroma.Tolerance}, nil
}

// GlowOptions returns the configured glow.
func (c *Config) GlowOptions() (fx.GlowOptions, error) {
	col, err := c.Color(c.Glow.Color)
	if err != nil {
		return fx.GlowOptions{}, err
	}
	return fx.GlowOptions{Radius: c.Glow.Radius, Color: col}, nil
}

// Exporter returns the configured exporter.
func (c *Config) Exporter() *export.Exporter {
	return &export.Exporter{Scales: append([]export.Scale(nil), c.Export.Scales...), Filter: c.Export.Filter}
}

// Color resolves a palette name or a hex string.
func (c *Config) Color(s string) (raster.ColorSpec, error) {
	if hex, ok := c.Palette[s]; ok {
		s = hex
	}
	col, err := raster.ParseHex(s)
	if err != nil {
		return raster.ColorSpec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "colour %q", s)
	}
	return col, nil
}

// PaletteNames returns the palette keys sorted.
func (c *Config) PaletteNames() []string {
	names := make([]string, 0, len(c.Palette))
	for k := range c.Palette {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
