package config

import (
	"github.com/matzehuels/spriteforge/pkg/anchor"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/export"
	"github.com/matzehuels/spriteforge/pkg/shape"
)

// Validate checks every section of c.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative")
	}
	r, err := c.Remover()
	if err == nil {
		err = r.Validate()
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "chroma")
	}
	if c.Glow.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "glow radius must not be negative")
	}
	if _, err := c.GlowOptions(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "glow")
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := anchor.CheckBands(c.Policies(), c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	for _, name := range c.PaletteNames() {
		if _, err := c.Color(c.Palette[name]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette %s", name)
		}
	}
	return c.validateSprites()
}

func (c *Config) validateExport() error {
	if err := errors.ValidatePath(c.Export.Output); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export output")
	}
	if err := export.ValidateScales(c.Export.Scales); err != nil {
		return err
	}
	if _, err := export.ParseFilter(c.Export.Filter); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export filter")
	}
	return nil
}

func (c *Config) validateSprites() error {
	seen := make(map[string]bool, len(c.Sprites))
	kinds := make(map[string]bool)
	for _, k := range shape.Kinds() {
		kinds[string(k)] = true
	}

	for i, s := range c.Sprites {
		if err := errors.ValidateSpriteName(s.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sprite %d", i)
		}
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate sprite %q", s.Name)
		}
		seen[s.Name] = true

		switch {
		case s.Kind != "" && s.Source != "":
			return errors.New(errors.ErrCodeInvalidConfig, "sprite %q sets both kind and source", s.Name)
		case s.Kind == "" && s.Source == "":
			return errors.New(errors.ErrCodeInvalidConfig, "sprite %q needs a kind or a source", s.Name)
		case s.Kind != "" && !kinds[s.Kind]:
			return errors.New(errors.ErrCodeInvalidConfig, "sprite %q: unknown kind %q", s.Name, s.Kind)
		}
		if s.Kind != "" && s.Kind != string(shape.KindGhost) {
			if _, err := c.Color(s.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sprite %q", s.Name)
			}
		}
		if s.Accent != "" {
			if _, err := c.Color(s.Accent); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sprite %q accent", s.Name)
			}
		}
		if s.Category != "" {
			cat, err := anchor.ParseCategory(s.Category)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sprite %q", s.Name)
			}
			if _, ok := c.Anchors[string(cat)]; !ok {
				return errors.New(errors.ErrCodeInvalidConfig, "sprite %q: no anchor policy for %q", s.Name, cat)
			}
		}
	}
	return nil
}
