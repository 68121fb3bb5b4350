package anchor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Category is an accessory slot on the base character.
type Category string

// Built-in categories. Further categories can be added through configuration.
const (
	Hat     Category = "hat"
	Scarf   Category = "scarf"
	Sweater Category = "sweater"
)

// Categories lists the built-in categories top to bottom.
func Categories() []Category {
	return []Category{Hat, Scarf, Sweater}
}

// ParseCategory normalizes s to a Category. Any well-formed name is accepted;
// whether a policy exists for it is decided by the compositor.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if err := errors.ValidateSpriteName(name); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidCategory, err, "invalid category %q", s)
	}
	return Category(name), nil
}

// Policy places one category on the base canvas.
type Policy struct {
	// TargetWidth is the content width in pixels. When zero, TargetWidthRatio
	// of the canvas width is used instead.
	TargetWidth      int     `toml:"target_width,omitempty"`
	TargetWidthRatio float64 `toml:"target_width_ratio,omitempty"`

	// OffsetY is the top edge of the placed content.
	OffsetY int `toml:"offset_y"`

	// BandHeight is the vertical extent reserved for the category, starting at
	// OffsetY. Bands of different categories must not overlap.
	BandHeight int `toml:"band_height"`
}

// DefaultPolicies returns the policies for a 300x400 base canvas.
func DefaultPolicies() map[Category]Policy {
	return map[Category]Policy{
		Hat:     {TargetWidth: 120, OffsetY: 5, BandHeight: 155},
		Scarf:   {TargetWidth: 140, OffsetY: 165, BandHeight: 60},
		Sweater: {TargetWidth: 160, OffsetY: 230, BandHeight: 170},
	}
}

// Width resolves the target width on a canvas of width canvasW.
func (p Policy) Width(canvasW int) int {
	if p.TargetWidth > 0 {
		return p.TargetWidth
	}
	return raster.Scaled(canvasW, p.TargetWidthRatio)
}

// Band returns the reserved rows [top, bottom).
func (p Policy) Band() (top, bottom int) {
	return p.OffsetY, p.OffsetY + p.BandHeight
}

// Validate checks p against a canvas of the given size.
func (p Policy) Validate(canvasW, canvasH int) error {
	switch {
	case p.TargetWidth < 0 || p.TargetWidthRatio < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "target width must not be negative")
	case p.Width(canvasW) <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "target width resolves to %d px", p.Width(canvasW))
	case p.Width(canvasW) > canvasW:
		return errors.New(errors.ErrCodeInvalidConfig, "target width %d exceeds canvas width %d", p.Width(canvasW), canvasW)
	case p.BandHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "band height must be positive")
	case p.OffsetY < 0 || p.OffsetY+p.BandHeight > canvasH:
		return errors.New(errors.ErrCodeInvalidConfig, "band %d-%d outside canvas height %d", p.OffsetY, p.OffsetY+p.BandHeight, canvasH)
	}
	return nil
}

// CheckBands validates every policy and verifies that no two bands overlap.
func CheckBands(policies map[Category]Policy, canvasW, canvasH int) error {
	cats := make([]Category, 0, len(policies))
	for c, p := range policies {
		if err := p.Validate(canvasW, canvasH); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "anchor %s", c)
		}
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		pi, pj := policies[cats[i]], policies[cats[j]]
		if pi.OffsetY != pj.OffsetY {
			return pi.OffsetY < pj.OffsetY
		}
		return cats[i] < cats[j]
	})
	for i := 1; i < len(cats); i++ {
		_, prevBottom := policies[cats[i-1]].Band()
		top, _ := policies[cats[i]].Band()
		if top < prevBottom {
			return errors.New(errors.ErrCodeInvalidConfig, "anchor bands overlap: %s ends at %d, %s starts at %d",
				cats[i-1], prevBottom, cats[i], top)
		}
	}
	return nil
}

func (p Policy) String() string {
	top, bottom := p.Band()
	if p.TargetWidth > 0 {
		return fmt.Sprintf("width=%d band=%d-%d", p.TargetWidth, top, bottom)
	}
	return fmt.Sprintf("width=%.2f band=%d-%d", p.TargetWidthRatio, top, bottom)
}
