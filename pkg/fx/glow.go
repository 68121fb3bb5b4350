// Package fx holds post-processing filters applied to rendered sprites.
//
// Filters never mutate their input; each returns a new raster of the same size.
package fx

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spriteforge/pkg/raster"
)

// GlowOptions configures Glow.
type GlowOptions struct {
	// Radius is the Gaussian sigma of the halo in pixels. Zero disables the glow.
	Radius float64

	// Color is the halo colour. Its alpha scales the halo strength.
	Color raster.ColorSpec
}

// DefaultGlow is the soft white halo used for rare ghosts.
var DefaultGlow = GlowOptions{Radius: 6, Color: raster.RGBA(255, 255, 255, 200)}

// Glow adds a soft halo around the visible content of img.
//
// The halo takes the shape of img's alpha channel painted in opts.Color, is
// blurred with sigma opts.Radius, and the original is composited on top. Fully
// opaque pixels of img come out unchanged, fully transparent input stays fully
// transparent.
func Glow(img raster.RasterImage, opts GlowOptions) raster.RasterImage {
	if opts.Radius <= 0 || opts.Color.A == 0 {
		return raster.Clone(img)
	}

	glow := opts.Color
	halo := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: glow.R, G: glow.G, B: glow.B, A: uint8(uint16(c.A) * uint16(glow.A) / 255)}
	})
	halo = imaging.Blur(halo, opts.Radius)

	return imaging.Overlay(halo, img, image.Pt(0, 0), 1.0)
}
