// Package chroma removes flat backdrops from generated sprites by threshold
// chroma keying.
//
// A [Remover] asks its [Estimator] for the backdrop colour and clears every pixel
// whose red, green and blue channels are each strictly closer than Tolerance to
// it. Cleared pixels become (255, 255, 255, 0); everything else is left as is.
//
// Tolerance must be at least 1, so the pixel the reference was sampled from is
// always cleared.
//
// When the reference colour is itself fully transparent the image is returned
// unchanged: the sampled location holds no content, so there is no backdrop to
// remove. Every estimator samples the border and reports a transparent reference
// once any border pixel is cleared, so keying an already keyed image is a no-op.
//
// Known limitation: with the corner estimator, a subject touching the top-left
// pixel turns that subject colour into the key, and matching foreground pixels
// are cleared. The edge-median and dominant estimators are less sensitive.
package chroma

import (
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// DefaultTolerance is the per-channel distance below which a pixel is keyed.
const DefaultTolerance = 50

// Keyed is the colour written to removed pixels.
var Keyed = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// Remover clears backdrop pixels.
type Remover struct {
	Estimator Estimator // nil selects Corner
	Tolerance int       // 1-255
}

// NewRemover returns a corner-keyed remover with the default tolerance.
func NewRemover() *Remover {
	return &Remover{Estimator: Corner{}, Tolerance: DefaultTolerance}
}

// Validate checks the tolerance range.
func (r *Remover) Validate() error {
	if r.Tolerance < 1 || r.Tolerance > 255 {
		return errors.New(errors.ErrCodeInvalidInput, "tolerance %d out of range 1-255", r.Tolerance)
	}
	return nil
}

// Remove returns a copy of img with the backdrop made transparent.
func (r *Remover) Remove(img raster.RasterImage) (raster.RasterImage, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	est := r.Estimator
	if est == nil {
		est = Corner{}
	}
	ref, err := est.Estimate(img)
	if err != nil {
		return nil, err
	}
	if ref.A == 0 {
		return raster.Clone(img), nil
	}
	return Key(img, ref, r.Tolerance), nil
}

// Key clears every pixel of img within tolerance of ref, regardless of ref's
// alpha.
func Key(img raster.RasterImage, ref raster.ColorSpec, tolerance int) raster.RasterImage {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if raster.FromColor(c).Near(ref, tolerance) {
			return Keyed
		}
		return c
	})
}
