// Package anchor normalizes accessory layers onto the base character canvas.
//
// Accessories arrive at arbitrary scale and position. [Compositor.Place] crops
// them to their visible content, rescales the crop to the width configured for
// the accessory's [Category] and pastes it horizontally centred at the
// category's vertical offset on a fresh transparent canvas. Each category owns a
// vertical band; [CheckBands] rejects configurations where bands overlap, so a
// hat, scarf and sweater stacked on one character never collide.
package anchor

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// ErrEmptyContent is returned by Place when the layer has no visible pixels.
// It marks a skip, not a failure.
var ErrEmptyContent = errors.Sentinel(errors.ErrCodeEmptyContent)

// Placement is the result of placing one layer.
type Placement struct {
	Image    raster.RasterImage
	Content  image.Rectangle // placed content box on the canvas
	Overflow bool            // content extends past the category band
}

// Compositor places accessory layers on a fixed-size canvas.
type Compositor struct {
	CanvasW, CanvasH int
	Policies         map[Category]Policy
}

// NewCompositor returns a compositor for the 300x400 base canvas with the
// default policies.
func NewCompositor() *Compositor {
	return &Compositor{CanvasW: 300, CanvasH: 400, Policies: DefaultPolicies()}
}

// Policy returns the policy of cat.
func (c *Compositor) Policy(cat Category) (Policy, error) {
	p, ok := c.Policies[cat]
	if !ok {
		return Policy{}, errors.New(errors.ErrCodeInvalidCategory, "no anchor policy for category %q", cat)
	}
	return p, nil
}

// Place crops img to its content and anchors it for cat.
//
// When img has no visible pixels the returned placement holds img itself and
// the error is ErrEmptyContent.
func (c *Compositor) Place(img raster.RasterImage, cat Category) (Placement, error) {
	p, err := c.Policy(cat)
	if err != nil {
		return Placement{}, err
	}
	if err := p.Validate(c.CanvasW, c.CanvasH); err != nil {
		return Placement{}, err
	}

	box, ok := BoundingBox(img)
	if !ok {
		return Placement{Image: img}, ErrEmptyContent
	}

	tw := p.Width(c.CanvasW)
	th := ScaledHeight(box.Dx(), box.Dy(), tw)

	var content raster.RasterImage = imaging.Crop(img, box)
	if tw != box.Dx() || th != box.Dy() {
		content = imaging.Resize(content, tw, th, imaging.Lanczos)
	}

	at := image.Pt((c.CanvasW-tw)/2, p.OffsetY)
	canvas := imaging.New(c.CanvasW, c.CanvasH, color.NRGBA{})
	// The canvas is transparent, so pasting keeps the content's alpha as is.
	out := imaging.Paste(canvas, content, at)

	placed := image.Rectangle{Min: at, Max: at.Add(image.Pt(tw, th))}
	top, bottom := p.Band()
	return Placement{
		Image:    out,
		Content:  placed.Intersect(out.Rect),
		Overflow: placed.Min.Y < top || placed.Max.Y > bottom || !placed.In(out.Rect),
	}, nil
}

// ScaledHeight returns round(h * tw / w), at least 1.
func ScaledHeight(w, h, tw int) int {
	th := int(math.Round(float64(h) * float64(tw) / float64(w)))
	return max(th, 1)
}

// BoundingBox returns the smallest rectangle enclosing every pixel with
// alpha > 0. ok is false when there is none.
func BoundingBox(img raster.RasterImage) (box image.Rectangle, ok bool) {
	if img == nil {
		return image.Rectangle{}, false
	}
	b := img.Rect
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Stack composites layers over base in order. All images must share base's
// size.
func Stack(base raster.RasterImage, layers ...raster.RasterImage) (raster.RasterImage, error) {
	if base == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no base image")
	}
	out := raster.Clone(base)
	for i, l := range layers {
		if l.Bounds().Size() != base.Bounds().Size() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layer %d is %v, base is %v",
				i, l.Bounds().Size(), base.Bounds().Size())
		}
		out = imaging.Overlay(out, l, image.Pt(0, 0), 1.0)
	}
	return out, nil
}
