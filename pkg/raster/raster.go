// Package raster defines the image and colour values shared by every
// spriteforge pipeline stage.
//
// A RasterImage is a non-premultiplied 8-bit RGBA grid (*image.NRGBA). Pixels
// with alpha 0 carry no visual content, whatever their RGB bytes hold. Stages
// never mutate the image they receive: each returns a new image, so a sprite's
// intermediate rasters are owned by exactly one stage at a time.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// RasterImage is the pixel container passed between pipeline stages.
type RasterImage = *image.NRGBA

// Transparent is the fully transparent colour new canvases are filled with.
var Transparent = color.NRGBA{}

// New allocates a fully transparent w×h raster.
func New(w, h int) (RasterImage, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "canvas size %dx%d must be positive", w, h)
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
}

// FromImage promotes any decoded image into a RasterImage anchored at (0,0).
// Images without an alpha channel become fully opaque. It fails with
// MALFORMED_INPUT for nil images, empty bounds or a pixel buffer that does not
// cover the bounds.
func FromImage(src image.Image) (RasterImage, error) {
	if src == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "image is nil")
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "image size %dx%d must be positive", b.Dx(), b.Dy())
	}
	if n, ok := src.(*image.NRGBA); ok {
		if len(n.Pix) < (b.Dy()-1)*n.Stride+b.Dx()*4 {
			return nil, errors.New(errors.ErrCodeMalformedInput, "pixel buffer too short for %dx%d", b.Dx(), b.Dy())
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// Clone returns a deep copy of img.
func Clone(img RasterImage) RasterImage {
	dst := image.NewNRGBA(img.Rect)
	if dst.Stride == img.Stride && len(dst.Pix) == len(img.Pix) {
		copy(dst.Pix, img.Pix)
		return dst
	}
	draw.Draw(dst, dst.Rect, img, img.Rect.Min, draw.Src)
	return dst
}

// Equal reports whether a and b have identical bounds and pixel bytes.
func Equal(a, b RasterImage) bool {
	if a.Rect != b.Rect {
		return false
	}
	w := a.Rect.Dx() * 4
	for y := 0; y < a.Rect.Dy(); y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		for i := range ra {
			if ra[i] != rb[i] {
				return false
			}
		}
	}
	return true
}

// Opaque reports whether any pixel of img carries visual content.
func Opaque(img RasterImage) bool {
	w := img.Rect.Dx()
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 3; x < len(row); x += 4 {
			if row[x] != 0 {
				return true
			}
		}
	}
	return false
}

// Scaled returns round(v * ratio) for export and resize targets.
func Scaled(v int, ratio float64) int {
	return int(math.Round(float64(v) * ratio))
}
