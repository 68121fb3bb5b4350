package raster

import (
	"image"
	"math"
)

// Region is a canvas-relative box used both as a drawing target and as the
// unit of crop and placement logic. X and Y may go negative while a layout is
// being computed; W and H must stay positive.
type Region struct {
	X, Y, W, H float64
}

// RegionOf builds a region from fractions of a w×h canvas, so the same logical
// box scales with the canvas ("80% of the width, starting at 10%").
func RegionOf(w, h int, fx, fy, fw, fh float64) Region {
	return Region{
		X: float64(w) * fx,
		Y: float64(h) * fy,
		W: float64(w) * fw,
		H: float64(h) * fh,
	}
}

// Valid reports whether the region has positive size.
func (r Region) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Max returns the bottom-right corner.
func (r Region) Max() (float64, float64) {
	return r.X + r.W, r.Y + r.H
}

// Center returns the centre point.
func (r Region) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the region by d on every side.
func (r Region) Inset(d float64) Region {
	return Region{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Rect rounds the region outward to integer pixel bounds.
func (r Region) Rect() image.Rectangle {
	x1, y1 := r.Max()
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	)
}

// RegionFromRect converts integer bounds into a Region.
func RegionFromRect(b image.Rectangle) Region {
	return Region{X: float64(b.Min.X), Y: float64(b.Min.Y), W: float64(b.Dx()), H: float64(b.Dy())}
}
