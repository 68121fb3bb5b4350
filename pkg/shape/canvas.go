package shape

import (
	"math"

	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Design grid the procedural catalog is authored on.
const (
	DesignW = 300
	DesignH = 400
)

// Canvas maps design-grid coordinates onto a concrete canvas size. Every
// coordinate is a ratio of the design grid, so a 600×800 canvas renders the
// same shapes at twice the size.
type Canvas struct {
	W, H int
}

// NewCanvas returns a canvas of the given pixel size.
func NewCanvas(w, h int) Canvas {
	return Canvas{W: w, H: h}
}

// X scales a design-grid x coordinate.
func (c Canvas) X(v float64) float64 { return v * float64(c.W) / DesignW }

// Y scales a design-grid y coordinate.
func (c Canvas) Y(v float64) float64 { return v * float64(c.H) / DesignH }

// Len scales a length that has no axis (stroke widths, radii).
func (c Canvas) Len(v float64) float64 {
	return v * math.Min(float64(c.W)/DesignW, float64(c.H)/DesignH)
}

// Pt scales a design-grid point.
func (c Canvas) Pt(x, y float64) Point { return Point{X: c.X(x), Y: c.Y(y)} }

// Pts scales a list of design-grid (x, y) pairs.
func (c Canvas) Pts(xy ...float64) []Point {
	pts := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, c.Pt(xy[i], xy[i+1]))
	}
	return pts
}

// Box scales a design-grid box given by its corners (PIL-style [x0, y0, x1, y1]).
func (c Canvas) Box(x0, y0, x1, y1 float64) raster.Region {
	return raster.Region{X: c.X(x0), Y: c.Y(y0), W: c.X(x1) - c.X(x0), H: c.Y(y1) - c.Y(y0)}
}

// Frac builds a region from fractions of the canvas.
func (c Canvas) Frac(fx, fy, fw, fh float64) raster.Region {
	return raster.RegionOf(c.W, c.H, fx, fy, fw, fh)
}
