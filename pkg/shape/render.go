// Package shape renders declarative vector-style draw operations into rasters.
//
// Shapes are data: a sprite is a []Op of Ellipse, Polygon, Arc, Chord,
// RoundedRect, Rect, Line and Polyline values, interpreted by a single renderer
// loop. The renderer uses painter's-algorithm semantics: operations are
// composited over everything drawn before them, in slice order, and inside one
// operation the fill is painted before the outline.
//
//	c := shape.NewCanvas(300, 400)
//	ops, _ := shape.Build(c, shape.Spec{Kind: shape.KindBeanie, Color: red})
//	img, err := shape.Render(c.W, c.H, ops)
//
// Geometry outside the canvas is clipped by the rasterizer; it is never an
// error. The procedural catalog in this package is authored on a 300×400
// design grid and scaled through [Canvas], so the same logical shape keeps its
// proportions on any canvas size.
package shape

import (
	"github.com/fogleman/gg"

	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Render draws ops in order onto a fresh transparent w×h canvas.
func Render(w, h int, ops []Op) (raster.RasterImage, error) {
	if _, err := raster.New(w, h); err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	Draw(dc, ops)
	return raster.FromImage(dc.Image())
}

// Draw paints ops onto an existing gg context.
func Draw(dc *gg.Context, ops []Op) {
	for _, op := range ops {
		st := op.style()
		dc.ClearPath()
		op.path(dc)
		if st.Fill != nil && op.closed() {
			dc.SetColor(*st.Fill)
			dc.FillPreserve()
		}
		if st.Stroke != nil && st.Width > 0 {
			dc.SetColor(*st.Stroke)
			dc.SetLineWidth(st.Width)
			dc.StrokePreserve()
		}
		dc.ClearPath()
	}
}
