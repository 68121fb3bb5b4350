package shape

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Point is a canvas coordinate. Fractional values are allowed.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Style carries the paint of one operation. Fill and stroke are independent:
// an outline is only drawn when Stroke is set, it is never derived from Fill.
type Style struct {
	Fill   *raster.ColorSpec // interior paint, nil for none
	Stroke *raster.ColorSpec // outline paint, nil for none
	Width  float64           // outline width in pixels
}

// Filled returns a fill-only style.
func Filled(c raster.ColorSpec) Style {
	return Style{Fill: &c}
}

// Outlined returns a stroke-only style.
func Outlined(c raster.ColorSpec, width float64) Style {
	return Style{Stroke: &c, Width: width}
}

// FillStroke returns a style with both a fill and an outline.
func FillStroke(fill, stroke raster.ColorSpec, width float64) Style {
	return Style{Fill: &fill, Stroke: &stroke, Width: width}
}

// Op is one declarative draw operation. The set of variants is closed:
// Ellipse, Polygon, Arc, Chord, RoundedRect, Rect, Line and Polyline.
type Op interface {
	// Kind names the variant ("ellipse", "polygon", ...).
	Kind() string

	// path appends the operation's geometry to the context's current path.
	path(dc *gg.Context)

	// style returns the paint used for the geometry.
	style() Style

	// closed reports whether the geometry encloses an area that can be filled.
	closed() bool
}

// Ellipse is an axis-aligned ellipse inscribed in Box.
type Ellipse struct {
	Box raster.Region
	Style
}

// Polygon is a closed polygon through Points.
type Polygon struct {
	Points []Point
	Style
}

// Arc is an open elliptical arc inscribed in Box. Angles are degrees measured
// clockwise from the 3 o'clock position; End <= Start wraps through 360.
// Only the stroke is drawn.
type Arc struct {
	Box        raster.Region
	Start, End float64
	Style
}

// Chord is an elliptical arc closed by the straight line between its ends.
type Chord struct {
	Box        raster.Region
	Start, End float64
	Style
}

// RoundedRect is a rectangle with circular corners of Radius.
type RoundedRect struct {
	Box    raster.Region
	Radius float64
	Style
}

// Rect is a plain rectangle.
type Rect struct {
	Box raster.Region
	Style
}

// Line is a single stroked segment.
type Line struct {
	From, To Point
	Style
}

// Polyline is an open stroked path through Points.
type Polyline struct {
	Points []Point
	Style
}

func (Ellipse) Kind() string     { return "ellipse" }
func (Polygon) Kind() string     { return "polygon" }
func (Arc) Kind() string         { return "arc" }
func (Chord) Kind() string       { return "chord" }
func (RoundedRect) Kind() string { return "rounded_rect" }
func (Rect) Kind() string        { return "rect" }
func (Line) Kind() string        { return "line" }
func (Polyline) Kind() string    { return "polyline" }

func (o Ellipse) style() Style     { return o.Style }
func (o Polygon) style() Style     { return o.Style }
func (o Arc) style() Style         { return o.Style }
func (o Chord) style() Style       { return o.Style }
func (o RoundedRect) style() Style { return o.Style }
func (o Rect) style() Style        { return o.Style }
func (o Line) style() Style        { return o.Style }
func (o Polyline) style() Style    { return o.Style }

func (Ellipse) closed() bool     { return true }
func (Polygon) closed() bool     { return true }
func (Arc) closed() bool         { return false }
func (Chord) closed() bool       { return true }
func (RoundedRect) closed() bool { return true }
func (Rect) closed() bool        { return true }
func (Line) closed() bool        { return false }
func (Polyline) closed() bool    { return false }

func (o Ellipse) path(dc *gg.Context) {
	cx, cy := o.Box.Center()
	dc.DrawEllipse(cx, cy, o.Box.W/2, o.Box.H/2)
}

func (o Polygon) path(dc *gg.Context) {
	if len(o.Points) < 2 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(o.Points[0].X, o.Points[0].Y)
	for _, p := range o.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

func (o Arc) path(dc *gg.Context) {
	cx, cy := o.Box.Center()
	a1, a2 := sweep(o.Start, o.End)
	dc.NewSubPath()
	dc.DrawEllipticalArc(cx, cy, o.Box.W/2, o.Box.H/2, a1, a2)
}

func (o Chord) path(dc *gg.Context) {
	cx, cy := o.Box.Center()
	a1, a2 := sweep(o.Start, o.End)
	dc.NewSubPath()
	dc.DrawEllipticalArc(cx, cy, o.Box.W/2, o.Box.H/2, a1, a2)
	dc.ClosePath()
}

func (o RoundedRect) path(dc *gg.Context) {
	r := math.Min(o.Radius, math.Min(o.Box.W, o.Box.H)/2)
	dc.DrawRoundedRectangle(o.Box.X, o.Box.Y, o.Box.W, o.Box.H, r)
}

func (o Rect) path(dc *gg.Context) {
	dc.DrawRectangle(o.Box.X, o.Box.Y, o.Box.W, o.Box.H)
}

func (o Line) path(dc *gg.Context) {
	dc.NewSubPath()
	dc.MoveTo(o.From.X, o.From.Y)
	dc.LineTo(o.To.X, o.To.Y)
}

func (o Polyline) path(dc *gg.Context) {
	if len(o.Points) < 2 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(o.Points[0].X, o.Points[0].Y)
	for _, p := range o.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
}

// sweep converts clockwise degrees into increasing radians for gg.
func sweep(start, end float64) (float64, float64) {
	for end <= start {
		end += 360
	}
	return gg.Radians(start), gg.Radians(end)
}
