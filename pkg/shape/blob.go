package shape

import (
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// BlobParams describes a ghost silhouette: a round head arc on top of two
// near-vertical sides that end in a wavy hem. All coordinates are canvas pixels.
type BlobParams struct {
	Left, Width   float64 // horizontal extent of the body
	Top           float64 // top of the head arc
	ShoulderY     float64 // where the head arc hands over to the side edges
	BaseY         float64 // hem baseline; wave crests hang below it
	WaveSegments  int     // number of hem segments (>= 1)
	WaveAmplitude float64 // vertical size of each hem wave
	Fill          raster.ColorSpec
	Outline       raster.ColorSpec
	OutlineWidth  float64
}

// Validate checks the geometry is drawable.
func (p BlobParams) Validate() error {
	switch {
	case p.Width <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "blob width must be positive")
	case p.WaveSegments < 1:
		return errors.New(errors.ErrCodeInvalidInput, "blob needs at least one wave segment")
	case p.ShoulderY <= p.Top || p.BaseY <= p.ShoulderY:
		return errors.New(errors.ErrCodeInvalidInput, "blob needs top < shoulder < base")
	}
	return nil
}

// Hem returns the wave points from left to right along the bottom edge.
// Odd points sit WaveAmplitude below the baseline.
func (p BlobParams) Hem() []Point {
	pts := make([]Point, 0, p.WaveSegments+1)
	for i := 0; i <= p.WaveSegments; i++ {
		y := p.BaseY
		if i%2 == 1 {
			y += p.WaveAmplitude
		}
		pts = append(pts, Point{X: p.Left + p.Width*float64(i)/float64(p.WaveSegments), Y: y})
	}
	return pts
}

// Blob builds the silhouette as draw operations:
// outlined head circle, filled body, filled hem polygon, side edges and the hem
// outline. The head circle spans the full body width.
func Blob(p BlobParams) ([]Op, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	right := p.Left + p.Width
	head := raster.Region{X: p.Left, Y: p.Top, W: p.Width, H: p.Width}
	hem := p.Hem()

	fill := make([]Point, 0, len(hem)+2)
	fill = append(fill, Pt(p.Left, p.ShoulderY), Pt(right, p.ShoulderY))
	for i := len(hem) - 1; i >= 0; i-- {
		fill = append(fill, hem[i])
	}

	return []Op{
		Ellipse{Box: head, Style: FillStroke(p.Fill, p.Outline, p.OutlineWidth)},
		Rect{Box: raster.Region{X: p.Left, Y: p.ShoulderY, W: p.Width, H: p.BaseY - p.ShoulderY}, Style: Filled(p.Fill)},
		Polygon{Points: fill, Style: Filled(p.Fill)},
		Line{From: Pt(p.Left, p.ShoulderY), To: Pt(p.Left, p.BaseY), Style: Outlined(p.Outline, p.OutlineWidth)},
		Line{From: Pt(right, p.ShoulderY), To: Pt(right, p.BaseY), Style: Outlined(p.Outline, p.OutlineWidth)},
		Polyline{Points: hem, Style: Outlined(p.Outline, p.OutlineWidth)},
	}, nil
}
