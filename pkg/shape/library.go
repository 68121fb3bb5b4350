package shape

import (
	"fmt"
	"sort"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Kind names a procedural sprite in the catalog.
type Kind string

// Catalog kinds.
const (
	KindGhost    Kind = "ghost"
	KindBeanie   Kind = "beanie"
	KindWitchHat Kind = "witch_hat"
	KindScarf    Kind = "scarf"
	KindSweater  Kind = "sweater"
)

// Ghost variants.
const (
	GhostStandard = "standard"
	GhostBaby     = "baby"
	GhostRare     = "rare"
	GhostDead     = "dead"
)

// Spec selects and parametrizes a catalog entry.
type Spec struct {
	Kind    Kind
	Variant string           // ghost variant; ignored by accessories
	Color   raster.ColorSpec // main colour for accessories
	Accent  raster.ColorSpec // secondary colour (witch hat band)
}

// Shading offsets for accessory outlines and ribbing.
const (
	outlineShade = 40
	ribShade     = 20
	texture      = 100 // alpha of knit stripes and stitches
)

type builder func(c Canvas, s Spec) ([]Op, error)

var catalog = map[Kind]builder{
	KindGhost:    ghost,
	KindBeanie:   beanie,
	KindWitchHat: witchHat,
	KindScarf:    scarf,
	KindSweater:  sweater,
}

// Kinds lists the catalog in a stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(catalog))
	for k := range catalog {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// GhostVariants lists the supported ghost silhouettes.
func GhostVariants() []string {
	return []string{GhostStandard, GhostBaby, GhostRare, GhostDead}
}

// Build returns the draw operations for spec on canvas c.
func Build(c Canvas, s Spec) ([]Op, error) {
	b, ok := catalog[s.Kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown sprite kind %q", s.Kind)
	}
	return b(c, s)
}

// =============================================================================
// Ghosts
// =============================================================================

// ghostLook is the per-variant palette and silhouette.
type ghostLook struct {
	body, outline raster.ColorSpec
	segments      int
	amplitude     float64
	blush         bool
	face          func(c Canvas, outline raster.ColorSpec) []Op
}

var ghostLooks = map[string]ghostLook{
	GhostStandard: {
		body:      raster.RGB(245, 245, 255),
		outline:   raster.RGB(40, 40, 60),
		segments:  6,
		amplitude: 40,
		blush:     true,
		face:      dotEyes,
	},
	GhostBaby: {
		body:      raster.RGB(225, 245, 254),
		outline:   raster.RGB(60, 90, 120),
		segments:  4,
		amplitude: 30,
		blush:     true,
		face:      sparkleEyes,
	},
	GhostRare: {
		body:      raster.RGB(243, 229, 245),
		outline:   raster.RGB(90, 60, 110),
		segments:  8,
		amplitude: 30,
		face:      starEyes,
	},
	GhostDead: {
		body:      raster.RGB(205, 205, 215),
		outline:   raster.RGB(70, 70, 80),
		segments:  10,
		amplitude: 15,
		face:      crossEyes,
	},
}

func ghost(c Canvas, s Spec) ([]Op, error) {
	variant := s.Variant
	if variant == "" {
		variant = GhostStandard
	}
	look, ok := ghostLooks[variant]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown ghost variant %q", variant)
	}

	ops, err := Blob(BlobParams{
		Left:          c.X(30),
		Width:         c.X(270) - c.X(30),
		Top:           c.Y(20),
		ShoulderY:     c.Y(140),
		BaseY:         c.Y(320),
		WaveSegments:  look.segments,
		WaveAmplitude: c.Y(look.amplitude),
		Fill:          look.body,
		Outline:       look.outline,
		OutlineWidth:  c.Len(8),
	})
	if err != nil {
		return nil, err
	}

	ops = append(ops, look.face(c, look.outline)...)
	if look.blush {
		pink := raster.RGBA(255, 200, 200, 100)
		ops = append(ops,
			Ellipse{Box: c.Box(70, 150, 90, 170), Style: Filled(pink)},
			Ellipse{Box: c.Box(210, 150, 230, 170), Style: Filled(pink)},
		)
	}

	// Arm nubs
	ops = append(ops,
		Ellipse{Box: c.Box(10, 180, 50, 220), Style: FillStroke(look.body, look.outline, c.Len(6))},
		Ellipse{Box: c.Box(250, 180, 290, 220), Style: FillStroke(look.body, look.outline, c.Len(6))},
	)
	return ops, nil
}

func shiverMouth(c Canvas, outline raster.ColorSpec) Op {
	return Arc{Box: c.Box(130, 165, 170, 185), Start: 0, End: 180, Style: Outlined(outline, c.Len(5))}
}

func dotEyes(c Canvas, outline raster.ColorSpec) []Op {
	eye := raster.RGB(30, 30, 40)
	return []Op{
		Ellipse{Box: c.Box(90, 130, 115, 165), Style: Filled(eye)},
		Ellipse{Box: c.Box(185, 130, 210, 165), Style: Filled(eye)},
		shiverMouth(c, outline),
	}
}

func sparkleEyes(c Canvas, outline raster.ColorSpec) []Op {
	eye := raster.RGB(30, 30, 50)
	white := raster.RGB(255, 255, 255)
	return []Op{
		Ellipse{Box: c.Box(80, 115, 125, 170), Style: Filled(eye)},
		Ellipse{Box: c.Box(175, 115, 220, 170), Style: Filled(eye)},
		Ellipse{Box: c.Box(92, 125, 106, 139), Style: Filled(white)},
		Ellipse{Box: c.Box(187, 125, 201, 139), Style: Filled(white)},
		// pacifier
		Ellipse{Box: c.Box(132, 170, 168, 192), Style: FillStroke(raster.RGB(255, 182, 193), outline, c.Len(3))},
		Ellipse{Box: c.Box(142, 186, 158, 202), Style: Outlined(outline, c.Len(3))},
	}
}

func starEyes(c Canvas, outline raster.ColorSpec) []Op {
	gold := raster.RGB(241, 196, 15)
	ops := []Op{
		Polygon{Points: star(c, 102, 148, 18, 8), Style: FillStroke(gold, gold.Darker(outlineShade), c.Len(2))},
		Polygon{Points: star(c, 198, 148, 18, 8), Style: FillStroke(gold, gold.Darker(outlineShade), c.Len(2))},
		shiverMouth(c, outline),
	}
	// sparkles around the head
	for _, p := range [][2]float64{{40, 40}, {262, 60}, {20, 260}, {280, 290}} {
		ops = append(ops, Polygon{Points: star(c, p[0], p[1], 10, 4), Style: Filled(gold.WithAlpha(200))})
	}
	return ops
}

func crossEyes(c Canvas, outline raster.ColorSpec) []Op {
	w := c.Len(6)
	return []Op{
		Line{From: c.Pt(90, 132), To: c.Pt(115, 160), Style: Outlined(outline, w)},
		Line{From: c.Pt(115, 132), To: c.Pt(90, 160), Style: Outlined(outline, w)},
		Line{From: c.Pt(185, 132), To: c.Pt(210, 160), Style: Outlined(outline, w)},
		Line{From: c.Pt(210, 132), To: c.Pt(185, 160), Style: Outlined(outline, w)},
		Line{From: c.Pt(130, 178), To: c.Pt(170, 178), Style: Outlined(outline, c.Len(5))},
	}
}

// star returns a five-pointed star centred on a design-grid point.
func star(c Canvas, cx, cy, outer, inner float64) []Point {
	pts := make([]Point, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -90 + float64(i)*36
		x, y := polar(a, r)
		pts = append(pts, c.Pt(cx+x, cy+y))
	}
	return pts
}

// =============================================================================
// Accessories
// =============================================================================

func beanie(c Canvas, s Spec) ([]Op, error) {
	col := s.Color
	darker := col.Darker(outlineShade)
	w := c.Len(6)

	ops := []Op{
		Chord{Box: c.Box(40, 10, 260, 150), Start: 180, End: 0, Style: FillStroke(col, darker, w)},
		RoundedRect{Box: c.Box(35, 80, 265, 120), Radius: c.Len(10), Style: FillStroke(col, darker, w)},
	}
	for x := 50.0; x < 250; x += 20 {
		ops = append(ops, Line{From: c.Pt(x, 80), To: c.Pt(x, 120), Style: Outlined(darker.WithAlpha(texture), c.Len(2))})
	}
	ops = append(ops, Ellipse{Box: c.Box(125, -5, 175, 45), Style: FillStroke(col, darker, c.Len(4))})
	return ops, nil
}

func witchHat(c Canvas, s Spec) ([]Op, error) {
	col := s.Color
	darker := col.Darker(outlineShade)
	band := s.Accent
	if band == (raster.ColorSpec{}) {
		band = raster.RGB(243, 156, 18)
	}
	w := c.Len(6)

	return []Op{
		Polygon{Points: c.Pts(150, 10, 220, 100, 80, 100), Style: Filled(col)},
		Line{From: c.Pt(150, 10), To: c.Pt(220, 100), Style: Outlined(darker, w)},
		Line{From: c.Pt(150, 10), To: c.Pt(80, 100), Style: Outlined(darker, w)},
		Ellipse{Box: c.Box(20, 90, 280, 140), Style: FillStroke(col, darker, w)},
		Rect{Box: c.Box(95, 90, 205, 105), Style: Filled(band)},
	}, nil
}

func scarf(c Canvas, s Spec) ([]Op, error) {
	col := s.Color
	darker := col.Darker(outlineShade)
	w := c.Len(6)

	ops := []Op{
		RoundedRect{Box: c.Box(45, 180, 255, 230), Radius: c.Len(15), Style: FillStroke(col, darker, w)},
	}
	for x := 60.0; x < 240; x += 25 {
		ops = append(ops, Line{From: c.Pt(x, 180), To: c.Pt(x, 230), Style: Outlined(darker.WithAlpha(texture), c.Len(3))})
	}
	ops = append(ops,
		Polygon{Points: c.Pts(60, 220, 100, 220, 100, 300, 60, 300), Style: Filled(col)},
		Polyline{Points: c.Pts(60, 220, 60, 300, 100, 300, 100, 220), Style: Outlined(darker, w)},
	)
	for x := 65.0; x < 100; x += 10 {
		ops = append(ops, Line{From: c.Pt(x, 300), To: c.Pt(x, 315), Style: Outlined(col, c.Len(4))})
	}
	return ops, nil
}

func sweater(c Canvas, s Spec) ([]Op, error) {
	col := s.Color
	darker := col.Darker(outlineShade)
	rib := col.Darker(ribShade)
	w := c.Len(6)

	body := c.Pts(50, 230, 250, 230, 260, 310, 40, 310)
	ops := []Op{
		Polygon{Points: body, Style: Filled(col)},
		Polyline{Points: append(append([]Point{}, body...), body[0]), Style: Outlined(darker, w)},
		Ellipse{Box: c.Box(80, 220, 220, 250), Style: FillStroke(rib, darker, c.Len(5))},
		Rect{Box: c.Box(42, 300, 258, 320), Style: FillStroke(rib, darker, c.Len(5))},
	}
	stitch := Outlined(darker.WithAlpha(texture), c.Len(2))
	for y := 250.0; y < 300; y += 20 {
		for x := 70.0; x < 230; x += 20 {
			ops = append(ops,
				Line{From: c.Pt(x, y), To: c.Pt(x+5, y+5), Style: stitch},
				Line{From: c.Pt(x+5, y+5), To: c.Pt(x+10, y), Style: stitch},
			)
		}
	}
	return ops, nil
}

// String renders the spec for log lines.
func (s Spec) String() string {
	if s.Kind == KindGhost {
		return fmt.Sprintf("%s/%s", s.Kind, s.Variant)
	}
	return fmt.Sprintf("%s/%s", s.Kind, s.Color.Hex())
}
