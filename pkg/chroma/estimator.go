package chroma

import (
	"image"
	"sort"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Estimator guesses the backdrop colour of an image.
type Estimator interface {
	// Name identifies the estimator in configuration and logs.
	Name() string

	// Estimate returns the reference colour to key against. A reference with
	// alpha 0 means the image has no backdrop.
	Estimate(img raster.RasterImage) (raster.ColorSpec, error)
}

// Estimator names accepted by ParseEstimator.
const (
	EstimatorCorner     = "corner"
	EstimatorEdgeMedian = "edge-median"
	EstimatorDominant   = "dominant"
)

// EstimatorNames lists the supported estimators.
func EstimatorNames() []string {
	return []string{EstimatorCorner, EstimatorEdgeMedian, EstimatorDominant}
}

// ParseEstimator returns the estimator registered under name. The empty string
// selects the corner estimator.
func ParseEstimator(name string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EstimatorCorner:
		return Corner{}, nil
	case EstimatorEdgeMedian:
		return EdgeMedian{}, nil
	case EstimatorDominant:
		return Dominant{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown estimator %q (want one of %s)",
		name, strings.Join(EstimatorNames(), ", "))
}

// =============================================================================
// Corner
// =============================================================================

// Corner samples the top-left pixel. Generated sprites are centred on a flat
// backdrop, so the corner is the cheapest reliable sample.
type Corner struct{}

func (Corner) Name() string { return EstimatorCorner }

func (Corner) Estimate(img raster.RasterImage) (raster.ColorSpec, error) {
	if err := checkImage(img); err != nil {
		return raster.ColorSpec{}, err
	}
	o := img.Rect.Min
	return raster.At(img, o.X, o.Y), nil
}

// =============================================================================
// EdgeMedian
// =============================================================================

// EdgeMedian takes the per-channel median of the one pixel border and returns
// the border pixel closest to it. It tolerates a subject that touches a single
// corner.
type EdgeMedian struct{}

func (EdgeMedian) Name() string { return EstimatorEdgeMedian }

func (EdgeMedian) Estimate(img raster.RasterImage) (raster.ColorSpec, error) {
	if err := checkImage(img); err != nil {
		return raster.ColorSpec{}, err
	}
	border, ok := opaqueBorder(img)
	if !ok {
		return raster.ColorSpec{}, nil
	}
	var ch [3][]float64
	for i := range ch {
		ch[i] = make([]float64, len(border))
	}
	for i, c := range border {
		ch[0][i] = float64(c.R)
		ch[1][i] = float64(c.G)
		ch[2][i] = float64(c.B)
	}
	var med [3]uint8
	for i := range ch {
		sort.Float64s(ch[i])
		med[i] = uint8(stat.Quantile(0.5, stat.Empirical, ch[i], nil))
	}
	return nearest(border, raster.RGB(med[0], med[1], med[2])), nil
}

// =============================================================================
// Dominant
// =============================================================================

// Dominant clusters the border pixels and returns the border pixel closest to
// the heaviest cluster.
type Dominant struct{}

func (Dominant) Name() string { return EstimatorDominant }

func (Dominant) Estimate(img raster.RasterImage) (raster.ColorSpec, error) {
	if err := checkImage(img); err != nil {
		return raster.ColorSpec{}, err
	}
	border, ok := opaqueBorder(img)
	if !ok {
		return raster.ColorSpec{}, nil
	}

	strip := image.NewNRGBA(image.Rect(0, 0, len(border), 1))
	for i, c := range border {
		strip.SetNRGBA(i, 0, c.WithAlpha(255).NRGBA())
	}
	cands := dominantcolor.FindWeight(strip, 4)
	if len(cands) == 0 {
		return raster.ColorSpec{}, errors.New(errors.ErrCodeInternal, "no dominant colour found")
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	return nearest(border, raster.RGB(best.RGBA.R, best.RGBA.G, best.RGBA.B)), nil
}

// =============================================================================
// Helpers
// =============================================================================

func checkImage(img raster.RasterImage) error {
	if img == nil || img.Rect.Empty() {
		return errors.New(errors.ErrCodeMalformedInput, "image has no pixels")
	}
	return nil
}

// borderPixels returns the one pixel frame of img clockwise from the top-left.
func borderPixels(img raster.RasterImage) []raster.ColorSpec {
	b := img.Rect
	var out []raster.ColorSpec
	for x := b.Min.X; x < b.Max.X; x++ {
		out = append(out, raster.At(img, x, b.Min.Y))
	}
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		out = append(out, raster.At(img, b.Max.X-1, y))
	}
	if b.Dy() > 1 {
		for x := b.Max.X - 2; x >= b.Min.X; x-- {
			out = append(out, raster.At(img, x, b.Max.Y-1))
		}
	}
	if b.Dx() > 1 {
		for y := b.Max.Y - 2; y > b.Min.Y; y-- {
			out = append(out, raster.At(img, b.Min.X, y))
		}
	}
	return out
}

// opaqueBorder returns the border pixels of img, or false when any of them is
// fully transparent. A keyed image always has a cleared border pixel, since
// the estimators only return colours taken from the border.
func opaqueBorder(img raster.RasterImage) ([]raster.ColorSpec, bool) {
	border := borderPixels(img)
	for _, c := range border {
		if c.A == 0 {
			return nil, false
		}
	}
	return border, true
}

// nearest returns the opaque colour of the pixel in px closest to target.
func nearest(px []raster.ColorSpec, target raster.ColorSpec) raster.ColorSpec {
	best, bestD := px[0], -1
	for _, c := range px {
		dr := int(c.R) - int(target.R)
		dg := int(c.G) - int(target.G)
		db := int(c.B) - int(target.B)
		if d := dr*dr + dg*dg + db*db; bestD < 0 || d < bestD {
			best, bestD = c, d
		}
	}
	return best.WithAlpha(255)
}
