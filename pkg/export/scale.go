// Package export derives the 1x/2x/3x variants of a sprite and writes them as
// an asset-catalog imageset.
//
// The master raster is the 3x variant. Smaller variants are resampled from it
// with an antialiasing filter to round(dimension * ratio) pixels per axis;
// nearest-neighbour resampling is not offered. Resampling is deterministic, so
// the same master and scale set always produce byte-identical files.
//
//	ex := export.NewExporter()
//	variants, err := ex.Variants("mavi_sapka", master)
//	files, err := export.Encode(variants)
//	dir, err := export.WriteImageSet(out, "mavi_sapka", files, export.NewManifest(variants))
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Scale maps a scale factor to its ratio of the master size.
type Scale struct {
	Factor int     `toml:"factor"`
	Ratio  float64 `toml:"ratio"`
}

// DefaultScales is the 3x/2x/1x set used for the game's assets.
func DefaultScales() []Scale {
	return []Scale{{Factor: 3, Ratio: 1.0}, {Factor: 2, Ratio: 0.66}, {Factor: 1, Ratio: 0.33}}
}

// RequiredFactors must all be present in a scale set.
var RequiredFactors = []int{1, 2, 3}

// Filter names accepted by ParseFilter.
const (
	FilterLanczos    = "lanczos"
	FilterBox        = "box"
	FilterCatmullRom = "catmullrom"
	FilterLinear     = "linear"
)

// FilterNames lists the supported resampling filters.
func FilterNames() []string {
	return []string{FilterLanczos, FilterBox, FilterCatmullRom, FilterLinear}
}

// ParseFilter resolves an antialiasing filter by name. The empty string selects
// Lanczos.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FilterLanczos:
		return imaging.Lanczos, nil
	case FilterBox:
		return imaging.Box, nil
	case FilterCatmullRom:
		return imaging.CatmullRom, nil
	case FilterLinear:
		return imaging.Linear, nil
	case "nearest", "nearestneighbor":
		return imaging.ResampleFilter{}, errors.New(errors.ErrCodeUnsupported, "nearest-neighbour resampling is not supported")
	}
	return imaging.ResampleFilter{}, errors.New(errors.ErrCodeInvalidInput, "unknown filter %q (want one of %s)",
		name, strings.Join(FilterNames(), ", "))
}

// ValidateScales checks that scales has positive unique factors, ratios in
// (0, 1] and covers every required factor.
func ValidateScales(scales []Scale) error {
	seen := make(map[int]bool, len(scales))
	for _, s := range scales {
		if s.Factor <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "scale factor %d must be positive", s.Factor)
		}
		if s.Ratio <= 0 || s.Ratio > 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "scale %dx ratio %g outside (0, 1]", s.Factor, s.Ratio)
		}
		if seen[s.Factor] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate scale factor %dx", s.Factor)
		}
		seen[s.Factor] = true
	}
	for _, f := range RequiredFactors {
		if !seen[f] {
			return errors.New(errors.ErrCodeInvalidConfig, "scale set is missing %dx", f)
		}
	}
	return nil
}

// Filename returns the asset filename of name at factor.
func Filename(name string, factor int) string {
	if factor == 1 {
		return name + ".png"
	}
	return fmt.Sprintf("%s@%dx.png", name, factor)
}

// Variant is one resolution of a sprite.
type Variant struct {
	Name     string
	Scale    int
	Filename string
	Image    raster.RasterImage
}

// Exporter derives scaled variants from a master raster.
type Exporter struct {
	Scales []Scale
	Filter string
}

// NewExporter returns an exporter with the default scales and Lanczos.
func NewExporter() *Exporter {
	return &Exporter{Scales: DefaultScales(), Filter: FilterLanczos}
}

// Variants resamples master for every scale, largest factor first.
func (e *Exporter) Variants(name string, master raster.RasterImage) ([]Variant, error) {
	if err := errors.ValidateSpriteName(name); err != nil {
		return nil, err
	}
	if master == nil || master.Rect.Empty() {
		return nil, errors.New(errors.ErrCodeMalformedInput, "master image has no pixels")
	}
	if err := ValidateScales(e.Scales); err != nil {
		return nil, err
	}
	filter, err := ParseFilter(e.Filter)
	if err != nil {
		return nil, err
	}

	scales := append([]Scale(nil), e.Scales...)
	sort.Slice(scales, func(i, j int) bool { return scales[i].Factor > scales[j].Factor })

	w, h := master.Rect.Dx(), master.Rect.Dy()
	out := make([]Variant, 0, len(scales))
	for _, s := range scales {
		v := Variant{Name: name, Scale: s.Factor, Filename: Filename(name, s.Factor)}
		if s.Ratio == 1 {
			v.Image = raster.Clone(master)
		} else {
			tw, th := raster.Scaled(w, s.Ratio), raster.Scaled(h, s.Ratio)
			if tw <= 0 || th <= 0 {
				return nil, errors.New(errors.ErrCodeDegenerateScale,
					"%dx: %dx%d master at ratio %g resamples to %dx%d", s.Factor, w, h, s.Ratio, tw, th)
			}
			v.Image = imaging.Resize(master, tw, th, filter)
		}
		out = append(out, v)
	}
	return out, nil
}
