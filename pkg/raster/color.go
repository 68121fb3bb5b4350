package raster

import (
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// ColorSpec is an immutable straight-alpha RGBA colour used to parametrize
// fills, outlines, ribbing and shading.
type ColorSpec struct {
	R, G, B, A uint8
}

// RGB builds an opaque ColorSpec.
func RGB(r, g, b uint8) ColorSpec {
	return ColorSpec{R: r, G: g, B: b, A: 255}
}

// RGBA builds a ColorSpec with explicit alpha.
func RGBA(r, g, b, a uint8) ColorSpec {
	return ColorSpec{R: r, G: g, B: b, A: a}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseHex(s string) (ColorSpec, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return ColorSpec{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse colour %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorSpec{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse colour %q", s)
	}
	r, g, b := c.RGB255()
	return ColorSpec{R: r, G: g, B: b, A: alpha}, nil
}

// MustHex is ParseHex for package-level literals; it panics on bad input.
func MustHex(s string) ColorSpec {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c ColorSpec) Hex() string {
	h := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 255 {
		return h
	}
	const digits = "0123456789abcdef"
	return h + string([]byte{digits[c.A>>4], digits[c.A&0x0f]})
}

// Darker subtracts n from every colour channel, clamped at 0. Alpha is kept.
func (c ColorSpec) Darker(n int) ColorSpec {
	return c.offset(-n)
}

// Lighter adds n to every colour channel, clamped at 255. Alpha is kept.
func (c ColorSpec) Lighter(n int) ColorSpec {
	return c.offset(n)
}

// WithAlpha returns a copy of c with alpha a.
func (c ColorSpec) WithAlpha(a uint8) ColorSpec {
	c.A = a
	return c
}

// NRGBA converts to the standard library's straight-alpha colour.
func (c ColorSpec) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color (premultiplied, 16-bit per channel).
func (c ColorSpec) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Colorful returns the go-colorful representation of the RGB channels.
func (c ColorSpec) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Near reports whether every RGB channel of c differs from ref by strictly less
// than tolerance. Alpha is not compared.
func (c ColorSpec) Near(ref ColorSpec, tolerance int) bool {
	return absDiff(c.R, ref.R) < tolerance &&
		absDiff(c.G, ref.G) < tolerance &&
		absDiff(c.B, ref.B) < tolerance
}

func (c ColorSpec) offset(n int) ColorSpec {
	return ColorSpec{R: clamp(int(c.R) + n), G: clamp(int(c.G) + n), B: clamp(int(c.B) + n), A: c.A}
}

func clamp(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// FromColor converts any color.Color into a straight-alpha ColorSpec.
func FromColor(c color.Color) ColorSpec {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ColorSpec{R: n.R, G: n.G, B: n.B, A: n.A}
}

// At returns the ColorSpec of the pixel at (x, y).
func At(img RasterImage, x, y int) ColorSpec {
	n := img.NRGBAAt(x, y)
	return ColorSpec{R: n.R, G: n.G, B: n.B, A: n.A}
}
