package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

func TestNew(t *testing.T) {
	img, err := New(300, 400)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 300, 400) {
		t.Errorf("Bounds() = %v, want 300x400", img.Bounds())
	}
	if Opaque(img) {
		t.Error("new canvas should be fully transparent")
	}

	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, errors.ErrCodeMalformedInput) {
			t.Errorf("New(%d, %d) error = %v, want MALFORMED_INPUT", size[0], size[1], err)
		}
	}
}

func TestFromImagePromotesAlpha(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 22))
	for y := 20; y < 22; y++ {
		for x := 10; x < 14; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	gray.SetGray(1, 1, color.Gray{Y: 77})

	tests := []struct {
		name string
		src  image.Image
		w, h int
	}{
		{"offset rgba", src, 4, 2},
		{"gray without alpha", gray, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromImage(tt.src)
			if err != nil {
				t.Fatalf("FromImage() error: %v", err)
			}
			if got.Bounds() != image.Rect(0, 0, tt.w, tt.h) {
				t.Errorf("Bounds() = %v, want origin-anchored %dx%d", got.Bounds(), tt.w, tt.h)
			}
			for y := 0; y < tt.h; y++ {
				for x := 0; x < tt.w; x++ {
					if a := got.NRGBAAt(x, y).A; a != 255 {
						t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
					}
				}
			}
		})
	}
}

func TestFromImageMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  image.Image
	}{
		{"nil", nil},
		{"empty bounds", image.NewNRGBA(image.Rect(0, 0, 0, 5))},
		{"short buffer", &image.NRGBA{Pix: make([]uint8, 4), Stride: 16, Rect: image.Rect(0, 0, 4, 4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromImage(tt.src)
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("FromImage() error = %v, want MALFORMED_INPUT", err)
			}
		})
	}
}

func TestCloneAndEqual(t *testing.T) {
	img, _ := New(5, 5)
	img.SetNRGBA(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	c := Clone(img)
	if !Equal(img, c) {
		t.Fatal("Clone() should equal source")
	}
	c.SetNRGBA(0, 0, color.NRGBA{A: 255})
	if Equal(img, c) {
		t.Error("mutating the clone should not affect the source")
	}
	if img.NRGBAAt(0, 0).A != 0 {
		t.Error("source was mutated through clone")
	}
}

func TestScaled(t *testing.T) {
	tests := []struct {
		v     int
		ratio float64
		want  int
	}{
		{300, 0.33, 99},
		{400, 0.33, 132},
		{300, 0.66, 198},
		{400, 0.66, 264},
		{300, 1.0, 300},
		{1, 0.33, 0},
	}
	for _, tt := range tests {
		if got := Scaled(tt.v, tt.ratio); got != tt.want {
			t.Errorf("Scaled(%d, %v) = %d, want %d", tt.v, tt.ratio, got, tt.want)
		}
	}
}

func TestColorSpec(t *testing.T) {
	red := RGB(231, 76, 60)

	if got := red.Darker(40); got != RGB(191, 36, 20) {
		t.Errorf("Darker(40) = %+v", got)
	}
	if got := red.Darker(80); got != RGB(151, 0, 0) {
		t.Errorf("Darker(80) should clamp at 0, got %+v", got)
	}
	if got := red.Lighter(40); got != RGB(255, 116, 100) {
		t.Errorf("Lighter(40) should clamp at 255, got %+v", got)
	}
	if got := red.WithAlpha(100).Darker(20); got.A != 100 {
		t.Errorf("Darker should keep alpha, got %d", got.A)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorSpec
		wantErr bool
	}{
		{"#e74c3c", RGB(231, 76, 60), false},
		{"3498db", RGB(52, 152, 219), false},
		{"#ffc8c864", RGBA(255, 200, 200, 100), false},
		{"#zzzzzz", ColorSpec{}, true},
		{"#12", ColorSpec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	if got := RGBA(255, 200, 200, 100).Hex(); got != "#ffc8c864" {
		t.Errorf("Hex() = %q, want #ffc8c864", got)
	}
}

func TestNear(t *testing.T) {
	ref := RGB(0, 0, 0)
	tests := []struct {
		c    ColorSpec
		tol  int
		want bool
	}{
		{RGB(49, 49, 49), 50, true},
		{RGB(50, 0, 0), 50, false},
		{RGBA(0, 0, 0, 0), 50, true},
		{RGB(0, 0, 0), 0, false},
	}
	for _, tt := range tests {
		if got := tt.c.Near(ref, tt.tol); got != tt.want {
			t.Errorf("%+v.Near(black, %d) = %v, want %v", tt.c, tt.tol, got, tt.want)
		}
	}
}

func TestRegion(t *testing.T) {
	r := RegionOf(300, 400, 0.1, 0.05, 0.8, 0.4)
	if r != (Region{X: 30, Y: 20, W: 240, H: 160}) {
		t.Errorf("RegionOf() = %+v", r)
	}
	if !r.Valid() {
		t.Error("region should be valid")
	}
	if (Region{X: -5, W: 0, H: 3}).Valid() {
		t.Error("zero-width region should be invalid")
	}
	if got := (Region{X: -0.5, Y: 1.2, W: 2, H: 2}).Rect(); got != image.Rect(-1, 1, 2, 4) {
		t.Errorf("Rect() = %v", got)
	}
}
