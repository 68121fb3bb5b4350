package source

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func TestLoadPNGKeepsAlpha(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	path := filepath.Join(dir, "hat.png")
	if err := imaging.Save(src, path); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path, 300, 400)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds = %v", got)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 128}) {
		t.Errorf("pixel = %v", got)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("background alpha = %d, want 0", a)
	}
}

func TestLoadJPEGBecomesOpaque(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	path := filepath.Join(dir, "scarf.jpg")
	if err := imaging.Save(src, path); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path, 0, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a := img.NRGBAAt(x, y).A; a != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
			}
		}
	}
}

func TestLoadSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hat.svg")
	if err := os.WriteFile(path, []byte(redSquare), 0644); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path, 30, 40)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(30, 40) {
		t.Fatalf("size = %v, want 30x40", got)
	}
	if got := raster.At(img, 15, 20); got != raster.RGB(255, 0, 0) {
		t.Errorf("centre = %v, want red", got)
	}
	// 10x10 viewBox fits as 30x30, centred vertically
	if a := img.NRGBAAt(15, 1).A; a != 0 {
		t.Errorf("letterbox alpha = %d, want 0", a)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(garbage, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	badSVG := filepath.Join(dir, "broken.svg")
	if err := os.WriteFile(badSVG, []byte("<svg"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		w, h int
		want errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.png"), 1, 1, errors.ErrCodeFileNotFound},
		{"unsupported", filepath.Join(dir, "notes.txt"), 1, 1, errors.ErrCodeUnsupported},
		{"empty path", "", 1, 1, errors.ErrCodeInvalidPath},
		{"corrupt", garbage, 1, 1, errors.ErrCodeMalformedInput},
		{"corrupt svg", badSVG, 10, 10, errors.ErrCodeMalformedInput},
		{"svg without size", badSVG, 0, 10, errors.ErrCodeMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, tt.w, tt.h)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	if err := imaging.Encode(&buf, src, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a := img.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("grey image alpha = %d, want 255", a)
	}
}

func TestFit(t *testing.T) {
	img, _ := raster.New(600, 800)
	out, err := Fit(img, 300, 400)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds().Size(); got != image.Pt(300, 400) {
		t.Errorf("size = %v", got)
	}

	same, _ := Fit(out, 300, 400)
	if &same.Pix[0] == &out.Pix[0] {
		t.Error("Fit at equal size returned the input buffer")
	}
	if _, err := Fit(out, 0, 400); !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("zero size error = %v", err)
	}
}

func TestSupported(t *testing.T) {
	for path, want := range map[string]bool{
		"a.PNG":  true,
		"a.webp": true,
		"a.svg":  true,
		"a.psd":  false,
		"a":      false,
	} {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v", path, got)
		}
	}
}
