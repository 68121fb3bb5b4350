// Package source loads upstream sprite artwork from disk.
//
// Bitmaps produced by the external image generator (PNG, JPEG, GIF, BMP, TIFF
// or WebP) are decoded and promoted to non-premultiplied RGBA; images without
// an alpha channel become fully opaque. SVG documents are rasterized at the
// requested canvas size.
package source

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".svg"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the image at path. SVG files are rasterized to w×h; bitmaps keep
// their own size and w, h are ignored.
func Load(path string, w, h int) (raster.RasterImage, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if !Supported(path) {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported image type %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return Rasterize(data, w, h)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a bitmap, applying EXIF orientation, and promotes it to RGBA.
func Decode(r io.Reader) (raster.RasterImage, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode image")
	}
	return raster.FromImage(img)
}

// Rasterize renders an SVG document onto a transparent w×h canvas, scaled to
// fit and centred.
func Rasterize(svg []byte, w, h int) (raster.RasterImage, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "invalid canvas size %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "parse svg")
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = float64(w), float64(h)
	}
	scale := min(float64(w)/vw, float64(h)/vh)
	tw, th := vw*scale, vh*scale
	icon.SetTarget((float64(w)-tw)/2, (float64(h)-th)/2, tw, th)

	// rasterx paints premultiplied RGBA; FromImage converts.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return raster.FromImage(dst)
}

// Fit resizes img to exactly w×h with Lanczos. Images already at that size are
// cloned.
func Fit(img raster.RasterImage, w, h int) (raster.RasterImage, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "invalid canvas size %dx%d", w, h)
	}
	if img.Rect.Dx() == w && img.Rect.Dy() == h {
		return raster.Clone(img), nil
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}
