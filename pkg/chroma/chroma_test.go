package chroma

import (
	"testing"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
	"github.com/matzehuels/spriteforge/pkg/shape"
)

var (
	backdrop = raster.RGB(46, 204, 113)
	subject  = raster.RGB(231, 76, 60)
)

// sprite is a 40x40 backdrop with a 20x20 subject square in the middle.
func sprite(t *testing.T) raster.RasterImage {
	t.Helper()
	img, err := raster.New(40, 40)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := backdrop
			if x >= 10 && x < 30 && y >= 10 && y < 30 {
				c = subject
			}
			img.SetNRGBA(x, y, c.NRGBA())
		}
	}
	return img
}

func TestRemoveCornerBecomesTransparent(t *testing.T) {
	for _, name := range EstimatorNames() {
		t.Run(name, func(t *testing.T) {
			est, err := ParseEstimator(name)
			if err != nil {
				t.Fatal(err)
			}
			in := sprite(t)
			out, err := (&Remover{Estimator: est, Tolerance: DefaultTolerance}).Remove(in)
			if err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if out.Bounds() != in.Bounds() {
				t.Errorf("bounds = %v, want %v", out.Bounds(), in.Bounds())
			}
			if got := out.NRGBAAt(0, 0); got != Keyed {
				t.Errorf("corner = %v, want %v", got, Keyed)
			}
			if got := raster.At(out, 20, 20); got != subject {
				t.Errorf("subject = %v, want %v", got, subject)
			}
			if got := raster.At(in, 0, 0); got != backdrop {
				t.Errorf("input mutated: corner = %v", got)
			}
		})
	}
}

// edgeSprite is a 20x20 image with a blue backdrop across the top 8 rows and a
// red and green subject filling the rest, touching three sides. A near-white
// body sits inside the subject.
func edgeSprite(t *testing.T) raster.RasterImage {
	t.Helper()
	img, err := raster.New(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c := raster.RGB(20, 20, 200)
			switch {
			case y >= 10 && y < 16 && x >= 6 && x < 14:
				c = ghostBody
			case y >= 8 && x < 10:
				c = subject
			case y >= 8:
				c = backdrop
			}
			img.SetNRGBA(x, y, c.NRGBA())
		}
	}
	return img
}

var ghostBody = raster.RGB(245, 245, 255)

func TestRemoveIdempotent(t *testing.T) {
	tests := []struct {
		name string
		img  func(*testing.T) raster.RasterImage
	}{
		{"centred subject", sprite},
		{"subject on the border", edgeSprite},
	}
	for _, est := range []Estimator{Corner{}, EdgeMedian{}, Dominant{}} {
		for _, tt := range tests {
			t.Run(est.Name()+"/"+tt.name, func(t *testing.T) {
				r := &Remover{Estimator: est, Tolerance: DefaultTolerance}
				once, err := r.Remove(tt.img(t))
				if err != nil {
					t.Fatal(err)
				}
				ref, err := est.Estimate(once)
				if err != nil {
					t.Fatal(err)
				}
				if ref.A != 0 {
					t.Errorf("keyed image estimated as backdrop %v", ref)
				}
				twice, err := r.Remove(once)
				if err != nil {
					t.Fatal(err)
				}
				if !raster.Equal(once, twice) {
					t.Error("second pass changed the image")
				}
			})
		}
	}
}

func TestRemoveKeepsNearWhiteBody(t *testing.T) {
	for _, est := range []Estimator{Corner{}, EdgeMedian{}, Dominant{}} {
		t.Run(est.Name(), func(t *testing.T) {
			r := &Remover{Estimator: est, Tolerance: DefaultTolerance}
			out, err := r.Remove(edgeSprite(t))
			if err == nil {
				out, err = r.Remove(out)
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := raster.At(out, 10, 12); got != ghostBody {
				t.Errorf("body = %v, want %v", got, ghostBody)
			}
		})
	}
}

func TestRemoveThreshold(t *testing.T) {
	img, _ := raster.New(3, 1)
	img.SetNRGBA(0, 0, raster.RGB(100, 100, 100).NRGBA())
	img.SetNRGBA(1, 0, raster.RGB(149, 100, 100).NRGBA()) // 49 away: keyed
	img.SetNRGBA(2, 0, raster.RGB(150, 100, 100).NRGBA()) // 50 away: kept

	out, err := NewRemover().Remove(img)
	if err != nil {
		t.Fatal(err)
	}
	if out.NRGBAAt(1, 0) != Keyed {
		t.Errorf("pixel 49 away = %v, want keyed", out.NRGBAAt(1, 0))
	}
	if got := raster.At(out, 2, 0); got != raster.RGB(150, 100, 100) {
		t.Errorf("pixel 50 away = %v, want kept", got)
	}
}

func TestRemoveInvalidTolerance(t *testing.T) {
	for _, tol := range []int{-1, 0, 256} {
		_, err := (&Remover{Tolerance: tol}).Remove(sprite(t))
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("tolerance %d: error = %v, want INVALID_INPUT", tol, err)
		}
	}
}

func TestRemoveTransparentCanvasIsNoop(t *testing.T) {
	c := shape.NewCanvas(shape.DesignW, shape.DesignH)
	ops, err := shape.Blob(shape.BlobParams{
		Left:          c.X(30),
		Width:         c.X(240),
		Top:           c.Y(20),
		ShoulderY:     c.Y(140),
		BaseY:         c.Y(320),
		WaveSegments:  6,
		WaveAmplitude: c.Y(40),
		Fill:          raster.RGB(255, 255, 255),
		Outline:       raster.RGB(0, 0, 0),
		OutlineWidth:  c.Len(8),
	})
	if err != nil {
		t.Fatal(err)
	}
	in, err := shape.Render(c.W, c.H, ops)
	if err != nil {
		t.Fatal(err)
	}
	out, err := NewRemover().Remove(in)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(in, out) {
		t.Error("keying a sprite on a transparent canvas changed it")
	}
}

func TestCornerTouchingSubject(t *testing.T) {
	// The corner estimator keys the subject itself when it touches the corner.
	in := sprite(t)
	in.SetNRGBA(0, 0, subject.NRGBA())

	out, _ := NewRemover().Remove(in)
	if out.NRGBAAt(20, 20) != Keyed {
		t.Error("expected the subject to be cleared by the corner estimator")
	}

	out, _ = (&Remover{Estimator: EdgeMedian{}, Tolerance: DefaultTolerance}).Remove(in)
	if got := raster.At(out, 20, 20); got != subject {
		t.Errorf("edge-median cleared the subject: %v", got)
	}
}

func TestEstimators(t *testing.T) {
	in := sprite(t)
	tests := []struct {
		est  Estimator
		want raster.ColorSpec
	}{
		{Corner{}, backdrop},
		{EdgeMedian{}, backdrop},
		{Dominant{}, backdrop},
	}
	for _, tt := range tests {
		t.Run(tt.est.Name(), func(t *testing.T) {
			got, err := tt.est.Estimate(in)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Near(tt.want, 3) || got.A != 255 {
				t.Errorf("Estimate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimatorsTransparentBorder(t *testing.T) {
	img, _ := raster.New(10, 10)
	img.SetNRGBA(5, 5, subject.NRGBA())
	for _, est := range []Estimator{Corner{}, EdgeMedian{}, Dominant{}} {
		got, err := est.Estimate(img)
		if err != nil {
			t.Fatalf("%s: %v", est.Name(), err)
		}
		if got.A != 0 {
			t.Errorf("%s: alpha = %d, want 0", est.Name(), got.A)
		}
	}
}

func TestEstimatorsAnyTransparentBorderPixel(t *testing.T) {
	img := sprite(t)
	img.SetNRGBA(39, 20, Keyed)
	for _, est := range []Estimator{EdgeMedian{}, Dominant{}} {
		got, err := est.Estimate(img)
		if err != nil {
			t.Fatalf("%s: %v", est.Name(), err)
		}
		if got.A != 0 {
			t.Errorf("%s: reference = %v, want transparent", est.Name(), got)
		}
	}
}

func TestEdgeMedianSnapsToBorderPixel(t *testing.T) {
	img, _ := raster.New(3, 1)
	img.SetNRGBA(0, 0, raster.RGB(10, 200, 30).NRGBA())
	img.SetNRGBA(1, 0, raster.RGB(200, 20, 30).NRGBA())
	img.SetNRGBA(2, 0, raster.RGB(100, 100, 200).NRGBA())

	// The channel medians give (100, 100, 30), which no pixel has.
	got, err := EdgeMedian{}.Estimate(img)
	if err != nil {
		t.Fatal(err)
	}
	if want := raster.RGB(200, 20, 30); got != want {
		t.Errorf("Estimate = %v, want %v", got, want)
	}
}

func TestParseEstimator(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", EstimatorCorner, false},
		{"Corner", EstimatorCorner, false},
		{"edge-median", EstimatorEdgeMedian, false},
		{" dominant ", EstimatorDominant, false},
		{"kmeans", "", true},
	}
	for _, tt := range tests {
		est, err := ParseEstimator(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEstimator(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && est.Name() != tt.want {
			t.Errorf("ParseEstimator(%q) = %s, want %s", tt.in, est.Name(), tt.want)
		}
	}
}

func TestBorderPixels(t *testing.T) {
	img, _ := raster.New(4, 3)
	if got := len(borderPixels(img)); got != 10 {
		t.Errorf("4x3 border = %d pixels, want 10", got)
	}
	img, _ = raster.New(1, 1)
	if got := len(borderPixels(img)); got != 1 {
		t.Errorf("1x1 border = %d pixels, want 1", got)
	}
}
