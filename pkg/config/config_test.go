package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDefaultMatchesCatalog(t *testing.T) {
	cfg := Default()
	if cfg.Canvas.Width != 300 || cfg.Canvas.Height != 400 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Chroma.Tolerance != 50 {
		t.Errorf("tolerance = %d, want 50", cfg.Chroma.Tolerance)
	}
	if got := cfg.Anchors["hat"]; got.TargetWidth != 120 || got.OffsetY != 5 {
		t.Errorf("hat policy = %+v", got)
	}
	if len(cfg.Sprites) != 14 {
		t.Errorf("default catalog has %d sprites, want 14", len(cfg.Sprites))
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse(`
workers = 2

[chroma]
tolerance = 30
estimator = "edge-median"

[anchors.hat]
target_width = 100
offset_y = 0
band_height = 160

[anchors.cape]
target_width_ratio = 0.9
offset_y = 400
band_height = 0
`)
	if err == nil {
		t.Fatal("expected cape band outside the canvas to fail")
	}

	cfg, err = Parse(`
workers = 2

[chroma]
tolerance = 30
estimator = "edge-median"

[anchors.hat]
target_width = 100
offset_y = 0
band_height = 160

[palette]
teal = "#1abc9c"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Workers != 2 || cfg.WorkerCount() != 2 {
		t.Errorf("workers = %d", cfg.Workers)
	}
	if cfg.Chroma.Tolerance != 30 || cfg.Chroma.Estimator != "edge-median" {
		t.Errorf("chroma = %+v", cfg.Chroma)
	}
	if got := cfg.Anchors["hat"]; got.TargetWidth != 100 || got.OffsetY != 0 {
		t.Errorf("hat = %+v", got)
	}
	if _, ok := cfg.Anchors["scarf"]; !ok {
		t.Error("scarf default lost")
	}
	if _, ok := cfg.Palette["red"]; !ok {
		t.Error("red default lost")
	}
	if got, err := cfg.Color("teal"); err != nil || got != raster.RGB(0x1a, 0xbc, 0x9c) {
		t.Errorf("Color(teal) = %v, %v", got, err)
	}
	if cfg.Canvas.Width != 300 {
		t.Error("canvas default lost")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", `[chroma`},
		{"unknown key", "[chroma]\nthreshold = 3"},
		{"tolerance", "[chroma]\ntolerance = 300"},
		{"zero tolerance", "[chroma]\ntolerance = 0"},
		{"estimator", "[chroma]\nestimator = \"kmeans\""},
		{"canvas", "[canvas]\nwidth = 0"},
		{"glow colour", "[glow]\ncolor = \"nope\""},
		{"negative glow", "[glow]\nradius = -1.0"},
		{"filter", "[export]\nfilter = \"nearest\""},
		{"scales", "[[export.scales]]\nfactor = 3\nratio = 1.0"},
		{"overlapping bands", "[anchors.scarf]\ntarget_width = 140\noffset_y = 100\nband_height = 60"},
		{"duplicate sprite", "[[sprites]]\nname = \"a\"\nkind = \"ghost\"\n[[sprites]]\nname = \"a\"\nkind = \"ghost\""},
		{"kind and source", "[[sprites]]\nname = \"a\"\nkind = \"ghost\"\nsource = \"a.png\""},
		{"unknown kind", "[[sprites]]\nname = \"a\"\nkind = \"cape\""},
		{"bad colour", "[[sprites]]\nname = \"a\"\nkind = \"scarf\"\ncolor = \"mauve\""},
		{"unknown category", "[[sprites]]\nname = \"a\"\nsource = \"a.png\"\ncategory = \"cape\""},
		{"bad name", "[[sprites]]\nname = \"../a\"\nkind = \"ghost\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	cfg.Chroma.Estimator = "dominant"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte("[export]\noutput = \"out\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Output != "out" {
		t.Errorf("output = %q", cfg.Export.Output)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestDerivedSettings(t *testing.T) {
	cfg := Default()

	r, err := cfg.Remover()
	if err != nil || r.Tolerance != 50 || r.Estimator.Name() != "corner" {
		t.Errorf("Remover = %+v, %v", r, err)
	}
	g, err := cfg.GlowOptions()
	if err != nil || g.Radius != 6 || g.Color.A != 200 {
		t.Errorf("GlowOptions = %+v, %v", g, err)
	}
	c := cfg.Compositor()
	if c.CanvasW != 300 || len(c.Policies) != 3 {
		t.Errorf("Compositor = %+v", c)
	}
	ex := cfg.Exporter()
	ex.Scales[0].Ratio = 0.5
	if cfg.Export.Scales[0].Ratio != 1 {
		t.Error("Exporter shares the scale slice with the config")
	}
	if names := cfg.PaletteNames(); !strings.HasPrefix(strings.Join(names, ","), "black,blue") {
		t.Errorf("PaletteNames = %v", names)
	}
}
