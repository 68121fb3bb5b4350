// Package pkg provides the core libraries for spriteforge sprite production.
//
// # Overview
//
// Spriteforge turns procedural shape descriptions and generated artwork into
// transparent, anchored sprites exported as Xcode imagesets. The pkg directory
// is organized into three areas:
//
//  1. Imaging stages ([shape], [fx], [chroma], [anchor], [export])
//  2. Inputs and settings ([source], [config])
//  3. Orchestration and support ([pipeline], [observability], [errors], [raster])
//
// # Architecture
//
// The data flow for one sprite:
//
//	Procedural spec or upstream file
//	         ↓
//	    [shape] or [source] (master raster on the canvas)
//	         ↓
//	    [fx] (optional glow)
//	         ↓
//	    [chroma] (flat background removed)
//	         ↓
//	    [anchor] (cropped, scaled and placed, accessories only)
//	         ↓
//	    [export] (3x/2x/1x variants + Contents.json, written atomically)
//
// # Quick Start
//
// Render one accessory and export it:
//
//	canvas := shape.NewCanvas(shape.DesignW, shape.DesignH)
//	ops, _ := shape.Build(canvas, shape.Spec{Kind: shape.KindBeanie, Color: raster.MustHex("#3498db")})
//	img, _ := shape.Render(canvas.W, canvas.H, ops)
//	img, _ = chroma.NewRemover().Remove(img)
//	variants, _ := export.NewExporter().Variants("mavi_sapka", img)
//	files, _ := export.Encode(variants)
//	dir, _ := export.WriteImageSet("Assets.xcassets", "mavi_sapka", files, export.NewManifest(variants))
//
// Or run a whole catalog in parallel:
//
//	cfg, _ := config.Load("spriteforge.toml")
//	sprites, _ := pipeline.SpritesFromConfig(cfg)
//	batch := pipeline.NewRunner(cfg, logger).Run(ctx, sprites)
//
// # Main Packages
//
//   - [raster]: RGBA image and colour types shared by every stage
//   - [shape]: canvas, primitive ops, blob builder and sprite catalog, drawn with fogleman/gg
//   - [fx]: glow halo via disintegration/imaging blur
//   - [chroma]: background colour estimators and the chroma-key remover
//   - [anchor]: auto-crop, category anchor policies and layer stacking
//   - [export]: multi-scale variants, Contents.json and atomic imageset writes
//   - [source]: bitmap and SVG loading for upstream artwork
//   - [config]: TOML configuration with defaults, palette and sprite catalog
//   - [pipeline]: per-sprite stage runner and parallel batches
//   - [observability]: stage and batch hooks
//   - [errors]: coded errors and input validation
//
// # Testing
//
// Every package tests against synthetic in-memory images; writers use
// t.TempDir. Run:
//
//	go test ./...
package pkg
