package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/anchor"
	"github.com/matzehuels/spriteforge/pkg/chroma"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
	"github.com/matzehuels/spriteforge/pkg/source"
)

// processOpts holds the command-line flags for the process command.
type processOpts struct {
	category  string
	name      string
	noKey     bool
	glow      bool
	estimator string
	tolerance int
	output    string
	workers   int
}

// processCommand creates the process command for upstream artwork.
func (c *CLI) processCommand() *cobra.Command {
	var opts processOpts

	cmd := &cobra.Command{
		Use:   "process <file...>",
		Short: "Key, crop and anchor generated artwork",
		Long: `Process runs image files (PNG, JPEG, GIF, BMP, WebP, SVG) through background
removal, crop-and-anchor for the given accessory category and multi-scale export.

Sprite names default to the sanitized file name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("tolerance") {
				opts.tolerance = -1
			}
			return c.runProcess(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "accessory category: "+categoryList())
	cmd.Flags().StringVar(&opts.name, "name", "", "sprite name (single file only)")
	cmd.Flags().BoolVar(&opts.noKey, "no-key", false, "keep the background")
	cmd.Flags().BoolVar(&opts.glow, "glow", false, "add the configured glow halo")
	cmd.Flags().StringVar(&opts.estimator, "estimator", "", "background estimator: "+strings.Join(chroma.EstimatorNames(), ", "))
	cmd.Flags().IntVar(&opts.tolerance, "tolerance", chroma.DefaultTolerance, "colour distance below which pixels are removed (1-255)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output asset catalog directory")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel sprites (default from config)")

	return cmd
}

func (c *CLI) runProcess(ctx context.Context, files []string, opts processOpts) error {
	cfg, _, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts.output, opts.workers)
	if opts.estimator != "" {
		cfg.Chroma.Estimator = opts.estimator
	}
	if opts.tolerance >= 0 {
		cfg.Chroma.Tolerance = opts.tolerance
	}

	sprites, err := processSprites(files, opts)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("processing files", "sprites", describeSprites(sprites), "category", opts.category)
	return c.runBatch(ctx, cfg, sprites)
}

// processSprites builds one job per file.
func processSprites(files []string, opts processOpts) ([]pipeline.Sprite, error) {
	if opts.name != "" && len(files) > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--name needs exactly one file, got %d", len(files))
	}
	var cat anchor.Category
	if opts.category != "" {
		var err error
		if cat, err = anchor.ParseCategory(opts.category); err != nil {
			return nil, err
		}
	}

	sprites := make([]pipeline.Sprite, 0, len(files))
	for _, f := range files {
		if !source.Supported(f) {
			return nil, errors.New(errors.ErrCodeUnsupported, "%s: unsupported file type (want %s)", f, strings.Join(source.Extensions, ", "))
		}
		name := opts.name
		if name == "" {
			name = spriteName(f)
		}
		sprites = append(sprites, pipeline.Sprite{
			Name:     name,
			Path:     f,
			Category: cat,
			Glow:     opts.glow,
			Key:      !opts.noKey,
		})
	}
	return sprites, nil
}

// spriteName derives a sprite name from a file path.
func spriteName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return errors.SanitizeSpriteName(stem)
}

func categoryList() string {
	cats := anchor.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// describeSprites lists sprite names for log lines.
func describeSprites(sprites []pipeline.Sprite) string {
	names := make([]string, len(sprites))
	for i, s := range sprites {
		names[i] = s.Name
	}
	return fmt.Sprintf("%d (%s)", len(sprites), strings.Join(names, ", "))
}
