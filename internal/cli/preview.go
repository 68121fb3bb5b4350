package cli

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/anchor"
	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/raster"
	"github.com/matzehuels/spriteforge/pkg/shape"
	"github.com/matzehuels/spriteforge/pkg/source"
)

const defaultPreviewFile = "preview.png"

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	base   string // base image; empty renders the standard ghost
	output string
}

// previewCommand creates the preview command that stacks accessory layers on
// a base character.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <layer...>",
		Short: "Stack accessory layers on a base sprite",
		Long: `Preview composites exported accessory PNGs over a base character in the
given order and writes the result, to check anchoring by eye.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.base, "base", "", "base character image (default: rendered standard ghost)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultPreviewFile, "output PNG file")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, layers []string, opts previewOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, _, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}

	base, err := previewBase(cfg, opts.base)
	if err != nil {
		return err
	}
	w, h := base.Rect.Dx(), base.Rect.Dy()

	imgs := make([]raster.RasterImage, 0, len(layers))
	for _, path := range layers {
		img, err := source.Load(path, w, h)
		if err != nil {
			return fmt.Errorf("layer %s: %w", path, err)
		}
		if img.Rect.Dx() != w || img.Rect.Dy() != h {
			logger.Warn("layer size differs from base, fitting", "layer", path,
				"size", fmt.Sprintf("%dx%d", img.Rect.Dx(), img.Rect.Dy()))
			if img, err = source.Fit(img, w, h); err != nil {
				return err
			}
		}
		imgs = append(imgs, img)
	}

	out, err := anchor.Stack(base, imgs...)
	if err != nil {
		return err
	}
	if err := imaging.Save(out, opts.output); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", opts.output)
	}

	prog.done(fmt.Sprintf("Stacked %d layers", len(imgs)))
	printSuccess("Preview written")
	printFile(opts.output)
	return nil
}

// previewBase loads path, or renders the standard ghost on the configured canvas.
func previewBase(cfg *config.Config, path string) (raster.RasterImage, error) {
	if path != "" {
		return source.Load(path, cfg.Canvas.Width, cfg.Canvas.Height)
	}
	canvas := shape.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height)
	ops, err := shape.Build(canvas, shape.Spec{Kind: shape.KindGhost, Variant: shape.GhostStandard})
	if err != nil {
		return nil, err
	}
	return shape.Render(canvas.W, canvas.H, ops)
}
