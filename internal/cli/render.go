package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/observability"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
	"github.com/matzehuels/spriteforge/pkg/shape"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // imageset root; overrides [export] output
	workers int    // overrides the configured worker count when > 0
	pick    bool   // choose sprites interactively
}

// renderCommand creates the render command for the procedural catalog.
// Arguments filter the catalog by sprite name or shape kind.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [name|kind...]",
		Short: "Render the sprite catalog to imagesets",
		Long: `Render draws every catalog sprite from the configuration, keys it, and
exports a 1x/2x/3x imageset with a Contents.json manifest.

Arguments select sprites by name (mavi_sapka) or by kind (beanie, ghost).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, opts)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return c.catalogNames(), cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output asset catalog directory")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel sprites (default from config)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose sprites interactively")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, path, err := c.loadConfig()
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	applyOverrides(cfg, opts.output, opts.workers)

	sprites, err := pipeline.SpritesFromConfig(cfg)
	if err != nil {
		return err
	}
	sprites, err = filterSprites(sprites, args)
	if err != nil {
		return err
	}

	if opts.pick {
		fm, err := tea.NewProgram(NewSpritePickerModel(sprites)).Run()
		if err != nil {
			return err
		}
		m, ok := fm.(SpritePickerModel)
		if sprites = m.Selection(); !ok || len(sprites) == 0 {
			printDetail("No selection made")
			return nil
		}
	}

	return c.runBatch(ctx, cfg, sprites)
}

// applyOverrides copies command-line overrides into cfg.
func applyOverrides(cfg *config.Config, output string, workers int) {
	if output != "" {
		cfg.Export.Output = output
	}
	if workers > 0 {
		cfg.Workers = workers
	}
}

// filterSprites keeps the sprites whose name or kind is listed in args.
// No args keeps everything; an arg matching nothing is an error.
func filterSprites(sprites []pipeline.Sprite, args []string) ([]pipeline.Sprite, error) {
	if len(args) == 0 {
		return sprites, nil
	}
	used := make(map[string]bool, len(args))
	var out []pipeline.Sprite
	for _, s := range sprites {
		for _, a := range args {
			if s.Name == a || (s.Procedural != nil && string(s.Procedural.Kind) == a) {
				used[a] = true
				out = append(out, s)
				break
			}
		}
	}
	var missing []string
	for _, a := range args {
		if !used[a] {
			missing = append(missing, a)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("no catalog sprite matches %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// catalogNames lists sprite names and kinds for shell completion.
func (c *CLI) catalogNames() []string {
	cfg, _, err := c.loadConfig()
	if err != nil {
		return nil
	}
	var names []string
	for _, k := range shape.Kinds() {
		names = append(names, string(k))
	}
	for _, s := range cfg.Sprites {
		names = append(names, s.Name)
	}
	return names
}

// runBatch runs sprites under a spinner and prints the summary table. It fails
// when any sprite failed; skipped sprites only warn.
func (c *CLI) runBatch(ctx context.Context, cfg *config.Config, sprites []pipeline.Sprite) error {
	logger := loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Processing %d sprites...", len(sprites)))
	runner := c.newRunner(cfg, logger, observability.Hooks{Batch: newBatchProgress(spinner)})

	spinner.Start()
	batch := runner.Run(ctx, sprites)
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	printBatch(batch)
	if n := batch.Count(pipeline.StatusOK); n > 0 {
		printFile(cfg.Export.Output)
	}
	if batch.Failed() {
		return fmt.Errorf("%d of %d sprites failed", batch.Count(pipeline.StatusFailed), len(sprites))
	}
	return nil
}
