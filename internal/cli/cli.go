package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/buildinfo"
	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/observability"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spriteforge"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string // --config; empty means search the default locations
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spriteforge draws, cleans and exports character sprites",
		Long:         `Spriteforge renders procedural character sprites, removes flat backgrounds from generated art, anchors accessories on the base character and exports Xcode imagesets at 1x, 2x and 3x.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (default: ./"+config.DefaultFile+" or the user config dir)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.processCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the configuration. An explicit --config must exist; otherwise
// the first file found in the working directory or the user config dir is used,
// falling back to the built-in defaults.
func (c *CLI) loadConfig() (*config.Config, string, error) {
	if c.ConfigPath != "" {
		cfg, err := config.Load(c.ConfigPath)
		return cfg, c.ConfigPath, err
	}
	for _, path := range configCandidates() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := config.Load(path)
			return cfg, path, err
		}
	}
	return config.Default(), "", nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg *config.Config, logger *log.Logger, hooks observability.Hooks) *pipeline.Runner {
	r := pipeline.NewRunner(cfg, logger)
	r.Hooks = hooks
	return r
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/spriteforge/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// configCandidates lists the implicit config locations in lookup order.
func configCandidates() []string {
	paths := []string{config.DefaultFile}
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, config.DefaultFile))
	}
	return paths
}
