package cli

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/errors"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadConfig()
			if err != nil {
				return err
			}
			if path == "" {
				path = "built-in defaults"
			}
			loggerFromContext(cmd.Context()).Debug("effective config", "source", path)
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := writeDefaultConfig(path, force); err != nil {
				return err
			}
			printSuccess("Config written")
			printFile(path)
			printNextStep("Render the catalog", appName+" render -c "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// writeDefaultConfig encodes the defaults to path. Existing files are kept
// unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}

	var buf bytes.Buffer
	if err := config.Default().Encode(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
