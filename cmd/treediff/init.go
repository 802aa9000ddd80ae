package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treediff/internal/config"
	"github.com/ludo-technologies/treediff/internal/constants"
)

// InitCommand handles the init CLI command
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		configPath: constants.ConfigFileName,
	}
}

// CreateCobraCommand creates the Cobra command for config initialization
func (c *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Long: fmt.Sprintf(`Generate a default %s configuration file in the current directory.

The generated file documents every setting with its default value, so it
can be edited in place. Commands discover it by walking up from the
working directory.`, constants.ConfigFileName),
		Args: cobra.NoArgs,
		RunE: c.runInit,
	}

	cmd.Flags().BoolVarP(&c.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVarP(&c.configPath, "output", "o", c.configPath, "Path for the generated file")

	return cmd
}

func (c *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(c.configPath); err == nil && !c.force {
		return fmt.Errorf("configuration file %s already exists. Use --force to overwrite", c.configPath)
	}

	if err := config.WriteDefaultConfig(c.configPath); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", c.configPath)
	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
