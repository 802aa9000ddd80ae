package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treediff/domain"
)

// SourceCommand handles the source diff CLI command. It shares flags and
// execution with DiffCommand; only the input kind differs.
type SourceCommand struct {
	*DiffCommand
}

// NewSourceCommand creates a new source command
func NewSourceCommand() *SourceCommand {
	return &SourceCommand{DiffCommand: NewDiffCommand()}
}

// CreateCobraCommand creates the Cobra command for source diffing
func (c *SourceCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source LEFT RIGHT",
		Short: "Diff two Python source files",
		Long: `Diff two Python source files structurally.

The files are parsed into syntax trees, so the diff follows code structure
instead of lines: a function moved inside its class reports as a single
move, and a renamed variable as an update, even when the textual diff
touches dozens of lines.

Examples:
  # Structural diff of two revisions of a file
  treediff source old.py new.py

  # Machine readable output
  treediff source --json old.py new.py`,
		Args: cobra.ExactArgs(2),
		RunE: c.runSource,
	}

	c.registerFlags(cmd)
	return cmd
}

func (c *SourceCommand) runSource(cmd *cobra.Command, args []string) error {
	return c.run(cmd, args, domain.InputKindSource)
}

// NewSourceCmd creates and returns the source cobra command
func NewSourceCmd() *cobra.Command {
	return NewSourceCommand().CreateCobraCommand()
}
