package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treediff/internal/version"
)

// VersionCommand handles the version CLI command
type VersionCommand struct {
	short bool
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{}
}

// CreateCobraCommand creates the Cobra command for version information
func (c *VersionCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE:  c.runVersion,
	}

	cmd.Flags().BoolVar(&c.short, "short", false, "Print just the version number")

	return cmd
}

func (c *VersionCommand) runVersion(cmd *cobra.Command, args []string) error {
	if c.short {
		fmt.Fprintln(cmd.OutOrStdout(), version.Short())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	return nil
}

// NewVersionCmd creates and returns the version cobra command
func NewVersionCmd() *cobra.Command {
	return NewVersionCommand().CreateCobraCommand()
}
