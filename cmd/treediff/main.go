package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treediff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "treediff",
	Short: "Structural diffing for trees",
	Long: `treediff compares two ordered labeled trees and reports the changes
as an edit script of inserts, deletes, updates and moves.

It matches nodes in two phases (top-down on identical subtrees, bottom-up
on container similarity), so moved and renamed structure is recognized
instead of being reported as remove-and-re-add.

Inputs can be JSON/YAML documents or Python source files.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewSourceCmd())
	rootCmd.AddCommand(NewDirCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
