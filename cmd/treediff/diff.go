package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treediff/app"
	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/service"
)

// DiffCommand handles the document diff CLI command
type DiffCommand struct {
	minHeight  int
	minDice    float64
	configFile string

	json   bool
	yaml   bool
	raw    bool
	verify bool
}

// NewDiffCommand creates a new diff command
func NewDiffCommand() *DiffCommand {
	return &DiffCommand{
		minHeight: domain.DefaultMinHeight,
		minDice:   domain.DefaultMinDice,
	}
}

// CreateCobraCommand creates the Cobra command for document diffing
func (c *DiffCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "Diff two JSON or YAML documents",
		Long: `Diff two JSON or YAML documents structurally.

The documents are parsed into trees and compared node by node. The result
is an edit script: the smallest set of inserts, deletes, updates and moves
the matcher found to turn LEFT into RIGHT.

Examples:
  # Human readable diff
  treediff diff old.yaml new.yaml

  # Machine readable output
  treediff diff --json old.json new.json

  # Tune the matcher for flat documents
  treediff diff --min-height 1 old.yaml new.yaml

  # Check the script really reproduces the right-hand document
  treediff diff --verify old.yaml new.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: c.runDiff,
	}

	c.registerFlags(cmd)
	return cmd
}

func (c *DiffCommand) registerFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&c.minHeight, "min-height", c.minHeight,
		"Minimum subtree height for top-down matching")
	cmd.Flags().Float64Var(&c.minDice, "min-dice", c.minDice,
		"Minimum dice similarity (0.0-1.0) for bottom-up matching")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")

	cmd.Flags().BoolVar(&c.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output as YAML")
	cmd.Flags().BoolVar(&c.raw, "raw", false, "Emit the unsimplified edit script")
	cmd.Flags().BoolVar(&c.verify, "verify", false,
		"Re-apply the script and verify it reproduces RIGHT")
}

func (c *DiffCommand) runDiff(cmd *cobra.Command, args []string) error {
	return c.run(cmd, args, domain.InputKindDocument)
}

func (c *DiffCommand) run(cmd *cobra.Command, args []string, kind domain.InputKind) error {
	req, err := c.buildRequest(cmd, args, kind)
	if err != nil {
		return err
	}

	useCase := app.NewDiffUseCase(service.NewDiffService(), service.NewDiffFormatter())
	resp, err := useCase.Execute(context.Background(), *req)
	if err != nil {
		return err
	}

	if !resp.Summary.Identical() {
		// Differences found: nonzero exit, like textual diff tools
		os.Exit(1)
	}
	return nil
}

// buildRequest merges configuration file settings and CLI flags into a
// request. Flags the user set explicitly win over the file.
func (c *DiffCommand) buildRequest(cmd *cobra.Command, args []string, kind domain.InputKind) (*domain.DiffRequest, error) {
	req, err := service.NewDiffConfigurationLoader().LoadDiffConfig(c.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	req.LeftPath = args[0]
	req.RightPath = args[1]
	req.InputKind = kind
	req.OutputWriter = cmd.OutOrStdout()

	explicit := GetExplicitFlags(cmd)
	if explicit["min-height"] {
		req.MinHeight = c.minHeight
	}
	if explicit["min-dice"] {
		req.MinDice = c.minDice
	}
	if explicit["raw"] {
		req.ShowRaw = c.raw
	}
	if explicit["verify"] {
		req.Verify = c.verify
	}

	format, err := resolveOutputFormat(c.json, c.yaml)
	if err != nil {
		return nil, err
	}
	if format != "" {
		req.OutputFormat = format
	}

	return req, nil
}

// resolveOutputFormat maps the format flags to an output format.
// An empty result means no flag was given and the config value applies.
func resolveOutputFormat(json, yaml bool) (domain.OutputFormat, error) {
	if json && yaml {
		return "", fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	switch {
	case json:
		return domain.OutputFormatJSON, nil
	case yaml:
		return domain.OutputFormatYAML, nil
	}
	return "", nil
}

// NewDiffCmd creates and returns the diff cobra command
func NewDiffCmd() *cobra.Command {
	return NewDiffCommand().CreateCobraCommand()
}
