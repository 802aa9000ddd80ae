package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treediff/app"
	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/config"
	"github.com/ludo-technologies/treediff/service"
)

// DirCommand handles the directory diff CLI command
type DirCommand struct {
	minHeight  int
	minDice    float64
	configFile string

	includePatterns []string
	excludePatterns []string
	source          bool

	json bool
	yaml bool
}

// NewDirCommand creates a new dir command
func NewDirCommand() *DirCommand {
	return &DirCommand{
		minHeight: domain.DefaultMinHeight,
		minDice:   domain.DefaultMinDice,
	}
}

// CreateCobraCommand creates the Cobra command for directory diffing
func (c *DirCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir LEFT RIGHT",
		Short: "Diff two directory trees of documents",
		Long: `Diff two directory trees file by file.

Files present on both sides are diffed structurally; files present on one
side only are reported as added or removed. Which files are considered is
controlled by the include and exclude glob patterns.

Examples:
  # Compare two configuration trees
  treediff dir configs/staging configs/production

  # Restrict to YAML files
  treediff dir --include "**/*.yaml" left/ right/

  # Compare Python packages structurally
  treediff dir --source --include "**/*.py" v1/ v2/`,
		Args: cobra.ExactArgs(2),
		RunE: c.runDir,
	}

	cmd.Flags().IntVar(&c.minHeight, "min-height", c.minHeight,
		"Minimum subtree height for top-down matching")
	cmd.Flags().Float64Var(&c.minDice, "min-dice", c.minDice,
		"Minimum dice similarity (0.0-1.0) for bottom-up matching")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")

	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil,
		"Include file patterns (e.g. '**/*.yaml')")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil,
		"Exclude file patterns (e.g. '**/generated/**')")
	cmd.Flags().BoolVar(&c.source, "source", false,
		"Treat files as Python source instead of documents")

	cmd.Flags().BoolVar(&c.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output as YAML")

	return cmd
}

func (c *DirCommand) runDir(cmd *cobra.Command, args []string) error {
	req, err := c.buildRequest(cmd, args)
	if err != nil {
		return err
	}

	differ := service.NewDirDiffer(service.NewDiffService(), service.NewProgressManager())
	useCase := app.NewDirDiffUseCase(differ, service.NewDiffFormatter())
	_, err = useCase.Execute(context.Background(), *req)
	return err
}

func (c *DirCommand) buildRequest(cmd *cobra.Command, args []string) (*domain.DirDiffRequest, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	req := domain.DefaultDirDiffRequest()
	req.LeftDir = args[0]
	req.RightDir = args[1]
	req.MinHeight = cfg.Diff.MinHeight
	req.MinDice = cfg.Diff.MinDice
	req.InputKind = domain.InputKind(cfg.Input.Kind)
	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.OutputWriter = cmd.OutOrStdout()
	if len(cfg.Input.IncludePatterns) > 0 {
		req.IncludePatterns = cfg.Input.IncludePatterns
	}
	if len(cfg.Input.ExcludePatterns) > 0 {
		req.ExcludePatterns = cfg.Input.ExcludePatterns
	}

	explicit := GetExplicitFlags(cmd)
	if explicit["min-height"] {
		req.MinHeight = c.minHeight
	}
	if explicit["min-dice"] {
		req.MinDice = c.minDice
	}
	if explicit["include"] {
		req.IncludePatterns = c.includePatterns
	}
	if explicit["exclude"] {
		req.ExcludePatterns = c.excludePatterns
	}
	if c.source {
		req.InputKind = domain.InputKindSource
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

func (c *DirCommand) loadConfig() (*config.Config, error) {
	if c.configFile != "" {
		return config.LoadConfig(c.configFile)
	}
	return config.NewTomlConfigLoader().LoadConfig(".")
}

// NewDirCmd creates and returns the dir cobra command
func NewDirCmd() *cobra.Command {
	return NewDirCommand().CreateCobraCommand()
}
