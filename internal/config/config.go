package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/treediff/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Diff holds matching thresholds for the tree differ
	Diff DiffConfig `mapstructure:"diff" toml:"diff"`

	// Input holds input selection configuration
	Input InputConfig `mapstructure:"input" toml:"input"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output"`
}

// DiffConfig holds the matcher thresholds
type DiffConfig struct {
	// MinHeight is the minimum subtree height for the top-down phase
	MinHeight int `mapstructure:"min_height" toml:"min_height"`

	// MinDice is the minimum dice similarity for the bottom-up phase
	MinDice float64 `mapstructure:"min_dice" toml:"min_dice"`

	// Verify re-applies the computed script and checks the result
	Verify bool `mapstructure:"verify" toml:"verify"`
}

// InputConfig holds input selection configuration
type InputConfig struct {
	// Kind selects the parser: document or source
	Kind string `mapstructure:"kind" toml:"kind"`

	// IncludePatterns are glob patterns for directory diffs
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns are glob patterns excluded from directory diffs
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `mapstructure:"format" toml:"format"`

	// Raw emits the unsimplified edit script
	Raw bool `mapstructure:"raw" toml:"raw"`
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() *Config {
	return &Config{
		Diff: DiffConfig{
			MinHeight: domain.DefaultMinHeight,
			MinDice:   domain.DefaultMinDice,
		},
		Input: InputConfig{
			Kind: string(domain.InputKindDocument),
		},
		Output: OutputConfig{
			Format: string(domain.OutputFormatText),
		},
	}
}

// LoadConfig loads configuration from an explicit file or returns defaults.
// The TOML discovery path (.treediff.toml walked up from the working
// directory) lives in the TomlConfigLoader; this entry point handles the
// --config flag, which may point at any format viper understands.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not accessible: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Diff.MinHeight < 0 {
		return fmt.Errorf("diff.min_height must be >= 0, got %d", c.Diff.MinHeight)
	}
	if c.Diff.MinDice < 0.0 || c.Diff.MinDice > 1.0 {
		return fmt.Errorf("diff.min_dice must be between 0.0 and 1.0, got %f", c.Diff.MinDice)
	}
	switch c.Input.Kind {
	case string(domain.InputKindDocument), string(domain.InputKindSource):
	default:
		return fmt.Errorf("invalid input.kind '%s', must be one of: document, source", c.Input.Kind)
	}
	if !domain.OutputFormat(c.Output.Format).Valid() {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}
	return nil
}

// ToDiffRequest projects the configuration onto a diff request
func (c *Config) ToDiffRequest() *domain.DiffRequest {
	req := domain.DefaultDiffRequest()
	req.MinHeight = c.Diff.MinHeight
	req.MinDice = c.Diff.MinDice
	req.Verify = c.Diff.Verify
	req.InputKind = domain.InputKind(c.Input.Kind)
	req.OutputFormat = domain.OutputFormat(c.Output.Format)
	req.ShowRaw = c.Output.Raw
	return req
}
