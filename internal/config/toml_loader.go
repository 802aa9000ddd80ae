package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/treediff/internal/constants"
)

// TreediffTomlConfig represents the structure of .treediff.toml.
// Pointer fields distinguish "unset" from the zero value so file settings
// only override what they actually mention.
type TreediffTomlConfig struct {
	Diff   TomlDiffConfig   `toml:"diff"`
	Input  TomlInputConfig  `toml:"input"`
	Output TomlOutputConfig `toml:"output"`
}

type TomlDiffConfig struct {
	MinHeight *int     `toml:"min_height"`
	MinDice   *float64 `toml:"min_dice"`
	Verify    *bool    `toml:"verify"`
}

type TomlInputConfig struct {
	Kind            string   `toml:"kind"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

type TomlOutputConfig struct {
	Format string `toml:"format"`
	Raw    *bool  `toml:"raw"`
}

// TomlConfigLoader handles TOML configuration discovery and loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration with the following priority:
// 1. .treediff.toml found in startDir or an ancestor
// 2. defaults
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	path, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFromFile(path)
}

// LoadFromFile parses a .treediff.toml file and merges it over the defaults
func (l *TomlConfigLoader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fileConfig TreediffTomlConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	applyTomlConfig(config, &fileConfig)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FindConfigFile walks from startDir to the filesystem root looking for
// the dedicated configuration file.
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, constants.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func applyTomlConfig(config *Config, file *TreediffTomlConfig) {
	if file.Diff.MinHeight != nil {
		config.Diff.MinHeight = *file.Diff.MinHeight
	}
	if file.Diff.MinDice != nil {
		config.Diff.MinDice = *file.Diff.MinDice
	}
	if file.Diff.Verify != nil {
		config.Diff.Verify = *file.Diff.Verify
	}
	if file.Input.Kind != "" {
		config.Input.Kind = file.Input.Kind
	}
	if len(file.Input.IncludePatterns) > 0 {
		config.Input.IncludePatterns = file.Input.IncludePatterns
	}
	if len(file.Input.ExcludePatterns) > 0 {
		config.Input.ExcludePatterns = file.Input.ExcludePatterns
	}
	if file.Output.Format != "" {
		config.Output.Format = file.Output.Format
	}
	if file.Output.Raw != nil {
		config.Output.Raw = *file.Output.Raw
	}
}
