package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/constants"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds the values rendered into the default config
// template. They are sourced from the domain defaults so the generated
// file and the runtime agree.
type DefaultConfigValues struct {
	MinHeight       int
	MinDice         float64
	Kind            string
	IncludePatterns []string
	Format          string
}

// GenerateDefaultConfig renders the default .treediff.toml content
func GenerateDefaultConfig() (string, error) {
	tmpl, err := template.New("config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse config template: %w", err)
	}

	values := DefaultConfigValues{
		MinHeight:       domain.DefaultMinHeight,
		MinDice:         domain.DefaultMinDice,
		Kind:            string(domain.InputKindDocument),
		IncludePatterns: constants.DefaultIncludePatterns,
		Format:          string(domain.OutputFormatText),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}
	return buf.String(), nil
}

// WriteDefaultConfig writes the default configuration to path
func WriteDefaultConfig(path string) error {
	content, err := GenerateDefaultConfig()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
