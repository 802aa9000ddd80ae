package service

import (
	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/config"
)

// DiffConfigurationLoaderImpl implements the DiffConfigurationLoader interface
type DiffConfigurationLoaderImpl struct{}

// NewDiffConfigurationLoader creates a new configuration loader service
func NewDiffConfigurationLoader() *DiffConfigurationLoaderImpl {
	return &DiffConfigurationLoaderImpl{}
}

// LoadDiffConfig loads configuration into a diff request. An explicit path
// is loaded directly; an empty path triggers .treediff.toml discovery from
// the working directory upward.
func (l *DiffConfigurationLoaderImpl) LoadDiffConfig(configPath string) (*domain.DiffRequest, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.NewTomlConfigLoader().LoadConfig(".")
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg.ToDiffRequest(), nil
}

// GetDefaultDiffConfig returns the default diff configuration
func (l *DiffConfigurationLoaderImpl) GetDefaultDiffConfig() *domain.DiffRequest {
	return config.DefaultConfig().ToDiffRequest()
}
