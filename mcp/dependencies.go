package mcp

import (
	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/config"
	"github.com/ludo-technologies/treediff/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	diffService domain.DiffService
	config      *config.Config
	configPath  string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		diffService: service.NewDiffService(),
		config:      cfg,
		configPath:  configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// DiffService exposes the shared diff service.
func (d *Dependencies) DiffService() domain.DiffService {
	return d.diffService
}
