package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treediff/domain"
)

func TestDiffConfigurationLoaderDefaults(t *testing.T) {
	loader := NewDiffConfigurationLoader()

	req := loader.GetDefaultDiffConfig()
	assert.Equal(t, domain.DefaultMinHeight, req.MinHeight)
	assert.Equal(t, domain.DefaultMinDice, req.MinDice)
	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
}

func TestDiffConfigurationLoaderExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := "[diff]\nmin_height = 3\nmin_dice = 0.7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loader := NewDiffConfigurationLoader()
	req, err := loader.LoadDiffConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, req.MinHeight)
	assert.Equal(t, 0.7, req.MinDice)
}

func TestDiffConfigurationLoaderMissingFile(t *testing.T) {
	loader := NewDiffConfigurationLoader()

	_, err := loader.LoadDiffConfig("/non/existing/config.toml")
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeConfigError, domainErr.Code)
}
