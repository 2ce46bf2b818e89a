package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
company:
  name: Calvin Tech Solutions
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "R", cfg.Company.CurrencySymbol)
	assert.Equal(t, "South Africa", cfg.Company.GoverningLaw)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.False(t, cfg.Email.Enabled)
}

func TestLoad_MissingCompanyName(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company.name is required")
}

func TestLoad_EmailEnabledNeedsHost(t *testing.T) {
	path := writeConfig(t, `
company:
  name: Calvin Tech Solutions
email:
  enabled: true
  from: billing@example.com
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.smtp_host is required")
}
