package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	App      App      `mapstructure:"app"`
	Database Database `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  name: ledger
  time_zone: Asia/Ho_Chi_Minh
database:
  driver: sqlite
  path: ledger.db
  auto_migrate: true
redis:
  host: localhost
  port: 6379
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	var cfg sample
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "ledger", cfg.App.Name)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.App.TimeZone)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "ledger.db", cfg.Database.Path)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoadMissingFile(t *testing.T) {
	var cfg sample
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.App.Name)
}
