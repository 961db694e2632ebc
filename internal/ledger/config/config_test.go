package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config-ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: ledger\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Ledger.DefaultHistoryLimit)
	assert.Equal(t, "database", cfg.Pricing.CacheStore)
	assert.Equal(t, 10*time.Second, cfg.Pricing.FetchTimeout)
	assert.Equal(t, []string{"vci", "yahoo"}, cfg.Pricing.DomesticSources)
	assert.Equal(t, []string{"yahoo", "alpha_vantage"}, cfg.Pricing.ForeignSources)
	assert.Equal(t, 8080, cfg.API.Port)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config-ledger.yaml")
	content := `
pricing:
  cache_store: redis
  fetch_timeout: 3s
  foreign_sources: [alpha_vantage]
scheduler:
  price_refresh_cron: "*/5 * * * *"
ledger:
  validate_ticker_on_buy: true
  default_history_limit: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Pricing.CacheStore)
	assert.Equal(t, 3*time.Second, cfg.Pricing.FetchTimeout)
	assert.Equal(t, []string{"alpha_vantage"}, cfg.Pricing.ForeignSources)
	assert.Equal(t, "*/5 * * * *", cfg.Scheduler.PriceRefreshCron)
	assert.True(t, cfg.Ledger.ValidateTickerOnBuy)
	assert.Equal(t, 50, cfg.Ledger.DefaultHistoryLimit)
}
