package config

import (
	"time"

	"golang-stock-ledger/pkg/config"
)

// Ledger holds bookkeeping options.
type Ledger struct {
	ValidateTickerOnBuy bool `mapstructure:"validate_ticker_on_buy"`
	DefaultHistoryLimit int  `mapstructure:"default_history_limit"`
}

// PriceSource holds settings for one upstream quote provider. A source is used
// only when its name appears in DomesticSources or ForeignSources.
type PriceSource struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Pricing holds price lookup settings. CacheStore is "database", "redis" or "memory".
type Pricing struct {
	CacheStore      string        `mapstructure:"cache_store"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	ReportWorkers   int           `mapstructure:"report_workers"`
	DomesticSources []string      `mapstructure:"domestic_sources"`
	ForeignSources  []string      `mapstructure:"foreign_sources"`
	VCI             PriceSource   `mapstructure:"vci"`
	Yahoo           PriceSource   `mapstructure:"yahoo"`
	AlphaVantage    PriceSource   `mapstructure:"alpha_vantage"`
}

// Scheduler holds the cron expressions for background tasks. Empty disables a task.
type Scheduler struct {
	PollingInterval  time.Duration `mapstructure:"polling_interval"`
	PriceRefreshCron string        `mapstructure:"price_refresh_cron"`
	AlertCheckCron   string        `mapstructure:"alert_check_cron"`
	TaskTimeout      time.Duration `mapstructure:"task_timeout"`
}

// Config holds the full configuration for the ledger service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Telegram  config.Telegram `mapstructure:"telegram"`
	Ledger    Ledger          `mapstructure:"ledger"`
	Pricing   Pricing         `mapstructure:"pricing"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
}

// Load loads the ledger configuration from the given path and fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Ledger.DefaultHistoryLimit <= 0 {
		c.Ledger.DefaultHistoryLimit = 20
	}
	if c.Pricing.CacheStore == "" {
		c.Pricing.CacheStore = "database"
	}
	if c.Pricing.FetchTimeout <= 0 {
		c.Pricing.FetchTimeout = 10 * time.Second
	}
	if c.Pricing.ReportWorkers <= 0 {
		c.Pricing.ReportWorkers = 4
	}
	if len(c.Pricing.DomesticSources) == 0 {
		c.Pricing.DomesticSources = []string{"vci", "yahoo"}
	}
	if len(c.Pricing.ForeignSources) == 0 {
		c.Pricing.ForeignSources = []string{"yahoo", "alpha_vantage"}
	}
	if c.Scheduler.PollingInterval <= 0 {
		c.Scheduler.PollingInterval = 30 * time.Second
	}
	if c.Scheduler.TaskTimeout <= 0 {
		c.Scheduler.TaskTimeout = 2 * time.Minute
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = 60
	}
}
