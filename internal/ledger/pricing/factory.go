package pricing

import (
	"fmt"
	"strings"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/config"
	"golang-stock-ledger/pkg/logger"
)

const (
	SourceVCI          = "vci"
	SourceYahoo        = "yahoo"
	SourceAlphaVantage = "alpha_vantage"
)

// NewRegistryFromConfig builds one fallback chain per market from the
// configured source names. Unknown names are an error.
func NewRegistryFromConfig(cfg config.Pricing, log *logger.Logger) (*Registry, error) {
	built := map[string]Source{}
	build := func(name string) (Source, error) {
		name = strings.ToLower(strings.TrimSpace(name))
		if src, ok := built[name]; ok {
			return src, nil
		}
		var src Source
		switch name {
		case SourceVCI:
			src = NewVCISource(cfg.VCI.BaseURL, cfg.VCI.MaxRequestPerMinute, log)
		case SourceYahoo:
			src = NewYahooSource(cfg.Yahoo.BaseURL, cfg.Yahoo.MaxRequestPerMinute, log)
		case SourceAlphaVantage:
			src = NewAlphaVantageSource(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, cfg.AlphaVantage.MaxRequestPerMinute, log)
		default:
			return nil, fmt.Errorf("unknown price source %q", name)
		}
		built[name] = src
		return src, nil
	}

	chain := func(names []string) (Source, error) {
		var sources []Source
		for _, n := range names {
			src, err := build(n)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
		if len(sources) == 1 {
			return sources[0], nil
		}
		return NewFallback(sources...), nil
	}

	registry := NewRegistry()
	domestic, err := chain(cfg.DomesticSources)
	if err != nil {
		return nil, err
	}
	foreign, err := chain(cfg.ForeignSources)
	if err != nil {
		return nil, err
	}
	registry.Register(entity.MarketDomestic, domestic).Register(entity.MarketForeign, foreign)
	return registry, nil
}
