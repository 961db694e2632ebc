package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/pkg/logger"
)

const DefaultAlphaVantageBaseURL = "https://www.alphavantage.co"

type alphaVantageQuote struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

// AlphaVantageSource reads GLOBAL_QUOTE. It only serves the foreign market.
type AlphaVantageSource struct {
	httpSource
	apiKey string
}

// NewAlphaVantageSource creates an Alpha Vantage source. An empty baseURL uses DefaultAlphaVantageBaseURL.
func NewAlphaVantageSource(baseURL, apiKey string, maxRequestPerMinute int, log *logger.Logger) *AlphaVantageSource {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageBaseURL
	}
	return &AlphaVantageSource{
		httpSource: newHTTPSource("alpha_vantage", baseURL, maxRequestPerMinute, log),
		apiKey:     apiKey,
	}
}

func (s *AlphaVantageSource) Name() string { return s.name }

func (s *AlphaVantageSource) FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error) {
	if market != entity.MarketForeign || s.apiKey == "" {
		return 0, unavailable(s.name, ticker, nil)
	}

	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", ticker)
	q.Set("apikey", s.apiKey)

	var raw alphaVantageQuote
	if err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/query?%s", s.baseURL, q.Encode()), nil, &raw); err != nil {
		return 0, unavailable(s.name, ticker, err)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(raw.GlobalQuote.Price), 64)
	if err != nil || price <= 0 {
		return 0, unavailable(s.name, ticker, err)
	}
	return price, nil
}
