package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/pkg/logger"
)

const DefaultYahooBaseURL = "https://query2.finance.yahoo.com"

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// YahooSource reads quotes from the Yahoo Finance v8 chart endpoint. Domestic
// tickers are looked up with the ".VN" suffix.
type YahooSource struct {
	httpSource
}

// NewYahooSource creates a Yahoo source. An empty baseURL uses DefaultYahooBaseURL.
func NewYahooSource(baseURL string, maxRequestPerMinute int, log *logger.Logger) *YahooSource {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooSource{httpSource: newHTTPSource("yahoo", baseURL, maxRequestPerMinute, log)}
}

func (s *YahooSource) Name() string { return s.name }

func (s *YahooSource) FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error) {
	symbol := ticker
	if market == entity.MarketDomestic {
		symbol += ".VN"
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", s.baseURL, url.PathEscape(symbol))
	var raw yahooChartResponse
	if err := s.doJSON(ctx, http.MethodGet, endpoint, nil, &raw); err != nil {
		return 0, unavailable(s.name, ticker, err)
	}
	if len(raw.Chart.Result) == 0 {
		return 0, unavailable(s.name, ticker, nil)
	}

	r := raw.Chart.Result[0]
	if r.Meta.RegularMarketPrice > 0 {
		return r.Meta.RegularMarketPrice, nil
	}
	if len(r.Indicators.Quote) > 0 {
		closes := r.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				return closes[i], nil
			}
		}
	}
	return 0, unavailable(s.name, ticker, nil)
}
