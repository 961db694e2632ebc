package pricing

import (
	"context"
	"net/http"
	"time"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/pkg/logger"
)

const DefaultVCIBaseURL = "https://trading.vietcap.com.vn"

type vciChartRequest struct {
	TimeFrame string   `json:"timeFrame"`
	Symbols   []string `json:"symbols"`
	To        int64    `json:"to"`
	CountBack int      `json:"countBack"`
}

type vciChartSeries struct {
	Symbol string    `json:"symbol"`
	Close  []float64 `json:"c"`
}

// VCISource reads the latest daily close from the Vietcap chart API.
// It only serves the domestic market.
type VCISource struct {
	httpSource
	now func() time.Time
}

// NewVCISource creates a Vietcap source. An empty baseURL uses DefaultVCIBaseURL.
func NewVCISource(baseURL string, maxRequestPerMinute int, log *logger.Logger) *VCISource {
	if baseURL == "" {
		baseURL = DefaultVCIBaseURL
	}
	return &VCISource{
		httpSource: newHTTPSource("vci", baseURL, maxRequestPerMinute, log),
		now:        time.Now,
	}
}

func (s *VCISource) Name() string { return s.name }

func (s *VCISource) FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error) {
	if market != entity.MarketDomestic {
		return 0, unavailable(s.name, ticker, nil)
	}

	payload := vciChartRequest{
		TimeFrame: "ONE_DAY",
		Symbols:   []string{ticker},
		To:        s.now().Unix(),
		CountBack: 5,
	}
	var series []vciChartSeries
	if err := s.doJSON(ctx, http.MethodPost, s.baseURL+"/api/chart/OHLCChart/gap-chart", payload, &series); err != nil {
		return 0, unavailable(s.name, ticker, err)
	}

	for _, ser := range series {
		if ser.Symbol != "" && ser.Symbol != ticker {
			continue
		}
		for i := len(ser.Close) - 1; i >= 0; i-- {
			if ser.Close[i] > 0 {
				return ser.Close[i], nil
			}
		}
	}
	return 0, unavailable(s.name, ticker, nil)
}
