package dto

import (
	"time"

	"golang-stock-ledger/internal/entity"
)

const (
	NotableGain = "GAIN"
	NotableLoss = "LOSS"

	// NotableThresholdPercent is the absolute move that gets highlighted in reports.
	NotableThresholdPercent = 5.0
)

// ReportRow is one position in a portfolio report. When Pending is true the
// price could not be resolved and only the cost side is filled.
type ReportRow struct {
	Ticker               string        `json:"ticker"`
	Market               entity.Market `json:"market"`
	Quantity             int64         `json:"quantity"`
	AvgBuyPrice          float64       `json:"avg_buy_price"`
	Invested             float64       `json:"invested"`
	CurrentPrice         float64       `json:"current_price,omitempty"`
	CurrentValue         float64       `json:"current_value,omitempty"`
	UnrealizedPnL        float64       `json:"unrealized_pnl,omitempty"`
	UnrealizedPnLPercent float64       `json:"unrealized_pnl_percent,omitempty"`
	Pending              bool          `json:"pending"`
	Notable              string        `json:"notable,omitempty"`
}

// ReportTotals aggregates priced rows only.
type ReportTotals struct {
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"current_value"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnl_percent"`
	PricedCount  int     `json:"priced_count"`
	PendingCount int     `json:"pending_count"`
}

// Add folds a priced row into the totals.
func (t *ReportTotals) Add(row ReportRow) {
	t.Invested += row.Invested
	t.CurrentValue += row.CurrentValue
	t.PnL += row.UnrealizedPnL
	t.PricedCount++
	if t.Invested > 0 {
		t.PnLPercent = t.PnL / t.Invested * 100
	}
}

// PortfolioReport is the unrealized view of all open positions.
type PortfolioReport struct {
	AsOf     time.Time                       `json:"as_of"`
	Rows     []ReportRow                     `json:"rows"`
	Totals   ReportTotals                    `json:"totals"`
	ByMarket map[entity.Market]*ReportTotals `json:"by_market"`
}

// Classify returns NotableGain or NotableLoss when |percent| exceeds the threshold.
func Classify(percent float64) string {
	switch {
	case percent > NotableThresholdPercent:
		return NotableGain
	case percent < -NotableThresholdPercent:
		return NotableLoss
	default:
		return ""
	}
}
