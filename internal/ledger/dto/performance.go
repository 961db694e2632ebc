package dto

// PerformanceSummary aggregates realized P&L. Trades with zero P&L count
// toward TotalTrades only.
type PerformanceSummary struct {
	Ticker        string  `json:"ticker,omitempty"`
	TotalPnL      float64 `json:"total_pnl"`
	TotalTrades   int64   `json:"total_trades"`
	WinningTrades int64   `json:"winning_trades"`
	LosingTrades  int64   `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
}

// LoseRate is the share of losing trades in percent, 0 when there are no trades.
func (s PerformanceSummary) LoseRate() float64 {
	if s.TotalTrades == 0 {
		return 0
	}
	return float64(s.LosingTrades) / float64(s.TotalTrades) * 100
}
