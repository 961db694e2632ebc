package dto

import "golang-stock-ledger/internal/entity"

// BuyRequest is the input to a buy.
type BuyRequest struct {
	Ticker   string  `json:"ticker" example:"FPT"`
	Quantity int64   `json:"quantity" example:"100"`
	Price    float64 `json:"price" example:"85000"`
	Market   string  `json:"market" example:"DOMESTIC"`
	Note     string  `json:"note,omitempty"`
}

// SellRequest is the input to a sell.
type SellRequest struct {
	Ticker   string  `json:"ticker" example:"FPT"`
	Quantity int64   `json:"quantity" example:"50"`
	Price    float64 `json:"price" example:"90000"`
	Market   string  `json:"market" example:"DOMESTIC"`
	Note     string  `json:"note,omitempty"`
}

// TradeResult describes what a buy or sell did. Position is nil when a sell
// closed it; Realized is only set for sells.
type TradeResult struct {
	Transaction    entity.Transaction  `json:"transaction"`
	Position       *entity.Position    `json:"position,omitempty"`
	Realized       *entity.RealizedPnL `json:"realized,omitempty"`
	PositionClosed bool                `json:"position_closed"`
}

// HistoryParam filters the transaction log. An empty Ticker means all tickers;
// a zero Limit means the default.
type HistoryParam struct {
	Ticker string `query:"ticker"`
	Limit  int    `query:"limit"`
}
