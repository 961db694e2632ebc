package dto

import "golang-stock-ledger/internal/entity"

// CreateAlertRequest registers a one-shot price alert.
type CreateAlertRequest struct {
	Ticker      string  `json:"ticker" example:"FPT"`
	Market      string  `json:"market" example:"DOMESTIC"`
	Condition   string  `json:"condition" example:"ABOVE"`
	TargetPrice float64 `json:"target_price" example:"95000"`
}

// AlertTrigger is an alert that fired during a check.
type AlertTrigger struct {
	Alert entity.PriceAlert `json:"alert"`
	Price float64           `json:"price"`
}

// PriceResponse is the current price lookup result.
type PriceResponse struct {
	Ticker    string        `json:"ticker"`
	Market    entity.Market `json:"market"`
	Price     float64       `json:"price,omitempty"`
	Available bool          `json:"available"`
}

// ResetRequest guards the destructive reset.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}
