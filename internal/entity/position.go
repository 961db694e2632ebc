package entity

import "time"

// Position is the current holding for one ticker. The row is removed when
// the quantity reaches zero.
type Position struct {
	Ticker      string    `gorm:"column:ticker;primaryKey" json:"ticker"`
	Quantity    int64     `gorm:"column:quantity;not null" json:"quantity"`
	AvgBuyPrice float64   `gorm:"column:avg_buy_price;not null" json:"avg_buy_price"`
	Market      Market    `gorm:"column:market;not null" json:"market"`
	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (Position) TableName() string {
	return "positions"
}

// CostBasis is quantity times average buy price.
func (p Position) CostBasis() float64 {
	return float64(p.Quantity) * p.AvgBuyPrice
}
