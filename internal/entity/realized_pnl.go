package entity

import "time"

// RealizedPnL is written once per sell against the average cost at that moment.
type RealizedPnL struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Ticker     string    `gorm:"column:ticker;not null;index:idx_realized_pnl_ticker" json:"ticker"`
	Quantity   int64     `gorm:"column:quantity;not null" json:"quantity"`
	BuyPrice   float64   `gorm:"column:buy_price;not null" json:"buy_price"`
	SellPrice  float64   `gorm:"column:sell_price;not null" json:"sell_price"`
	PnL        float64   `gorm:"column:pnl;not null" json:"pnl"`
	PnLPercent float64   `gorm:"column:pnl_percent;not null" json:"pnl_percent"`
	SellDate   string    `gorm:"column:sell_date;not null" json:"sell_date"`
	SellTime   string    `gorm:"column:sell_time;not null" json:"sell_time"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RealizedPnL) TableName() string {
	return "realized_pnl"
}
