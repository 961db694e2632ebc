package entity

import "time"

// Transaction is an append-only record of a buy or sell.
type Transaction struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Ticker    string          `gorm:"column:ticker;not null;index:idx_transactions_ticker" json:"ticker"`
	Type      TransactionType `gorm:"column:type;not null" json:"type"`
	Quantity  int64           `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64         `gorm:"column:price;not null" json:"price"`
	Market    Market          `gorm:"column:market;not null" json:"market"`
	TradeDate string          `gorm:"column:trade_date;not null;index:idx_transactions_date,priority:1,sort:desc" json:"trade_date"`
	TradeTime string          `gorm:"column:trade_time;not null;index:idx_transactions_date,priority:2,sort:desc" json:"trade_time"`
	Notes     string          `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Total is quantity times price.
func (t Transaction) Total() float64 {
	return float64(t.Quantity) * t.Price
}
