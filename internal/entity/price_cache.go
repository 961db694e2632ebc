package entity

import "time"

type PriceCacheEntry struct {
	Ticker      string    `gorm:"column:ticker;primaryKey" json:"ticker"`
	Price       float64   `gorm:"column:price;not null" json:"price"`
	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (PriceCacheEntry) TableName() string {
	return "price_cache"
}
