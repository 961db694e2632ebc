package entity

import "time"

// AlertCondition tells which side of the target price fires an alert.
type AlertCondition string

const (
	AlertConditionAbove AlertCondition = "ABOVE"
	AlertConditionBelow AlertCondition = "BELOW"
)

// PriceAlert fires once when the ticker's price crosses TargetPrice.
type PriceAlert struct {
	ID             uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Ticker         string         `gorm:"column:ticker;not null;index:idx_price_alerts_ticker" json:"ticker"`
	Market         Market         `gorm:"column:market;not null" json:"market"`
	Condition      AlertCondition `gorm:"column:condition;not null" json:"condition"`
	TargetPrice    float64        `gorm:"column:target_price;not null" json:"target_price"`
	Active         bool           `gorm:"column:active;not null;default:true" json:"active"`
	TriggeredPrice *float64       `gorm:"column:triggered_price" json:"triggered_price,omitempty"`
	TriggeredAt    *time.Time     `gorm:"column:triggered_at" json:"triggered_at,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PriceAlert) TableName() string {
	return "price_alerts"
}

// Matches reports whether price satisfies the alert condition.
func (a PriceAlert) Matches(price float64) bool {
	switch a.Condition {
	case AlertConditionAbove:
		return price >= a.TargetPrice
	case AlertConditionBelow:
		return price <= a.TargetPrice
	}
	return false
}
