package repository

import (
	"context"
	"time"

	"golang-stock-ledger/internal/entity"

	"gorm.io/gorm"
)

// PriceAlertRepository defines the interface for price alert data operations.
type PriceAlertRepository interface {
	Create(ctx context.Context, alert *entity.PriceAlert) error
	List(ctx context.Context, ticker string, activeOnly bool) ([]entity.PriceAlert, error)
	MarkTriggered(ctx context.Context, id uint, price float64, at time.Time) error
	Delete(ctx context.Context, id uint) (bool, error)
	DeleteByTicker(ctx context.Context, ticker string) (int64, error)
}

// NewPriceAlertRepository creates a new GORM-based price alert repository.
func NewPriceAlertRepository(db *gorm.DB) PriceAlertRepository {
	return &priceAlertRepository{db: db}
}

type priceAlertRepository struct {
	db *gorm.DB
}

func (r *priceAlertRepository) Create(ctx context.Context, alert *entity.PriceAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *priceAlertRepository) List(ctx context.Context, ticker string, activeOnly bool) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	query := r.db.WithContext(ctx)
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("ticker ASC").Order("id ASC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkTriggered deactivates an alert and records the price that fired it.
func (r *priceAlertRepository) MarkTriggered(ctx context.Context, id uint, price float64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.PriceAlert{}).
		Where("id = ? AND active = ?", id, true).
		Updates(map[string]interface{}{
			"active":          false,
			"triggered_price": price,
			"triggered_at":    at,
		}).Error
}

// Delete removes one alert and reports whether it existed.
func (r *priceAlertRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entity.PriceAlert{}, id)
	return res.RowsAffected > 0, res.Error
}

// DeleteByTicker removes all alerts for ticker, or every alert when ticker is empty.
func (r *priceAlertRepository) DeleteByTicker(ctx context.Context, ticker string) (int64, error) {
	query := r.db.WithContext(ctx)
	if ticker == "" {
		query = query.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		query = query.Where("ticker = ?", ticker)
	}
	res := query.Delete(&entity.PriceAlert{})
	return res.RowsAffected, res.Error
}
