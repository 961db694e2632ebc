package repository

import (
	"context"

	"golang-stock-ledger/internal/entity"

	"gorm.io/gorm"
)

// PnLAggregate is the result of summing realized P&L rows.
type PnLAggregate struct {
	TotalPnL      float64 `gorm:"column:total_pnl"`
	TotalTrades   int64   `gorm:"column:total_trades"`
	WinningTrades int64   `gorm:"column:winning_trades"`
	LosingTrades  int64   `gorm:"column:losing_trades"`
}

// RealizedPnLRepository stores one row per sell.
type RealizedPnLRepository interface {
	Create(ctx context.Context, record *entity.RealizedPnL) error
	List(ctx context.Context, ticker string) ([]entity.RealizedPnL, error)
	Summarize(ctx context.Context, ticker string) (*PnLAggregate, error)
	DeleteAll(ctx context.Context) error
	WithTx(tx *gorm.DB) RealizedPnLRepository
}

// NewRealizedPnLRepository creates a new GORM-based realized P&L repository.
func NewRealizedPnLRepository(db *gorm.DB) RealizedPnLRepository {
	return &realizedPnLRepository{db: db}
}

type realizedPnLRepository struct {
	db *gorm.DB
}

func (r *realizedPnLRepository) WithTx(tx *gorm.DB) RealizedPnLRepository {
	return &realizedPnLRepository{db: tx}
}

func (r *realizedPnLRepository) Create(ctx context.Context, record *entity.RealizedPnL) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *realizedPnLRepository) List(ctx context.Context, ticker string) ([]entity.RealizedPnL, error) {
	var records []entity.RealizedPnL
	query := r.db.WithContext(ctx)
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	if err := query.Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Summarize aggregates in SQL; an empty ticker covers all rows.
func (r *realizedPnLRepository) Summarize(ctx context.Context, ticker string) (*PnLAggregate, error) {
	var agg PnLAggregate
	query := r.db.WithContext(ctx).
		Model(&entity.RealizedPnL{}).
		Select(`COALESCE(SUM(pnl), 0) AS total_pnl,
			COUNT(*) AS total_trades,
			COALESCE(SUM(CASE WHEN pnl > 0 THEN 1 ELSE 0 END), 0) AS winning_trades,
			COALESCE(SUM(CASE WHEN pnl < 0 THEN 1 ELSE 0 END), 0) AS losing_trades`)
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	if err := query.Scan(&agg).Error; err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *realizedPnLRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(r.db.WithContext(ctx), &entity.RealizedPnL{})
}
