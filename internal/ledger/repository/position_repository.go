package repository

import (
	"context"

	"golang-stock-ledger/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PositionRepository stores one holding row per ticker.
type PositionRepository interface {
	FindByTicker(ctx context.Context, ticker string) (*entity.Position, error)
	FindAll(ctx context.Context) ([]entity.Position, error)
	Upsert(ctx context.Context, position *entity.Position) error
	Delete(ctx context.Context, ticker string) error
	DeleteAll(ctx context.Context) error
	WithTx(tx *gorm.DB) PositionRepository
}

// NewPositionRepository creates a new GORM-based position repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

type positionRepository struct {
	db *gorm.DB
}

func (r *positionRepository) WithTx(tx *gorm.DB) PositionRepository {
	return &positionRepository{db: tx}
}

// FindByTicker returns nil without error when the ticker has no position.
func (r *positionRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).Limit(1).Find(&positions).Error; err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, nil
	}
	return &positions[0], nil
}

// FindAll returns every open position ordered by ticker.
func (r *positionRepository) FindAll(ctx context.Context) ([]entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *positionRepository) Upsert(ctx context.Context, position *entity.Position) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "avg_buy_price", "market", "last_updated"}),
	}).Create(position).Error
}

func (r *positionRepository) Delete(ctx context.Context, ticker string) error {
	return r.db.WithContext(ctx).Where("ticker = ?", ticker).Delete(&entity.Position{}).Error
}

func (r *positionRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(r.db.WithContext(ctx), &entity.Position{})
}
