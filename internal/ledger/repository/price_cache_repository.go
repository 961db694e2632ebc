package repository

import (
	"context"

	"golang-stock-ledger/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceCacheRepository persists the last fetched price per ticker.
type PriceCacheRepository interface {
	Get(ctx context.Context, ticker string) (*entity.PriceCacheEntry, error)
	Upsert(ctx context.Context, entry *entity.PriceCacheEntry) error
	DeleteAll(ctx context.Context) error
	WithTx(tx *gorm.DB) PriceCacheRepository
}

// NewPriceCacheRepository creates a new GORM-based price cache repository.
func NewPriceCacheRepository(db *gorm.DB) PriceCacheRepository {
	return &priceCacheRepository{db: db}
}

type priceCacheRepository struct {
	db *gorm.DB
}

func (r *priceCacheRepository) WithTx(tx *gorm.DB) PriceCacheRepository {
	return &priceCacheRepository{db: tx}
}

// Get returns nil without error on a miss.
func (r *priceCacheRepository) Get(ctx context.Context, ticker string) (*entity.PriceCacheEntry, error) {
	var entries []entity.PriceCacheEntry
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).Limit(1).Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (r *priceCacheRepository) Upsert(ctx context.Context, entry *entity.PriceCacheEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "last_updated"}),
	}).Create(entry).Error
}

func (r *priceCacheRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(r.db.WithContext(ctx), &entity.PriceCacheEntry{})
}
