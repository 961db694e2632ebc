package repository

import (
	"context"

	"golang-stock-ledger/internal/entity"

	"gorm.io/gorm"
)

// TransactionRepository is the append-only trade log.
type TransactionRepository interface {
	Create(ctx context.Context, trx *entity.Transaction) error
	List(ctx context.Context, ticker string, limit int) ([]entity.Transaction, error)
	DeleteAll(ctx context.Context) error
	WithTx(tx *gorm.DB) TransactionRepository
}

// NewTransactionRepository creates a new GORM-based transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Create(ctx context.Context, trx *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(trx).Error
}

// List returns the newest transactions first. An empty ticker matches all.
func (r *transactionRepository) List(ctx context.Context, ticker string, limit int) ([]entity.Transaction, error) {
	var trxs []entity.Transaction
	query := r.db.WithContext(ctx).Model(&entity.Transaction{})
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	err := query.
		Order("trade_date DESC").
		Order("trade_time DESC").
		Order("id DESC").
		Limit(limit).
		Find(&trxs).Error
	if err != nil {
		return nil, err
	}
	return trxs, nil
}

func (r *transactionRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(r.db.WithContext(ctx), &entity.Transaction{})
}
