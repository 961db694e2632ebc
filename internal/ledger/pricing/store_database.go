package pricing

import (
	"context"
	"time"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/repository"
)

// DatabaseStore keeps prices in the price_cache table.
type DatabaseStore struct {
	repo repository.PriceCacheRepository
}

func NewDatabaseStore(repo repository.PriceCacheRepository) *DatabaseStore {
	return &DatabaseStore{repo: repo}
}

func (s *DatabaseStore) Load(ctx context.Context, ticker string) (float64, time.Time, bool, error) {
	entry, err := s.repo.Get(ctx, ticker)
	if err != nil || entry == nil {
		return 0, time.Time{}, false, err
	}
	return entry.Price, entry.LastUpdated, true, nil
}

func (s *DatabaseStore) Save(ctx context.Context, ticker string, price float64, updatedAt time.Time) error {
	return s.repo.Upsert(ctx, &entity.PriceCacheEntry{Ticker: ticker, Price: price, LastUpdated: updatedAt})
}

func (s *DatabaseStore) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
