package pricing

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type memoryEntry struct {
	price     float64
	updatedAt time.Time
}

// MemoryStore keeps prices in process. Entries never expire on their own;
// freshness is decided by Cache.
type MemoryStore struct {
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Load(_ context.Context, ticker string) (float64, time.Time, bool, error) {
	v, ok := s.items.Get(ticker)
	if !ok {
		return 0, time.Time{}, false, nil
	}
	e := v.(memoryEntry)
	return e.price, e.updatedAt, true, nil
}

func (s *MemoryStore) Save(_ context.Context, ticker string, price float64, updatedAt time.Time) error {
	s.items.Set(ticker, memoryEntry{price: price, updatedAt: updatedAt}, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.items.Flush()
	return nil
}
