package pricing

import (
	"context"
	"time"

	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"
)

// FreshnessWindow is how long a cached price may be served.
const FreshnessWindow = 5 * time.Minute

// PriceStore persists the last known price per ticker. Load reports ok=false on a miss.
type PriceStore interface {
	Load(ctx context.Context, ticker string) (price float64, updatedAt time.Time, ok bool, err error)
	Save(ctx context.Context, ticker string, price float64, updatedAt time.Time) error
	Clear(ctx context.Context) error
}

// Cache answers price lookups from a store while they are fresh. Staleness is
// checked on read; nothing is swept in the background.
type Cache struct {
	store  PriceStore
	clock  utils.Clock
	window time.Duration
	log    *logger.Logger
}

// NewCache wraps store with the fixed FreshnessWindow.
func NewCache(store PriceStore, clock utils.Clock, log *logger.Logger) *Cache {
	return &Cache{store: store, clock: clock, window: FreshnessWindow, log: log}
}

// Get returns the cached price only if it was written less than the window ago.
// Store errors are logged and treated as a miss.
func (c *Cache) Get(ctx context.Context, ticker string) (float64, bool) {
	price, updatedAt, ok, err := c.store.Load(ctx, ticker)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to read price cache", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return 0, false
	}
	if !ok {
		return 0, false
	}
	if c.clock.Now().Sub(updatedAt) >= c.window {
		return 0, false
	}
	return price, true
}

// Put overwrites the entry for ticker.
func (c *Cache) Put(ctx context.Context, ticker string, price float64, at time.Time) error {
	return c.store.Save(ctx, ticker, price, at)
}

// Clear drops every entry.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}
