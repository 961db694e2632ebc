package pricing

import (
	"context"
	"time"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"
)

// Resolver serves prices from the cache and falls back to the source on a
// miss, writing successful fetches through to the cache.
type Resolver struct {
	cache   *Cache
	source  Source
	clock   utils.Clock
	timeout time.Duration
	log     *logger.Logger
}

func NewResolver(cache *Cache, source Source, clock utils.Clock, timeout time.Duration, log *logger.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{cache: cache, source: source, clock: clock, timeout: timeout, log: log}
}

// CurrentPrice returns false when neither the cache nor the source has a price.
func (r *Resolver) CurrentPrice(ctx context.Context, ticker string, market entity.Market) (float64, bool) {
	if price, ok := r.cache.Get(ctx, ticker); ok {
		return price, true
	}
	return r.Refresh(ctx, ticker, market)
}

// Refresh skips the cache read and asks the source directly.
func (r *Resolver) Refresh(ctx context.Context, ticker string, market entity.Market) (float64, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	price, err := r.source.FetchPrice(fetchCtx, ticker, market)
	if err != nil || price <= 0 {
		r.log.DebugContext(ctx, "Price unavailable",
			logger.StringField("ticker", ticker),
			logger.StringField("market", string(market)),
			logger.ErrorField(err))
		return 0, false
	}

	if err := r.cache.Put(ctx, ticker, price, r.clock.Now()); err != nil {
		r.log.WarnContext(ctx, "Failed to write price cache", logger.ErrorField(err), logger.StringField("ticker", ticker))
	}
	return price, true
}

// Clear empties the underlying cache.
func (r *Resolver) Clear(ctx context.Context) error {
	return r.cache.Clear(ctx)
}
