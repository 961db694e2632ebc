package pricing

import (
	"context"
	"errors"
	"fmt"

	"golang-stock-ledger/internal/entity"
)

// ErrPriceUnavailable is returned for every lookup failure: network errors,
// unknown symbols and malformed responses alike.
var ErrPriceUnavailable = errors.New("price unavailable")

// Source fetches the current price of a ticker on a market.
type Source interface {
	Name() string
	FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error)
}

func unavailable(source, ticker string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s %s: %w", source, ticker, ErrPriceUnavailable)
	}
	return fmt.Errorf("%s %s: %w: %v", source, ticker, ErrPriceUnavailable, cause)
}

// Fallback tries each source in order and returns the first positive price.
type Fallback struct {
	sources []Source
}

// NewFallback combines sources; the first one is preferred.
func NewFallback(sources ...Source) *Fallback {
	return &Fallback{sources: sources}
}

func (f *Fallback) Name() string {
	return "fallback"
}

func (f *Fallback) FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error) {
	var errs []error
	for _, src := range f.sources {
		price, err := src.FetchPrice(ctx, ticker, market)
		if err == nil && price > 0 {
			return price, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return 0, unavailable(f.Name(), ticker, errors.Join(errs...))
}

// Registry routes a lookup to the source configured for the market.
type Registry struct {
	byMarket map[entity.Market]Source
}

// NewRegistry creates an empty registry; use Register to add sources.
func NewRegistry() *Registry {
	return &Registry{byMarket: make(map[entity.Market]Source)}
}

// Register sets the source for market, replacing any previous one.
func (r *Registry) Register(market entity.Market, src Source) *Registry {
	r.byMarket[market] = src
	return r
}

func (r *Registry) Name() string {
	return "registry"
}

func (r *Registry) FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error) {
	src, ok := r.byMarket[market]
	if !ok {
		return 0, unavailable(r.Name(), ticker, fmt.Errorf("no source for market %s", market))
	}
	return src.FetchPrice(ctx, ticker, market)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, ticker string, market entity.Market) (float64, error)

func (f SourceFunc) Name() string { return "func" }

func (f SourceFunc) FetchPrice(ctx context.Context, ticker string, market entity.Market) (float64, error) {
	return f(ctx, ticker, market)
}
