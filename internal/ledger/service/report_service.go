package service

import (
	"context"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// PriceResolver is the read side of the pricing subsystem.
type PriceResolver interface {
	CurrentPrice(ctx context.Context, ticker string, market entity.Market) (float64, bool)
	Refresh(ctx context.Context, ticker string, market entity.Market) (float64, bool)
	Clear(ctx context.Context) error
}

// PositionLister is satisfied by LedgerService.
type PositionLister interface {
	ListPositions(ctx context.Context) ([]entity.Position, error)
}

// ReportService builds unrealized P&L views over open positions.
type ReportService interface {
	BuildPortfolioReport(ctx context.Context) (*dto.PortfolioReport, error)
	RefreshPrices(ctx context.Context) error
}

// NewReportService creates a ReportService resolving up to workers prices at once.
func NewReportService(positions PositionLister, resolver PriceResolver, clock utils.Clock, workers int, logger *logger.Logger) ReportService {
	if workers <= 0 {
		workers = 1
	}
	return &reportService{
		positions: positions,
		resolver:  resolver,
		clock:     clock,
		workers:   workers,
		logger:    logger,
	}
}

type reportService struct {
	positions PositionLister
	resolver  PriceResolver
	clock     utils.Clock
	workers   int
	logger    *logger.Logger
}

type resolvedPrice struct {
	price float64
	ok    bool
}

// BuildPortfolioReport never fails on a missing price: the row is marked
// pending and left out of the totals.
func (s *reportService) BuildPortfolioReport(ctx context.Context) (*dto.PortfolioReport, error) {
	positions, err := s.positions.ListPositions(ctx)
	if err != nil {
		return nil, err
	}

	prices := s.resolveAll(ctx, positions, false)

	report := &dto.PortfolioReport{
		AsOf:     s.clock.Now(),
		Rows:     make([]dto.ReportRow, 0, len(positions)),
		ByMarket: make(map[entity.Market]*dto.ReportTotals),
	}
	for i, p := range positions {
		row := dto.ReportRow{
			Ticker:      p.Ticker,
			Market:      p.Market,
			Quantity:    p.Quantity,
			AvgBuyPrice: p.AvgBuyPrice,
			Invested:    p.CostBasis(),
		}

		marketTotals, ok := report.ByMarket[p.Market]
		if !ok {
			marketTotals = &dto.ReportTotals{}
			report.ByMarket[p.Market] = marketTotals
		}

		if !prices[i].ok {
			row.Pending = true
			report.Totals.PendingCount++
			marketTotals.PendingCount++
			report.Rows = append(report.Rows, row)
			continue
		}

		row.CurrentPrice = prices[i].price
		row.CurrentValue = prices[i].price * float64(p.Quantity)
		row.UnrealizedPnL = row.CurrentValue - row.Invested
		if row.Invested > 0 {
			row.UnrealizedPnLPercent = row.UnrealizedPnL / row.Invested * 100
		}
		row.Notable = dto.Classify(row.UnrealizedPnLPercent)

		report.Totals.Add(row)
		marketTotals.Add(row)
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// RefreshPrices fetches fresh quotes for every open position, bypassing the cache.
func (s *reportService) RefreshPrices(ctx context.Context) error {
	positions, err := s.positions.ListPositions(ctx)
	if err != nil {
		return err
	}
	prices := s.resolveAll(ctx, positions, true)

	var missing int
	for _, p := range prices {
		if !p.ok {
			missing++
		}
	}
	s.logger.Info("Refreshed prices",
		logger.IntField("positions", len(positions)),
		logger.IntField("unavailable", missing))
	return nil
}

func (s *reportService) resolveAll(ctx context.Context, positions []entity.Position, force bool) []resolvedPrice {
	prices := make([]resolvedPrice, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range positions {
		g.Go(func() error {
			var price float64
			var ok bool
			if force {
				price, ok = s.resolver.Refresh(gctx, p.Ticker, p.Market)
			} else {
				price, ok = s.resolver.CurrentPrice(gctx, p.Ticker, p.Market)
			}
			prices[i] = resolvedPrice{price: price, ok: ok}
			return nil
		})
	}
	_ = g.Wait()
	return prices
}
