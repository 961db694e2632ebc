package service

import (
	"context"
	"fmt"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/pkg/logger"
)

// PortfolioService is the surface the HTTP and chat layers call.
type PortfolioService interface {
	Buy(ctx context.Context, req dto.BuyRequest) (*dto.TradeResult, error)
	Sell(ctx context.Context, req dto.SellRequest) (*dto.TradeResult, error)
	ViewPortfolio(ctx context.Context) (*dto.PortfolioReport, error)
	ViewHistory(ctx context.Context, param dto.HistoryParam) ([]entity.Transaction, error)
	ViewPerformance(ctx context.Context, ticker string) (*dto.PerformanceSummary, error)
	ResetPortfolio(ctx context.Context) error
	CurrentPrice(ctx context.Context, ticker, market string) (*dto.PriceResponse, error)
}

// PortfolioOptions tunes PortfolioService behavior.
type PortfolioOptions struct {
	// ValidateTickerOnBuy rejects buys whose ticker has no resolvable price.
	ValidateTickerOnBuy bool
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(ledger LedgerService, reports ReportService, performance PerformanceService, resolver PriceResolver, opts PortfolioOptions, logger *logger.Logger) PortfolioService {
	return &portfolioService{
		ledger:      ledger,
		reports:     reports,
		performance: performance,
		resolver:    resolver,
		opts:        opts,
		logger:      logger,
	}
}

type portfolioService struct {
	ledger      LedgerService
	reports     ReportService
	performance PerformanceService
	resolver    PriceResolver
	opts        PortfolioOptions
	logger      *logger.Logger
}

func (s *portfolioService) Buy(ctx context.Context, req dto.BuyRequest) (*dto.TradeResult, error) {
	if s.opts.ValidateTickerOnBuy {
		ticker, market, err := validateTrade(req.Ticker, req.Quantity, req.Price, req.Market)
		if err != nil {
			return nil, err
		}
		if req.Market == "" {
			held, err := s.heldMarket(ctx, ticker)
			if err != nil {
				return nil, err
			}
			if held != "" {
				market = held
			}
		}
		if _, ok := s.resolver.CurrentPrice(ctx, ticker, market); !ok {
			return nil, fmt.Errorf("%w: %s is not a known %s ticker", ErrPriceUnavailable, ticker, market)
		}
	}
	return s.ledger.RecordBuy(ctx, req)
}

// heldMarket returns the market of the open position in ticker, or "" when none is held.
func (s *portfolioService) heldMarket(ctx context.Context, ticker string) (entity.Market, error) {
	positions, err := s.ledger.ListPositions(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range positions {
		if p.Ticker == ticker {
			return p.Market, nil
		}
	}
	return "", nil
}

func (s *portfolioService) Sell(ctx context.Context, req dto.SellRequest) (*dto.TradeResult, error) {
	return s.ledger.RecordSell(ctx, req)
}

func (s *portfolioService) ViewPortfolio(ctx context.Context) (*dto.PortfolioReport, error) {
	return s.reports.BuildPortfolioReport(ctx)
}

func (s *portfolioService) ViewHistory(ctx context.Context, param dto.HistoryParam) ([]entity.Transaction, error) {
	return s.ledger.QueryTransactions(ctx, param)
}

func (s *portfolioService) ViewPerformance(ctx context.Context, ticker string) (*dto.PerformanceSummary, error) {
	return s.performance.Summarize(ctx, ticker)
}

// ResetPortfolio clears the ledger and whichever price store backs the cache.
func (s *portfolioService) ResetPortfolio(ctx context.Context) error {
	if err := s.ledger.ResetAll(ctx); err != nil {
		return err
	}
	if err := s.resolver.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear price cache", logger.ErrorField(err))
		return fmt.Errorf("%w: clear price cache: %v", ErrStorageFailure, err)
	}
	return nil
}

func (s *portfolioService) CurrentPrice(ctx context.Context, ticker, market string) (*dto.PriceResponse, error) {
	t := entity.NormalizeTicker(ticker)
	if t == "" {
		return nil, invalidArgument("ticker is required")
	}
	m, err := entity.ParseMarket(market)
	if err != nil {
		return nil, invalidArgument("%v", err)
	}

	resp := &dto.PriceResponse{Ticker: t, Market: m}
	resp.Price, resp.Available = s.resolver.CurrentPrice(ctx, t, m)
	return resp, nil
}
