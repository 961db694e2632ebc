package service

import (
	"context"
	"fmt"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/repository"
	"golang-stock-ledger/pkg/logger"
)

// PerformanceService summarizes realized P&L.
type PerformanceService interface {
	Summarize(ctx context.Context, ticker string) (*dto.PerformanceSummary, error)
}

// NewPerformanceService creates a new PerformanceService.
func NewPerformanceService(repo repository.RealizedPnLRepository, logger *logger.Logger) PerformanceService {
	return &performanceService{repo: repo, logger: logger}
}

type performanceService struct {
	repo   repository.RealizedPnLRepository
	logger *logger.Logger
}

// Summarize covers all tickers when ticker is empty. WinRate is 0 when there are no trades.
func (s *performanceService) Summarize(ctx context.Context, ticker string) (*dto.PerformanceSummary, error) {
	ticker = entity.NormalizeTicker(ticker)

	agg, err := s.repo.Summarize(ctx, ticker)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to summarize realized pnl", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, fmt.Errorf("%w: summarize: %v", ErrStorageFailure, err)
	}

	summary := &dto.PerformanceSummary{
		Ticker:        ticker,
		TotalPnL:      agg.TotalPnL,
		TotalTrades:   agg.TotalTrades,
		WinningTrades: agg.WinningTrades,
		LosingTrades:  agg.LosingTrades,
	}
	if summary.TotalTrades > 0 {
		summary.WinRate = float64(summary.WinningTrades) / float64(summary.TotalTrades) * 100
	}
	return summary, nil
}
