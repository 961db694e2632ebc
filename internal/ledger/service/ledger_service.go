package service

import (
	"context"
	"fmt"
	"sync"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/repository"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultHistoryLimit = 20

// LedgerService applies trades to positions with average-cost accounting.
// Mutations are serialized and each runs in a single database transaction.
type LedgerService interface {
	RecordBuy(ctx context.Context, req dto.BuyRequest) (*dto.TradeResult, error)
	RecordSell(ctx context.Context, req dto.SellRequest) (*dto.TradeResult, error)
	ListPositions(ctx context.Context) ([]entity.Position, error)
	QueryTransactions(ctx context.Context, param dto.HistoryParam) ([]entity.Transaction, error)
	ResetAll(ctx context.Context) error
}

// Repositories groups the stores the ledger writes to.
type Repositories struct {
	Transactions repository.TransactionRepository
	Positions    repository.PositionRepository
	RealizedPnL  repository.RealizedPnLRepository
	PriceCache   repository.PriceCacheRepository
}

// NewRepositories builds the GORM repositories over db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Transactions: repository.NewTransactionRepository(db),
		Positions:    repository.NewPositionRepository(db),
		RealizedPnL:  repository.NewRealizedPnLRepository(db),
		PriceCache:   repository.NewPriceCacheRepository(db),
	}
}

// NewLedgerService creates the ledger. historyLimit <= 0 selects DefaultHistoryLimit.
func NewLedgerService(db *gorm.DB, repos Repositories, clock utils.Clock, historyLimit int, logger *logger.Logger) LedgerService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &ledgerService{
		db:           db,
		repos:        repos,
		clock:        clock,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

type ledgerService struct {
	mu           sync.RWMutex
	db           *gorm.DB
	repos        Repositories
	clock        utils.Clock
	historyLimit int
	logger       *logger.Logger
}

func (s *ledgerService) RecordBuy(ctx context.Context, req dto.BuyRequest) (*dto.TradeResult, error) {
	ticker, market, err := validateTrade(req.Ticker, req.Quantity, req.Price, req.Market)
	if err != nil {
		return nil, err
	}
	marketGiven := req.Market != ""

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	tradeDate, tradeTime := utils.SplitDateTime(now)
	result := &dto.TradeResult{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		positions := s.repos.Positions.WithTx(tx)

		position, err := positions.FindByTicker(ctx, ticker)
		if err != nil {
			return err
		}
		if position != nil {
			// Adding to a holding without naming a market keeps the held one.
			if !marketGiven {
				market = position.Market
			} else if position.Market != market {
				return invalidArgument("%s is held on market %s", ticker, position.Market)
			}
		}

		trx := entity.Transaction{
			Ticker:    ticker,
			Type:      entity.TransactionTypeBuy,
			Quantity:  req.Quantity,
			Price:     req.Price,
			Market:    market,
			TradeDate: tradeDate,
			TradeTime: tradeTime,
			Notes:     req.Note,
		}
		if err := s.repos.Transactions.WithTx(tx).Create(ctx, &trx); err != nil {
			return err
		}

		if position == nil {
			position = &entity.Position{
				Ticker:      ticker,
				Quantity:    req.Quantity,
				AvgBuyPrice: req.Price,
				Market:      market,
			}
		} else {
			position.AvgBuyPrice = WeightedAverage(position.Quantity, position.AvgBuyPrice, req.Quantity, req.Price)
			position.Quantity += req.Quantity
		}
		position.LastUpdated = now

		if err := positions.Upsert(ctx, position); err != nil {
			return err
		}

		result.Transaction = trx
		result.Position = position
		return nil
	})
	if err != nil {
		return nil, s.boundaryError(ctx, "buy", ticker, err)
	}

	s.logger.Info("Recorded buy",
		logger.StringField("ticker", ticker),
		logger.Int64Field("quantity", req.Quantity),
		logger.Float64Field("price", req.Price),
		logger.Float64Field("avg_buy_price", result.Position.AvgBuyPrice))
	return result, nil
}

func (s *ledgerService) RecordSell(ctx context.Context, req dto.SellRequest) (*dto.TradeResult, error) {
	ticker, market, err := validateTrade(req.Ticker, req.Quantity, req.Price, req.Market)
	if err != nil {
		return nil, err
	}
	marketGiven := req.Market != ""

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	tradeDate, tradeTime := utils.SplitDateTime(now)
	result := &dto.TradeResult{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		positions := s.repos.Positions.WithTx(tx)

		position, err := positions.FindByTicker(ctx, ticker)
		if err != nil {
			return err
		}
		if position == nil {
			return fmt.Errorf("%w: %s", ErrPositionNotFound, ticker)
		}
		if marketGiven && position.Market != market {
			return invalidArgument("%s is held on market %s", ticker, position.Market)
		}
		if req.Quantity > position.Quantity {
			return &InsufficientQuantityError{Ticker: ticker, Requested: req.Quantity, Available: position.Quantity}
		}

		pnl, pnlPercent := RealizedPnL(position.AvgBuyPrice, req.Price, req.Quantity)

		trx := entity.Transaction{
			Ticker:    ticker,
			Type:      entity.TransactionTypeSell,
			Quantity:  req.Quantity,
			Price:     req.Price,
			Market:    position.Market,
			TradeDate: tradeDate,
			TradeTime: tradeTime,
			Notes:     req.Note,
		}
		if err := s.repos.Transactions.WithTx(tx).Create(ctx, &trx); err != nil {
			return err
		}

		realized := entity.RealizedPnL{
			Ticker:     ticker,
			Quantity:   req.Quantity,
			BuyPrice:   position.AvgBuyPrice,
			SellPrice:  req.Price,
			PnL:        pnl,
			PnLPercent: pnlPercent,
			SellDate:   tradeDate,
			SellTime:   tradeTime,
		}
		if err := s.repos.RealizedPnL.WithTx(tx).Create(ctx, &realized); err != nil {
			return err
		}

		remaining := position.Quantity - req.Quantity
		if remaining == 0 {
			if err := positions.Delete(ctx, ticker); err != nil {
				return err
			}
			result.PositionClosed = true
		} else {
			position.Quantity = remaining
			position.LastUpdated = now
			if err := positions.Upsert(ctx, position); err != nil {
				return err
			}
			result.Position = position
		}

		result.Transaction = trx
		result.Realized = &realized
		return nil
	})
	if err != nil {
		return nil, s.boundaryError(ctx, "sell", ticker, err)
	}

	s.logger.Info("Recorded sell",
		logger.StringField("ticker", ticker),
		logger.Int64Field("quantity", req.Quantity),
		logger.Float64Field("price", req.Price),
		logger.Float64Field("pnl", result.Realized.PnL),
		logger.Field("closed", result.PositionClosed))
	return result, nil
}

func (s *ledgerService) ListPositions(ctx context.Context) ([]entity.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions, err := s.repos.Positions.FindAll(ctx)
	if err != nil {
		return nil, s.boundaryError(ctx, "list positions", "", err)
	}
	return positions, nil
}

func (s *ledgerService) QueryTransactions(ctx context.Context, param dto.HistoryParam) ([]entity.Transaction, error) {
	if param.Limit < 0 {
		return nil, invalidArgument("limit must be positive, got %d", param.Limit)
	}
	limit := param.Limit
	if limit == 0 {
		limit = s.historyLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	trxs, err := s.repos.Transactions.List(ctx, entity.NormalizeTicker(param.Ticker), limit)
	if err != nil {
		return nil, s.boundaryError(ctx, "query transactions", param.Ticker, err)
	}
	return trxs, nil
}

// ResetAll wipes transactions, positions, realized P&L and cached prices.
func (s *ledgerService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repos.Transactions.WithTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.repos.Positions.WithTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.repos.RealizedPnL.WithTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return s.repos.PriceCache.WithTx(tx).DeleteAll(ctx)
	})
	if err != nil {
		return s.boundaryError(ctx, "reset", "", err)
	}

	s.logger.Warn("Ledger reset")
	return nil
}

// boundaryError passes domain errors through and wraps everything else as a storage failure.
func (s *ledgerService) boundaryError(ctx context.Context, op, ticker string, err error) error {
	if isDomainError(err) {
		return err
	}
	s.logger.ErrorContext(ctx, "Ledger operation failed",
		logger.StringField("operation", op),
		logger.StringField("ticker", ticker),
		logger.ErrorField(err))
	return fmt.Errorf("%w: %s: %v", ErrStorageFailure, op, err)
}

func validateTrade(rawTicker string, quantity int64, price float64, rawMarket string) (string, entity.Market, error) {
	ticker := entity.NormalizeTicker(rawTicker)
	if ticker == "" {
		return "", "", invalidArgument("ticker is required")
	}
	if quantity <= 0 {
		return "", "", invalidArgument("quantity must be positive, got %d", quantity)
	}
	if price <= 0 {
		return "", "", invalidArgument("price must be positive, got %v", price)
	}
	market, err := entity.ParseMarket(rawMarket)
	if err != nil {
		return "", "", invalidArgument("%v", err)
	}
	return ticker, market, nil
}

// WeightedAverage returns the average cost after adding addQty at addPrice
// to a holding of oldQty at oldAvg.
func WeightedAverage(oldQty int64, oldAvg float64, addQty int64, addPrice float64) float64 {
	total := decimal.NewFromInt(oldQty).Mul(decimal.NewFromFloat(oldAvg)).
		Add(decimal.NewFromInt(addQty).Mul(decimal.NewFromFloat(addPrice)))
	return total.Div(decimal.NewFromInt(oldQty + addQty)).InexactFloat64()
}

// RealizedPnL returns (sell-avg)*qty and (sell-avg)/avg*100.
func RealizedPnL(avg, sell float64, qty int64) (float64, float64) {
	a := decimal.NewFromFloat(avg)
	diff := decimal.NewFromFloat(sell).Sub(a)
	pnl := diff.Mul(decimal.NewFromInt(qty))
	pct := diff.Div(a).Mul(decimal.NewFromInt(100))
	return pnl.InexactFloat64(), pct.InexactFloat64()
}
