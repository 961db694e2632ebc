package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/repository"
	"golang-stock-ledger/pkg/database"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	repos  Repositories
	clock  *utils.FixedClock
	ledger LedgerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDB(database.Config{Driver: database.DriverSQLite, Path: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.AutoMigrate(db.DB))

	clock := &utils.FixedClock{T: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	repos := NewRepositories(db.DB)
	return &fixture{
		db:     db.DB,
		repos:  repos,
		clock:  clock,
		ledger: NewLedgerService(db.DB, repos, clock, 0, logger.NewNop()),
	}
}

func (f *fixture) buy(t *testing.T, ticker string, qty int64, price float64) *dto.TradeResult {
	t.Helper()
	res, err := f.ledger.RecordBuy(context.Background(), dto.BuyRequest{Ticker: ticker, Quantity: qty, Price: price, Market: "VN"})
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	return res
}

func (f *fixture) sell(t *testing.T, ticker string, qty int64, price float64) *dto.TradeResult {
	t.Helper()
	res, err := f.ledger.RecordSell(context.Background(), dto.SellRequest{Ticker: ticker, Quantity: qty, Price: price})
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	return res
}

type counts struct {
	transactions int64
	positions    int64
	realized     int64
}

func (f *fixture) counts(t *testing.T) counts {
	t.Helper()
	var c counts
	require.NoError(t, f.db.Model(&entity.Transaction{}).Count(&c.transactions).Error)
	require.NoError(t, f.db.Model(&entity.Position{}).Count(&c.positions).Error)
	require.NoError(t, f.db.Model(&entity.RealizedPnL{}).Count(&c.realized).Error)
	return c
}

var errDiskFull = errors.New("disk full")

// failingRealizedPnL fails every Create, including inside a transaction.
type failingRealizedPnL struct {
	repository.RealizedPnLRepository
}

func (r failingRealizedPnL) Create(context.Context, *entity.RealizedPnL) error { return errDiskFull }

func (r failingRealizedPnL) WithTx(tx *gorm.DB) repository.RealizedPnLRepository {
	return failingRealizedPnL{r.RealizedPnLRepository.WithTx(tx)}
}

// failingPositions fails every Upsert, including inside a transaction.
type failingPositions struct {
	repository.PositionRepository
}

func (r failingPositions) Upsert(context.Context, *entity.Position) error { return errDiskFull }

func (r failingPositions) WithTx(tx *gorm.DB) repository.PositionRepository {
	return failingPositions{r.PositionRepository.WithTx(tx)}
}

// ledgerWith returns a ledger over the fixture database using repos.
func (f *fixture) ledgerWith(repos Repositories) LedgerService {
	return NewLedgerService(f.db, repos, f.clock, 0, logger.NewNop())
}
