package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBuyWeightedAverage(t *testing.T) {
	f := newFixture(t)

	first := f.buy(t, " fpt ", 100, 85000)
	assert.Equal(t, "FPT", first.Position.Ticker)
	assert.Equal(t, int64(100), first.Position.Quantity)
	assert.Equal(t, 85000.0, first.Position.AvgBuyPrice)
	assert.Equal(t, entity.MarketDomestic, first.Position.Market)

	second := f.buy(t, "FPT", 50, 88000)
	assert.Equal(t, int64(150), second.Position.Quantity)
	assert.Equal(t, 86000.0, second.Position.AvgBuyPrice)

	positions, err := f.ledger.ListPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 86000.0, positions[0].AvgBuyPrice)
	assert.Equal(t, int64(150), positions[0].Quantity)
}

func TestRecordBuyMatchesQuantityWeightedMean(t *testing.T) {
	f := newFixture(t)

	buys := []struct {
		qty   int64
		price float64
	}{{10, 100}, {30, 130}, {7, 91.5}, {3, 250}}

	var totalQty int64
	var totalCost float64
	for _, b := range buys {
		f.buy(t, "HPG", b.qty, b.price)
		totalQty += b.qty
		totalCost += float64(b.qty) * b.price
	}

	positions, err := f.ledger.ListPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, totalQty, positions[0].Quantity)
	assert.InDelta(t, totalCost/float64(totalQty), positions[0].AvgBuyPrice, 1e-9)
}

func TestRecordBuyValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testCases := []struct {
		name string
		req  dto.BuyRequest
	}{
		{name: "zero quantity", req: dto.BuyRequest{Ticker: "FPT", Quantity: 0, Price: 1}},
		{name: "negative price", req: dto.BuyRequest{Ticker: "FPT", Quantity: 1, Price: -1}},
		{name: "blank ticker", req: dto.BuyRequest{Ticker: "  ", Quantity: 1, Price: 1}},
		{name: "unknown market", req: dto.BuyRequest{Ticker: "FPT", Quantity: 1, Price: 1, Market: "JP"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.RecordBuy(ctx, tc.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	assert.Equal(t, counts{}, f.counts(t))
}

func TestRecordBuyRejectsMarketMismatch(t *testing.T) {
	f := newFixture(t)
	f.buy(t, "FPT", 10, 100)

	_, err := f.ledger.RecordBuy(context.Background(), dto.BuyRequest{Ticker: "FPT", Quantity: 1, Price: 1, Market: "US"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, counts{transactions: 1, positions: 1}, f.counts(t))
}

func TestRecordBuyInheritsHeldMarket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.RecordBuy(ctx, dto.BuyRequest{Ticker: "AAPL", Quantity: 2, Price: 140, Market: "US"})
	require.NoError(t, err)

	res, err := f.ledger.RecordBuy(ctx, dto.BuyRequest{Ticker: "aapl", Quantity: 1, Price: 150})
	require.NoError(t, err)
	assert.Equal(t, entity.MarketForeign, res.Position.Market)
	assert.Equal(t, entity.MarketForeign, res.Transaction.Market)
	assert.Equal(t, int64(3), res.Position.Quantity)
	assert.InDelta(t, 143.33333333333334, res.Position.AvgBuyPrice, 1e-9)

	// A brand-new ticker without a market still defaults to domestic.
	res, err = f.ledger.RecordBuy(ctx, dto.BuyRequest{Ticker: "FPT", Quantity: 1, Price: 85000})
	require.NoError(t, err)
	assert.Equal(t, entity.MarketDomestic, res.Position.Market)
	assert.Equal(t, counts{transactions: 3, positions: 2}, f.counts(t))
}

func TestRecordSellPartial(t *testing.T) {
	f := newFixture(t)
	f.buy(t, "FPT", 100, 85000)
	f.buy(t, "FPT", 50, 88000)

	res := f.sell(t, "FPT", 50, 90000)

	require.NotNil(t, res.Realized)
	assert.Equal(t, 200000.0, res.Realized.PnL)
	assert.InDelta(t, 4.651162790697675, res.Realized.PnLPercent, 1e-9)
	assert.Equal(t, 86000.0, res.Realized.BuyPrice)
	assert.Equal(t, 90000.0, res.Realized.SellPrice)
	assert.False(t, res.PositionClosed)
	require.NotNil(t, res.Position)
	assert.Equal(t, int64(100), res.Position.Quantity)
	assert.Equal(t, 86000.0, res.Position.AvgBuyPrice, "sell leaves the average untouched")

	assert.Equal(t, counts{transactions: 3, positions: 1, realized: 1}, f.counts(t))
}

func TestRecordSellFullClosesPosition(t *testing.T) {
	f := newFixture(t)
	f.buy(t, "FPT", 100, 85000)

	res := f.sell(t, "FPT", 100, 80000)
	assert.True(t, res.PositionClosed)
	assert.Nil(t, res.Position)
	assert.Equal(t, -500000.0, res.Realized.PnL)

	positions, err := f.ledger.ListPositions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, positions)

	// A new buy starts a fresh average.
	again := f.buy(t, "FPT", 10, 100000)
	assert.Equal(t, 100000.0, again.Position.AvgBuyPrice)
	assert.Equal(t, int64(10), again.Position.Quantity)
}

func TestRecordSellInsufficientQuantity(t *testing.T) {
	f := newFixture(t)
	f.buy(t, "FPT", 100, 85000)
	before := f.counts(t)

	_, err := f.ledger.RecordSell(context.Background(), dto.SellRequest{Ticker: "FPT", Quantity: 101, Price: 90000})
	require.ErrorIs(t, err, ErrInsufficientQuantity)

	var qtyErr *InsufficientQuantityError
	require.True(t, errors.As(err, &qtyErr))
	assert.Equal(t, int64(101), qtyErr.Requested)
	assert.Equal(t, int64(100), qtyErr.Available)

	assert.Equal(t, before, f.counts(t))
	positions, err := f.ledger.ListPositions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), positions[0].Quantity)
}

func TestRecordSellWithoutPosition(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordSell(context.Background(), dto.SellRequest{Ticker: "VNM", Quantity: 1, Price: 1})
	assert.ErrorIs(t, err, ErrPositionNotFound)
	assert.Equal(t, counts{}, f.counts(t))
}

func TestRecordSellMarketMismatch(t *testing.T) {
	f := newFixture(t)
	f.buy(t, "FPT", 10, 100)

	_, err := f.ledger.RecordSell(context.Background(), dto.SellRequest{Ticker: "FPT", Quantity: 1, Price: 1, Market: "FOREIGN"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, counts{transactions: 1, positions: 1}, f.counts(t))
}

func TestRecordSellRollsBackOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.buy(t, "FPT", 100, 85000)
	before, err := f.ledger.ListPositions(ctx)
	require.NoError(t, err)

	repos := f.repos
	repos.RealizedPnL = failingRealizedPnL{f.repos.RealizedPnL}
	ledger := f.ledgerWith(repos)

	for _, qty := range []int64{40, 100} {
		_, err = ledger.RecordSell(ctx, dto.SellRequest{Ticker: "FPT", Quantity: qty, Price: 90000})
		require.ErrorIs(t, err, ErrStorageFailure)
		assert.ErrorContains(t, err, "disk full")
	}

	assert.Equal(t, counts{transactions: 1, positions: 1}, f.counts(t))
	after, err := f.ledger.ListPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The healthy ledger still sees the untouched holding.
	res := f.sell(t, "FPT", 40, 90000)
	assert.Equal(t, int64(60), res.Position.Quantity)
}

func TestRecordBuyRollsBackOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.buy(t, "FPT", 100, 85000)
	before, err := f.ledger.ListPositions(ctx)
	require.NoError(t, err)

	repos := f.repos
	repos.Positions = failingPositions{f.repos.Positions}
	ledger := f.ledgerWith(repos)

	_, err = ledger.RecordBuy(ctx, dto.BuyRequest{Ticker: "FPT", Quantity: 50, Price: 88000})
	require.ErrorIs(t, err, ErrStorageFailure)
	_, err = ledger.RecordBuy(ctx, dto.BuyRequest{Ticker: "VNM", Quantity: 10, Price: 70000})
	require.ErrorIs(t, err, ErrStorageFailure)

	assert.Equal(t, counts{transactions: 1, positions: 1}, f.counts(t))
	after, err := f.ledger.ListPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	trxs, err := f.ledger.QueryTransactions(ctx, dto.HistoryParam{})
	require.NoError(t, err)
	require.Len(t, trxs, 1)
	assert.Equal(t, int64(100), trxs[0].Quantity)
}

func TestQueryTransactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		f.buy(t, "FPT", 1, 100)
	}
	f.buy(t, "VNM", 1, 100)

	all, err := f.ledger.QueryTransactions(ctx, dto.HistoryParam{})
	require.NoError(t, err)
	assert.Len(t, all, DefaultHistoryLimit)
	assert.Equal(t, "VNM", all[0].Ticker, "newest first")

	fpt, err := f.ledger.QueryTransactions(ctx, dto.HistoryParam{Ticker: "fpt", Limit: 5})
	require.NoError(t, err)
	assert.Len(t, fpt, 5)
	for i := 1; i < len(fpt); i++ {
		assert.GreaterOrEqual(t, fpt[i-1].TradeDate+fpt[i-1].TradeTime, fpt[i].TradeDate+fpt[i].TradeTime)
	}

	_, err = f.ledger.QueryTransactions(ctx, dto.HistoryParam{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResetAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.buy(t, "FPT", 10, 100)
	f.sell(t, "FPT", 5, 110)
	require.NoError(t, f.repos.PriceCache.Upsert(ctx, &entity.PriceCacheEntry{Ticker: "FPT", Price: 100, LastUpdated: f.clock.Now()}))

	require.NoError(t, f.ledger.ResetAll(ctx))

	assert.Equal(t, counts{}, f.counts(t))
	entry, err := f.repos.PriceCache.Get(ctx, "FPT")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestConcurrentTradesStayConsistent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.buy(t, "FPT", 1000, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordBuy(ctx, dto.BuyRequest{Ticker: "FPT", Quantity: 10, Price: 120})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordSell(ctx, dto.SellRequest{Ticker: "FPT", Quantity: 5, Price: 130})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	positions, err := f.ledger.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, int64(1000+20*10-20*5), positions[0].Quantity)

	var net int64
	trxs, err := f.ledger.QueryTransactions(ctx, dto.HistoryParam{Limit: 1000})
	require.NoError(t, err)
	for _, trx := range trxs {
		if trx.Type == entity.TransactionTypeBuy {
			net += trx.Quantity
		} else {
			net -= trx.Quantity
		}
	}
	assert.Equal(t, positions[0].Quantity, net)
}

func TestWeightedAverageAndRealizedPnL(t *testing.T) {
	assert.Equal(t, 86000.0, WeightedAverage(100, 85000, 50, 88000))

	pnl, pct := RealizedPnL(100, 110, 10)
	assert.Equal(t, 100.0, pnl)
	assert.Equal(t, 10.0, pct)
}
