package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/pricing"
	"golang-stock-ledger/internal/ledger/repository"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/database"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, prices map[string]float64) *echo.Echo {
	t.Helper()
	db, err := database.NewDB(database.Config{Driver: database.DriverSQLite, Path: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.AutoMigrate(db.DB))

	log := logger.NewNop()
	clock := &utils.FixedClock{T: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	source := pricing.SourceFunc(func(_ context.Context, ticker string, _ entity.Market) (float64, error) {
		if p, ok := prices[ticker]; ok {
			return p, nil
		}
		return 0, pricing.ErrPriceUnavailable
	})
	resolver := pricing.NewResolver(pricing.NewCache(pricing.NewMemoryStore(), clock, log), source, clock, time.Second, log)

	repos := service.NewRepositories(db.DB)
	ledger := service.NewLedgerService(db.DB, repos, clock, 0, log)
	portfolio := service.NewPortfolioService(
		ledger,
		service.NewReportService(ledger, resolver, clock, 2, log),
		service.NewPerformanceService(repos.RealizedPnL, log),
		resolver,
		service.PortfolioOptions{},
		log,
	)
	alerts := service.NewAlertService(repository.NewPriceAlertRepository(db.DB), resolver, nil, clock, log)

	e := echo.New()
	RegisterRoutes(e.Group("/api/v1"), portfolio, ledger, alerts, log)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestTradeEndpoints(t *testing.T) {
	e := newTestServer(t, map[string]float64{"FPT": 95000})

	rec := do(e, http.MethodPost, "/api/v1/transactions/buy", `{"ticker":"fpt","quantity":100,"price":85000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	buy := decode[dto.TradeResult](t, rec)
	require.NotNil(t, buy.Position)
	assert.Equal(t, "FPT", buy.Position.Ticker)
	assert.Equal(t, entity.MarketDomestic, buy.Position.Market)

	rec = do(e, http.MethodPost, "/api/v1/transactions/sell", `{"ticker":"FPT","quantity":40,"price":90000,"note":"trim"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sell := decode[dto.TradeResult](t, rec)
	require.NotNil(t, sell.Realized)
	assert.Equal(t, 200000.0, sell.Realized.PnL)

	rec = do(e, http.MethodGet, "/api/v1/transactions?ticker=FPT&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	txs := decode[[]entity.Transaction](t, rec)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeSell, txs[0].Type)

	rec = do(e, http.MethodGet, "/api/v1/positions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	positions := decode[[]entity.Position](t, rec)
	require.Len(t, positions, 1)
	assert.Equal(t, int64(60), positions[0].Quantity)

	rec = do(e, http.MethodGet, "/api/v1/portfolio", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[dto.PortfolioReport](t, rec)
	require.Len(t, report.Rows, 1)
	assert.False(t, report.Rows[0].Pending)
	assert.Equal(t, 600000.0, report.Totals.PnL)

	rec = do(e, http.MethodGet, "/api/v1/performance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	perf := decode[dto.PerformanceSummary](t, rec)
	assert.Equal(t, int64(1), perf.TotalTrades)
	assert.Equal(t, 100.0, perf.WinRate)
}

func TestErrorMapping(t *testing.T) {
	e := newTestServer(t, nil)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/transactions/buy", `{"ticker":"FPT","quantity":10,"price":85000}`).Code)

	testCases := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "malformed body", method: http.MethodPost, target: "/api/v1/transactions/buy", body: `{"quantity":"ten"}`, status: http.StatusBadRequest},
		{name: "zero quantity", method: http.MethodPost, target: "/api/v1/transactions/buy", body: `{"ticker":"FPT","quantity":0,"price":1}`, status: http.StatusBadRequest},
		{name: "sell unknown", method: http.MethodPost, target: "/api/v1/transactions/sell", body: `{"ticker":"VNM","quantity":1,"price":1}`, status: http.StatusNotFound},
		{name: "oversell", method: http.MethodPost, target: "/api/v1/transactions/sell", body: `{"ticker":"FPT","quantity":11,"price":1}`, status: http.StatusConflict},
		{name: "negative limit", method: http.MethodGet, target: "/api/v1/transactions?limit=-1", status: http.StatusBadRequest},
		{name: "bad market", method: http.MethodGet, target: "/api/v1/prices/FPT?market=MARS", status: http.StatusBadRequest},
		{name: "reset without confirm", method: http.MethodPost, target: "/api/v1/reset", body: `{}`, status: http.StatusBadRequest},
		{name: "unknown alert", method: http.MethodDelete, target: "/api/v1/alerts/42", status: http.StatusNotFound},
		{name: "bad alert id", method: http.MethodDelete, target: "/api/v1/alerts/abc", status: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[dto.ErrorResponse](t, rec).Error)
		})
	}
}

func TestPriceAndReset(t *testing.T) {
	e := newTestServer(t, map[string]float64{"AAPL": 170})

	rec := do(e, http.MethodGet, "/api/v1/prices/aapl?market=US", "")
	require.Equal(t, http.StatusOK, rec.Code)
	price := decode[dto.PriceResponse](t, rec)
	assert.True(t, price.Available)
	assert.Equal(t, 170.0, price.Price)
	assert.Equal(t, entity.MarketForeign, price.Market)

	rec = do(e, http.MethodGet, "/api/v1/prices/ZZZ", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.PriceResponse](t, rec).Available)

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/transactions/buy", `{"ticker":"AAPL","quantity":1,"price":150,"market":"US"}`).Code)
	require.Equal(t, http.StatusNoContent, do(e, http.MethodPost, "/api/v1/reset", `{"confirm":true}`).Code)

	rec = do(e, http.MethodGet, "/api/v1/positions", "")
	assert.Empty(t, decode[[]entity.Position](t, rec))
}

func TestAlertEndpoints(t *testing.T) {
	e := newTestServer(t, nil)

	rec := do(e, http.MethodPost, "/api/v1/alerts", `{"ticker":"FPT","condition":"ABOVE","target_price":95000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	alert := decode[entity.PriceAlert](t, rec)
	assert.True(t, alert.Active)

	rec = do(e, http.MethodPost, "/api/v1/alerts", `{"ticker":"FPT","condition":"NEAR","target_price":95000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/alerts?active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entity.PriceAlert](t, rec), 1)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/api/v1/alerts/1", "").Code)

	rec = do(e, http.MethodDelete, "/api/v1/alerts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode[map[string]float64](t, rec)["deleted"])
}
