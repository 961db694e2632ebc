package service

import (
	"context"
	"testing"
	"time"

	"golang-stock-ledger/internal/ledger/config"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReports struct{ refreshes int }

func (r *countingReports) BuildPortfolioReport(context.Context) (*dto.PortfolioReport, error) {
	return &dto.PortfolioReport{}, nil
}

func (r *countingReports) RefreshPrices(context.Context) error {
	r.refreshes++
	return nil
}

type countingAlerts struct {
	AlertService
	checks int
}

func (a *countingAlerts) CheckAlerts(context.Context) ([]dto.AlertTrigger, error) {
	a.checks++
	return nil, nil
}

func TestSchedulerRunDue(t *testing.T) {
	f := newFixture(t)
	f.clock.T = time.Date(2026, 10, 15, 9, 0, 30, 0, time.UTC)
	reports := &countingReports{}
	alerts := &countingAlerts{}

	svc, err := NewSchedulerService(config.Scheduler{
		PriceRefreshCron: "*/5 * * * *",
		AlertCheckCron:   "@every 1m",
	}, reports, alerts, f.clock, logger.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	svc.RunDue(ctx)
	assert.Zero(t, reports.refreshes)
	assert.Zero(t, alerts.checks)

	f.clock.Advance(time.Minute)
	svc.RunDue(ctx)
	assert.Zero(t, reports.refreshes)
	assert.Equal(t, 1, alerts.checks)

	f.clock.Advance(4 * time.Minute)
	svc.RunDue(ctx)
	assert.Equal(t, 1, reports.refreshes)
	assert.Equal(t, 2, alerts.checks)
}

func TestSchedulerInvalidCron(t *testing.T) {
	f := newFixture(t)
	_, err := NewSchedulerService(config.Scheduler{PriceRefreshCron: "not a cron"}, &countingReports{}, &countingAlerts{}, f.clock, logger.NewNop())
	assert.ErrorContains(t, err, "price_refresh")
}

func TestSchedulerStartStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	svc, err := NewSchedulerService(config.Scheduler{AlertCheckCron: "@every 1m", PollingInterval: time.Millisecond}, &countingReports{}, &countingAlerts{}, f.clock, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
