package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-ledger/internal/ledger/config"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs background ledger tasks on cron schedules.
type SchedulerService interface {
	Start(ctx context.Context)
	RunDue(ctx context.Context)
}

type scheduledTask struct {
	name     string
	schedule cron.Schedule
	next     time.Time
	run      func(ctx context.Context) error
}

type schedulerService struct {
	tasks           []*scheduledTask
	clock           utils.Clock
	pollingInterval time.Duration
	taskTimeout     time.Duration
	logger          *logger.Logger
}

// NewSchedulerService registers the price refresh and alert check tasks for
// every non-empty cron expression in cfg.
func NewSchedulerService(cfg config.Scheduler, reports ReportService, alerts AlertService, clock utils.Clock, logger *logger.Logger) (SchedulerService, error) {
	s := &schedulerService{
		clock:           clock,
		pollingInterval: cfg.PollingInterval,
		taskTimeout:     cfg.TaskTimeout,
		logger:          logger,
	}
	if s.pollingInterval <= 0 {
		s.pollingInterval = 30 * time.Second
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	add := func(name, expr string, run func(ctx context.Context) error) error {
		if expr == "" {
			return nil
		}
		schedule, err := parser.Parse(expr)
		if err != nil {
			return fmt.Errorf("invalid cron expression for %s: %w", name, err)
		}
		s.tasks = append(s.tasks, &scheduledTask{
			name:     name,
			schedule: schedule,
			next:     schedule.Next(clock.Now()),
			run:      run,
		})
		return nil
	}

	if err := add("price_refresh", cfg.PriceRefreshCron, reports.RefreshPrices); err != nil {
		return nil, err
	}
	if err := add("alert_check", cfg.AlertCheckCron, func(ctx context.Context) error {
		_, err := alerts.CheckAlerts(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// Start polls for due tasks until ctx is canceled.
func (s *schedulerService) Start(ctx context.Context) {
	if len(s.tasks) == 0 {
		s.logger.Info("No scheduled tasks configured")
		return
	}

	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.RunDue(ctx)
		}
	}
}

// RunDue runs every task whose next execution time has passed and schedules its next run.
func (s *schedulerService) RunDue(ctx context.Context) {
	now := s.clock.Now()
	for _, task := range s.tasks {
		if now.Before(task.next) {
			continue
		}

		taskCtx := ctx
		cancel := func() {}
		if s.taskTimeout > 0 {
			taskCtx, cancel = context.WithTimeout(ctx, s.taskTimeout)
		}
		err := task.run(taskCtx)
		cancel()

		if err != nil {
			s.logger.Error("Scheduled task failed", logger.ErrorField(err), logger.StringField("task", task.name))
		} else {
			s.logger.Debug("Scheduled task completed", logger.StringField("task", task.name))
		}
		task.next = task.schedule.Next(now)
	}
}
