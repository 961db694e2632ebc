package service

import (
	"context"
	"fmt"
	"strings"

	"golang-stock-ledger/internal/entity"
	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/repository"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/telegram"
	"golang-stock-ledger/pkg/utils"
)

// AlertService manages one-shot price alerts.
type AlertService interface {
	Create(ctx context.Context, req dto.CreateAlertRequest) (*entity.PriceAlert, error)
	List(ctx context.Context, ticker string, activeOnly bool) ([]entity.PriceAlert, error)
	Delete(ctx context.Context, id uint) error
	Clear(ctx context.Context, ticker string) (int64, error)
	CheckAlerts(ctx context.Context) ([]dto.AlertTrigger, error)
}

// NewAlertService creates an AlertService. notifier may be nil, in which case
// triggered alerts are only recorded.
func NewAlertService(repo repository.PriceAlertRepository, resolver PriceResolver, notifier telegram.Notifier, clock utils.Clock, logger *logger.Logger) AlertService {
	return &alertService{
		repo:     repo,
		resolver: resolver,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

type alertService struct {
	repo     repository.PriceAlertRepository
	resolver PriceResolver
	notifier telegram.Notifier
	clock    utils.Clock
	logger   *logger.Logger
}

func (s *alertService) Create(ctx context.Context, req dto.CreateAlertRequest) (*entity.PriceAlert, error) {
	ticker := entity.NormalizeTicker(req.Ticker)
	if ticker == "" {
		return nil, invalidArgument("ticker is required")
	}
	if req.TargetPrice <= 0 {
		return nil, invalidArgument("target price must be positive, got %v", req.TargetPrice)
	}
	market, err := entity.ParseMarket(req.Market)
	if err != nil {
		return nil, invalidArgument("%v", err)
	}

	var condition entity.AlertCondition
	switch entity.AlertCondition(strings.ToUpper(strings.TrimSpace(req.Condition))) {
	case entity.AlertConditionAbove, ">", ">=":
		condition = entity.AlertConditionAbove
	case entity.AlertConditionBelow, "<", "<=":
		condition = entity.AlertConditionBelow
	default:
		return nil, invalidArgument("condition must be ABOVE or BELOW, got %q", req.Condition)
	}

	alert := &entity.PriceAlert{
		Ticker:      ticker,
		Market:      market,
		Condition:   condition,
		TargetPrice: req.TargetPrice,
		Active:      true,
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create price alert", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, fmt.Errorf("%w: create alert: %v", ErrStorageFailure, err)
	}
	return alert, nil
}

func (s *alertService) List(ctx context.Context, ticker string, activeOnly bool) ([]entity.PriceAlert, error) {
	alerts, err := s.repo.List(ctx, entity.NormalizeTicker(ticker), activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: list alerts: %v", ErrStorageFailure, err)
	}
	return alerts, nil
}

func (s *alertService) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete alert: %v", ErrStorageFailure, err)
	}
	if !found {
		return fmt.Errorf("%w: %d", ErrAlertNotFound, id)
	}
	return nil
}

func (s *alertService) Clear(ctx context.Context, ticker string) (int64, error) {
	n, err := s.repo.DeleteByTicker(ctx, entity.NormalizeTicker(ticker))
	if err != nil {
		return 0, fmt.Errorf("%w: clear alerts: %v", ErrStorageFailure, err)
	}
	return n, nil
}

// CheckAlerts resolves a price once per ticker and fires every matching alert.
// Tickers without a price are skipped until the next check.
func (s *alertService) CheckAlerts(ctx context.Context) ([]dto.AlertTrigger, error) {
	alerts, err := s.repo.List(ctx, "", true)
	if err != nil {
		return nil, fmt.Errorf("%w: list alerts: %v", ErrStorageFailure, err)
	}

	type priceKey struct {
		ticker string
		market entity.Market
	}
	prices := make(map[priceKey]resolvedPrice)

	var triggered []dto.AlertTrigger
	for _, alert := range alerts {
		key := priceKey{ticker: alert.Ticker, market: alert.Market}
		rp, seen := prices[key]
		if !seen {
			rp.price, rp.ok = s.resolver.CurrentPrice(ctx, alert.Ticker, alert.Market)
			prices[key] = rp
		}
		if !rp.ok || !alert.Matches(rp.price) {
			continue
		}

		now := s.clock.Now()
		if err := s.repo.MarkTriggered(ctx, alert.ID, rp.price, now); err != nil {
			s.logger.ErrorContext(ctx, "Failed to mark alert triggered", logger.ErrorField(err), logger.IntField("alert_id", int(alert.ID)))
			continue
		}
		alert.Active = false
		alert.TriggeredPrice = utils.ToPointer(rp.price)
		alert.TriggeredAt = utils.ToPointer(now)
		triggered = append(triggered, dto.AlertTrigger{Alert: alert, Price: rp.price})

		if s.notifier != nil {
			if err := s.notifier.SendMessage(telegram.FormatAlertTriggered(alert, rp.price)); err != nil {
				s.logger.Error("Failed to send alert", logger.ErrorField(err), logger.StringField("ticker", alert.Ticker))
			}
		}
		s.logger.Info("Price alert triggered",
			logger.StringField("ticker", alert.Ticker),
			logger.StringField("condition", string(alert.Condition)),
			logger.Float64Field("target_price", alert.TargetPrice),
			logger.Float64Field("price", rp.price))
	}
	return triggered, nil
}
