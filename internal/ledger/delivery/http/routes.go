package http

import (
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every ledger handler on the API group.
func RegisterRoutes(api *echo.Group, portfolio service.PortfolioService, ledger service.LedgerService, alerts service.AlertService, log *logger.Logger) {
	NewTransactionHandler(portfolio, log).RegisterRoutes(api.Group("/transactions"))
	NewPortfolioHandler(portfolio, ledger, log).RegisterRoutes(api)
	NewAlertHandler(alerts, log).RegisterRoutes(api.Group("/alerts"))
}
