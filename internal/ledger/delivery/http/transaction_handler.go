package http

import (
	"net/http"

	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles HTTP requests that record or list trades.
type TransactionHandler struct {
	portfolio service.PortfolioService
	logger    *logger.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(portfolio service.PortfolioService, logger *logger.Logger) *TransactionHandler {
	return &TransactionHandler{portfolio: portfolio, logger: logger}
}

// RegisterRoutes registers the transaction routes to the Echo group.
func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/buy", h.Buy)
	g.POST("/sell", h.Sell)
	g.GET("", h.History)
}

// Buy godoc
// @Summary Record a buy
// @Description Record a BUY and update the position's average cost
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.BuyRequest   true    "Trade to record"
// @Success 201 {object} dto.TradeResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/buy [post]
func (h *TransactionHandler) Buy(c echo.Context) error {
	var req dto.BuyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	res, err := h.portfolio.Buy(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Sell godoc
// @Summary Record a sell
// @Description Record a SELL and realize P&L against the average cost
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.SellRequest   true    "Trade to record"
// @Success 201 {object} dto.TradeResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/sell [post]
func (h *TransactionHandler) Sell(c echo.Context) error {
	var req dto.SellRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	res, err := h.portfolio.Sell(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// History godoc
// @Summary List transactions
// @Description List transactions newest first
// @Tags transactions
// @Produce  json
// @Param   ticker  query    string false    "Ticker filter"
// @Param   limit   query    int    false    "Maximum rows, default 20"
// @Success 200 {array} entity.Transaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) History(c echo.Context) error {
	var param dto.HistoryParam
	if err := c.Bind(&param); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	txs, err := h.portfolio.ViewHistory(c.Request().Context(), param)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, txs)
}
