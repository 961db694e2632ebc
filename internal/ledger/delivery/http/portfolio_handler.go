package http

import (
	"net/http"

	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler serves positions, reports and prices.
type PortfolioHandler struct {
	portfolio service.PortfolioService
	ledger    service.LedgerService
	logger    *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolio service.PortfolioService, ledger service.LedgerService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, ledger: ledger, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/positions", h.GetPositions)
	g.GET("/portfolio", h.GetPortfolio)
	g.GET("/performance", h.GetPerformance)
	g.GET("/prices/:ticker", h.GetPrice)
	g.POST("/reset", h.Reset)
}

// GetPositions godoc
// @Summary List open positions
// @Tags portfolio
// @Produce  json
// @Success 200 {array} entity.Position
// @Failure 500 {object} dto.ErrorResponse
// @Router /positions [get]
func (h *PortfolioHandler) GetPositions(c echo.Context) error {
	positions, err := h.ledger.ListPositions(c.Request().Context())
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, positions)
}

// GetPortfolio godoc
// @Summary Portfolio report
// @Description Positions valued at current prices; rows without a price are pending and left out of the totals
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.PortfolioReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	report, err := h.portfolio.ViewPortfolio(c.Request().Context())
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetPerformance godoc
// @Summary Realized performance
// @Tags portfolio
// @Produce  json
// @Param   ticker  query    string false    "Ticker filter"
// @Success 200 {object} dto.PerformanceSummary
// @Failure 500 {object} dto.ErrorResponse
// @Router /performance [get]
func (h *PortfolioHandler) GetPerformance(c echo.Context) error {
	summary, err := h.portfolio.ViewPerformance(c.Request().Context(), c.QueryParam("ticker"))
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetPrice godoc
// @Summary Current price
// @Description Cached price when fresh, otherwise fetched from the market's source
// @Tags prices
// @Produce  json
// @Param   ticker  path     string true     "Ticker"
// @Param   market  query    string false    "DOMESTIC or FOREIGN"
// @Success 200 {object} dto.PriceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /prices/{ticker} [get]
func (h *PortfolioHandler) GetPrice(c echo.Context) error {
	resp, err := h.portfolio.CurrentPrice(c.Request().Context(), c.Param("ticker"), c.QueryParam("market"))
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Reset godoc
// @Summary Reset the portfolio
// @Description Delete every transaction, position, realized P&L row and cached price
// @Tags portfolio
// @Accept  json
// @Param   confirm  body    dto.ResetRequest   true    "Must be true"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reset [post]
func (h *PortfolioHandler) Reset(c echo.Context) error {
	var req dto.ResetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if !req.Confirm {
		return badRequest(c, "Reset requires confirm=true")
	}

	if err := h.portfolio.ResetPortfolio(c.Request().Context()); err != nil {
		return errorResponse(c, h.logger, err)
	}
	h.logger.Warn("Portfolio reset via API")
	return c.NoContent(http.StatusNoContent)
}
