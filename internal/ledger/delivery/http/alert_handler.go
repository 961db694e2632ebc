package http

import (
	"net/http"
	"strconv"

	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AlertHandler handles HTTP requests for price alerts.
type AlertHandler struct {
	alerts service.AlertService
	logger *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alerts: alerts, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAlert)
	g.GET("", h.GetAlerts)
	g.DELETE("/:id", h.DeleteAlert)
	g.DELETE("", h.ClearAlerts)
}

// CreateAlert godoc
// @Summary Create a price alert
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   alert  body    dto.CreateAlertRequest   true    "Alert to create"
// @Success 201 {object} entity.PriceAlert
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [post]
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req dto.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	alert, err := h.alerts.Create(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, alert)
}

// GetAlerts godoc
// @Summary List price alerts
// @Tags alerts
// @Produce  json
// @Param   ticker  query    string false    "Ticker filter"
// @Param   active  query    bool   false    "Only active alerts"
// @Success 200 {array} entity.PriceAlert
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) GetAlerts(c echo.Context) error {
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))
	alerts, err := h.alerts.List(c.Request().Context(), c.QueryParam("ticker"), activeOnly)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// DeleteAlert godoc
// @Summary Delete a price alert
// @Tags alerts
// @Param   id  path    int true    "Alert ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return badRequest(c, "Invalid alert ID")
	}

	if err := h.alerts.Delete(c.Request().Context(), uint(id)); err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearAlerts godoc
// @Summary Clear price alerts
// @Description Delete every alert, or only those of one ticker
// @Tags alerts
// @Produce  json
// @Param   ticker  query    string false    "Ticker filter"
// @Success 200 {object} map[string]int64
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [delete]
func (h *AlertHandler) ClearAlerts(c echo.Context) error {
	n, err := h.alerts.Clear(c.Request().Context(), c.QueryParam("ticker"))
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
