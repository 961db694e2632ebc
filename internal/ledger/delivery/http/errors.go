package http

import (
	"errors"
	"net/http"

	"golang-stock-ledger/internal/ledger/dto"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

// statusFor maps a service error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPositionNotFound), errors.Is(err, service.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientQuantity):
		return http.StatusConflict
	case errors.Is(err, service.ErrPriceUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, log *logger.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(c.Request().Context(), "Request failed", logger.ErrorField(err), logger.StringField("path", c.Path()))
		return c.JSON(status, dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
