package service

import (
	"errors"
	"fmt"

	"golang-stock-ledger/internal/ledger/pricing"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrPositionNotFound     = errors.New("position not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrPriceUnavailable     = pricing.ErrPriceUnavailable
	ErrStorageFailure       = errors.New("storage failure")
	ErrAlertNotFound        = errors.New("alert not found")
)

// InsufficientQuantityError carries both sides of a rejected sell.
type InsufficientQuantityError struct {
	Ticker    string
	Requested int64
	Available int64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity for %s: requested %d, available %d", e.Ticker, e.Requested, e.Available)
}

func (e *InsufficientQuantityError) Is(target error) bool {
	return target == ErrInsufficientQuantity
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// isDomainError reports whether err is one of the caller-facing errors that
// must pass through unchanged.
func isDomainError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrPositionNotFound) ||
		errors.Is(err, ErrInsufficientQuantity) ||
		errors.Is(err, ErrPriceUnavailable) ||
		errors.Is(err, ErrAlertNotFound)
}
