package utils

import (
	"time"
)

const (
	DefaultTimeZone = "Asia/Ho_Chi_Minh"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Clock supplies the current time in a fixed reference timezone.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

// NewClock returns a Clock reporting wall time in the named timezone.
// An empty name selects DefaultTimeZone.
func NewClock(timeZone string) (Clock, error) {
	if timeZone == "" {
		timeZone = DefaultTimeZone
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, err
	}
	return &locationClock{loc: loc}, nil
}

func (c *locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always returns the same instant until advanced.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// SplitDateTime renders t as the ledger's date and time columns.
func SplitDateTime(t time.Time) (string, string) {
	return t.Format(DateLayout), t.Format(TimeLayout)
}

// PrettyDate formats a timestamp for chat output, e.g. "15 Oct 2026 09:30".
func PrettyDate(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}
