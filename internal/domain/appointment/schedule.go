package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp, keeping only
// the calendar date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, httperr.ErrValidation("missing_fields")
	}

	if d, err := time.Parse(DateLayout, raw); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, httperr.ErrValidation("invalid_date")
}

// ParseClock validates an hour:minute pair and returns it normalized as HH:MM.
func ParseClock(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", httperr.ErrValidation("missing_fields")
	}

	t, err := time.Parse(ClockLayout, raw)
	if err != nil {
		return "", httperr.ErrValidation("invalid_time")
	}
	return t.Format(ClockLayout), nil
}

// StartsAt combines the stored date and wall-clock time in loc.
func StartsAt(date time.Time, clock string, loc *time.Location) time.Time {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}
