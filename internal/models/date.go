// ABOUTME: Calendar date keys shared by every collection
// ABOUTME: Dates are ISO YYYY-MM-DD strings interpreted in the user's time zone
package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the key format for all records
const DateLayout = "2006-01-02"

// ErrInvalidRecord is returned when a record or key fails validation
var ErrInvalidRecord = errors.New("invalid record")

// FormatDate returns the date key for t in t's own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date key as midnight in loc
func ParseDate(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidRecord, key)
	}
	return t, nil
}

// ValidateDate checks that key is a well-formed date key
func ValidateDate(key string) error {
	_, err := ParseDate(key, time.UTC)
	return err
}

// Midnight truncates t to the start of its calendar day in t's location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBefore returns the date key n days before the day of t
func DaysBefore(t time.Time, n int) string {
	return FormatDate(Midnight(t).AddDate(0, 0, -n))
}
