// ABOUTME: Clock abstraction for "today" and record timestamps
package storage

import (
	"time"

	"github.com/harper/mindspace/internal/models"
)

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// today returns the date key for the clock's current day
func today(c Clock) string {
	return models.FormatDate(c.Now())
}
