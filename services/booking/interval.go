package booking

import (
	"time"

	"auditorium/models"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// IntervalOf returns the time range occupied by a booking.
func IntervalOf(b models.Booking) Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Valid reports whether the interval has positive length.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether a and b share at least one instant. Intervals that only
// touch at a boundary do not overlap, and an empty interval overlaps nothing.
func Overlaps(a, b Interval) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
