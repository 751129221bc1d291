// Package overlap implements the half-open interval intersection test used
// by both room bookings (date ranges) and service bookings (time-of-day
// ranges within a single date).
package overlap

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A range ending exactly when another begins does
// not overlap, so a checkout day may coincide with the next check-in day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether t falls inside the half-open interval [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
