// Package fare holds the pure billing arithmetic: base fare from hourly
// rate and duration, and the flat-rate late-return penalty.
package fare

import (
	"math"
	"time"
)

// LatePenaltyCap is the ceiling on a late-return penalty: a flat rate of
// one currency unit per minute, capped at two hours.
const LatePenaltyCap = 120

// BillableHours rounds the window up to whole hours, never below one.
func BillableHours(start, end time.Time) int {
	if !end.After(start) {
		return 1
	}
	hours := int(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours
}

// Compute returns the base fare for the given rate and whole-hour duration.
func Compute(hourlyRate float64, hours int) float64 {
	if hours < 1 {
		hours = 1
	}
	return math.Ceil(float64(hours) * hourlyRate)
}

// LateReturnPenalty charges one unit per started minute past the scheduled
// end, capped at LatePenaltyCap. Returns 0 for an on-time return.
func LateReturnPenalty(scheduledEnd, actualEnd time.Time) float64 {
	if !actualEnd.After(scheduledEnd) {
		return 0
	}
	lateMinutes := math.Ceil(actualEnd.Sub(scheduledEnd).Minutes())
	if lateMinutes > LatePenaltyCap {
		lateMinutes = LatePenaltyCap
	}
	return lateMinutes
}
