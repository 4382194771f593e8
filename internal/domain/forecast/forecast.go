// Package forecast projects month-to-date totals to a full-month estimate.
package forecast

import "math"

// MonthEnd returns the linear run-rate projection of a month-to-date total:
// round(mtd / dayOfMonth * daysInMonth). A non-positive day of month yields
// zero. No seasonality or weighting is applied; this is a known
// simplification.
func MonthEnd(mtdTotal, dayOfMonth, daysInMonth int) int {
	if dayOfMonth <= 0 {
		return 0
	}
	return int(math.Round(float64(mtdTotal) / float64(dayOfMonth) * float64(daysInMonth)))
}
