package calendar

import "time"

const daysPerMonth = 30

// MonthlyEffort converts an allocation into man-months: a full allocation is
// 1.0, a partial one is days/30 with days clamped to [0, 30].
func MonthlyEffort(allocationType string, days int) float64 {
	if allocationType == "full" {
		return 1
	}
	if days < 0 {
		days = 0
	}
	if days > daysPerMonth {
		days = daysPerMonth
	}
	return Round2(float64(days) / daysPerMonth)
}

// ActiveInMonth reports whether [start, end] overlaps the calendar month of
// month. A nil end means open-ended.
func ActiveInMonth(start time.Time, end *time.Time, month time.Time) bool {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)
	if TruncateDay(start).After(last) {
		return false
	}
	if end != nil && TruncateDay(*end).Before(first) {
		return false
	}
	return true
}
