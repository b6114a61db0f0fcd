package calendar

import (
	"math"
	"time"
)

// Lunch window excluded from support time, local clock
const (
	lunchStartHour = 12
	lunchEndHour   = 13
)

// SupportMinutes returns the whole minutes between start and end minus the
// part that falls inside 12:00-13:00 on each day spanned. Both instants are
// read in start's location. A non-positive interval yields 0.
func SupportMinutes(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	loc := start.Location()
	end = end.In(loc)
	total := end.Sub(start)

	for day := TruncateDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		y, m, d := day.Date()
		ls := time.Date(y, m, d, lunchStartHour, 0, 0, 0, loc)
		le := time.Date(y, m, d, lunchEndHour, 0, 0, 0, loc)
		from, to := ls, le
		if start.After(from) {
			from = start
		}
		if end.Before(to) {
			to = end
		}
		if to.After(from) {
			total -= to.Sub(from)
		}
	}
	if total < 0 {
		return 0
	}
	return int(total / time.Minute)
}

// SupportHours is SupportMinutes in hours rounded to two decimals
func SupportHours(start, end time.Time) float64 {
	return Round2(float64(SupportMinutes(start, end)) / 60)
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
