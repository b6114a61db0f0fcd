package calendar

import "time"

// HolidaySet maps YYYY-MM-DD to a holiday name
type HolidaySet map[string]string

// Add registers a holiday, keeping the first name seen for a date
func (h HolidaySet) Add(d time.Time, name string) {
	key := DateKey(d)
	if _, ok := h[key]; !ok {
		h[key] = name
	}
}

// Contains reports whether d is a holiday
func (h HolidaySet) Contains(d time.Time) bool {
	_, ok := h[DateKey(d)]
	return ok
}

func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay is false on weekends and holidays
func IsBusinessDay(d time.Time, holidays HolidaySet) bool {
	if IsWeekend(d) {
		return false
	}
	return !holidays.Contains(d)
}

// BusinessDaysBetween counts business days in [from, to], both inclusive
func BusinessDaysBetween(from, to time.Time, holidays HolidaySet) int {
	from, to = TruncateDay(from), TruncateDay(to)
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d, holidays) {
			n++
		}
	}
	return n
}
