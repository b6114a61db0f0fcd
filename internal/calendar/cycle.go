// Package calendar holds the date arithmetic behind the maintenance
// calendar: inspection cycle expansion, support-hour accounting, holiday
// overlays and staffing effort.
package calendar

import (
	"fmt"
	"strings"
)

// Cycle is an inspection recurrence interval
type Cycle string

const (
	CycleMonth     Cycle = "month"
	CycleQuarter   Cycle = "quarter"
	CycleHalfYear  Cycle = "half_year"
	CycleYear      Cycle = "year"
	CycleOnFailure Cycle = "on_failure"
)

var cycleAliases = map[string]Cycle{
	"month":      CycleMonth,
	"monthly":    CycleMonth,
	"월":          CycleMonth,
	"quarter":    CycleQuarter,
	"quarterly":  CycleQuarter,
	"분기":         CycleQuarter,
	"half_year":  CycleHalfYear,
	"half-year":  CycleHalfYear,
	"반기":         CycleHalfYear,
	"year":       CycleYear,
	"yearly":     CycleYear,
	"annual":     CycleYear,
	"년":          CycleYear,
	"on_failure": CycleOnFailure,
	"on-failure": CycleOnFailure,
	"장애시":        CycleOnFailure,
}

// ParseCycle normalizes a stored or user-entered cycle name
func ParseCycle(s string) (Cycle, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := cycleAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown inspection cycle %q", s)
}

// Months returns the step of the cycle in months. On-failure assets have no
// schedule and report 0.
func (c Cycle) Months() int {
	switch c {
	case CycleMonth:
		return 1
	case CycleQuarter:
		return 3
	case CycleHalfYear:
		return 6
	case CycleYear:
		return 12
	}
	return 0
}
