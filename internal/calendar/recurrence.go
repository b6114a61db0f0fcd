package calendar

import (
	"time"
)

const dateLayout = "2006-01-02"

// maxOccurrences bounds a single expansion
const maxOccurrences = 1200

// DateKey formats t as YYYY-MM-DD in its own location
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// TruncateDay drops the clock part of t
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// AddMonthsClamped moves t by n calendar months, clamping the day to the end
// of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// OccurrenceKey identifies one generated inspection
type OccurrenceKey struct {
	ContractID int64
	AssetID    int64
	Date       string
}

// KeyOf builds the dedup key for an inspection on day d
func KeyOf(contractID, assetID int64, d time.Time) OccurrenceKey {
	return OccurrenceKey{ContractID: contractID, AssetID: assetID, Date: DateKey(d)}
}

// Occurrence is one planned inspection date
type Occurrence struct {
	ContractID int64
	AssetID    int64
	Date       time.Time
	Cycle      Cycle
}

// ExpandInput describes one asset schedule to expand
type ExpandInput struct {
	ContractID int64
	AssetID    int64
	Cycle      Cycle
	Start      time.Time
	Horizon    time.Time
}

// Horizon picks the last day an expansion may reach. An end-dated contract
// stops at its end date and a requested horizon may only shorten that. An
// open-ended contract runs to the requested horizon, or a year after start.
func Horizon(start time.Time, end, requested *time.Time) time.Time {
	if end == nil {
		if requested != nil {
			return TruncateDay(*requested)
		}
		return AddMonthsClamped(TruncateDay(start), 12)
	}
	h := TruncateDay(*end)
	if requested != nil && TruncateDay(*requested).Before(h) {
		h = TruncateDay(*requested)
	}
	return h
}

// Expand walks start, start+1 cycle, start+2 cycles, ... up to and including
// the horizon. Every step is computed from start so month-end clamping does
// not drift. Dates whose key is already in seen are skipped; produced keys are
// added to seen so a shared set deduplicates across calls.
func Expand(in ExpandInput, seen map[OccurrenceKey]struct{}) []Occurrence {
	step := in.Cycle.Months()
	if step == 0 {
		return nil
	}
	start := TruncateDay(in.Start)
	horizon := TruncateDay(in.Horizon)
	if horizon.Before(start) {
		return nil
	}
	if seen == nil {
		seen = make(map[OccurrenceKey]struct{})
	}

	var out []Occurrence
	for k := 0; k < maxOccurrences; k++ {
		d := AddMonthsClamped(start, k*step)
		if d.After(horizon) {
			break
		}
		key := KeyOf(in.ContractID, in.AssetID, d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Occurrence{ContractID: in.ContractID, AssetID: in.AssetID, Date: d, Cycle: in.Cycle})
	}
	return out
}
