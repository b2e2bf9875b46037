// internal/service/availability/availability.go
package availability

import (
	"sort"
	"time"

	"decora-admin/internal/domain/blackout"
	"decora-admin/internal/domain/booking"
	"decora-admin/internal/pkg/timeutil"
)

// DayCount holds the per-day indicators painted on calendar cells.
type DayCount struct {
	Visits int `json:"visits"`
	Blocks int `json:"blocks"`
}

// DayView is the day-detail panel: the day's visits and every blackout
// window touching the day, both sorted by start ascending.
type DayView struct {
	Visits []booking.Visit   `json:"visits"`
	Blocks []blackout.Window `json:"blocks"`
}

// MonthStats buckets visits and blackout windows by the local ISO date
// of their start instant, for every start falling inside the month.
// Calendar cells read from this map instead of re-scanning the data.
func MonthStats(visits []booking.Visit, blackouts []blackout.Window, year int, month time.Month) map[string]DayCount {
	monthStart, monthEnd := timeutil.MonthBounds(year, month)
	stats := make(map[string]DayCount)

	for _, v := range visits {
		if timeutil.RangesOverlap(v.StartTime, v.StartTime, monthStart, monthEnd) {
			key := timeutil.FormatDate(v.StartTime)
			dc := stats[key]
			dc.Visits++
			stats[key] = dc
		}
	}
	for _, w := range blackouts {
		if timeutil.RangesOverlap(w.StartTime, w.StartTime, monthStart, monthEnd) {
			key := timeutil.FormatDate(w.StartTime)
			dc := stats[key]
			dc.Blocks++
			stats[key] = dc
		}
	}
	return stats
}

// DayDetail selects the visits starting on the given local day and the
// blackout windows overlapping any part of it. A multi-day blackout
// therefore appears on every day it touches, not only its start day.
func DayDetail(visits []booking.Visit, blackouts []blackout.Window, date time.Time) DayView {
	dayStart, dayEnd := timeutil.DayBounds(date)
	view := DayView{Visits: []booking.Visit{}, Blocks: []blackout.Window{}}

	for _, v := range visits {
		if timeutil.RangesOverlap(v.StartTime, v.StartTime, dayStart, dayEnd) {
			view.Visits = append(view.Visits, v)
		}
	}
	for _, w := range blackouts {
		if timeutil.RangesOverlap(w.StartTime, w.EndTime, dayStart, dayEnd) {
			view.Blocks = append(view.Blocks, w)
		}
	}

	sort.Slice(view.Visits, func(i, j int) bool {
		return view.Visits[i].StartTime.Before(view.Visits[j].StartTime)
	})
	sort.Slice(view.Blocks, func(i, j int) bool {
		return view.Blocks[i].StartTime.Before(view.Blocks[j].StartTime)
	})
	return view
}

// WouldConflict reports whether any existing window overlaps the
// proposed range. The result is advisory: operators may intentionally
// book over a soft blackout such as "reduced hours", so creation is
// never blocked on it.
func WouldConflict(proposedStart, proposedEnd time.Time, existing []blackout.Window) bool {
	for _, w := range existing {
		if timeutil.RangesOverlap(w.StartTime, w.EndTime, proposedStart, proposedEnd) {
			return true
		}
	}
	return false
}
