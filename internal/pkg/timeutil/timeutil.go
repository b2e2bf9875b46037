// Package timeutil holds the pure calendar helpers shared by the
// availability engine and the admin calendar views. Everything here is
// total and side-effect free; the only failure mode is a malformed date
// string, which surfaces as xerrors.ErrInvalidDate.
package timeutil

import (
	"fmt"
	"time"

	xerrors "decora-admin/internal/pkg/errors"
)

// ISODate is the wire format for calendar dates.
const ISODate = "2006-01-02"

// ParseDate parses an ISO date ("2024-07-01") in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", xerrors.ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as a local ISO date.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(ISODate)
}

// DayBounds returns the inclusive local-day boundaries of the day
// containing t: [00:00:00, 23:59:59.999999999].
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(time.Local)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// MonthBounds returns the inclusive local boundaries of the month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// RangesOverlap reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] overlap. Two ranges overlap iff neither ends before the
// other begins; touching at an endpoint counts as overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// MonthGrid lays the days of a month out on a 7-column grid, weeks
// starting on Monday. Cells before day 1 and after the last day are nil
// so every row has exactly 7 entries.
func MonthGrid(year int, month time.Month) [][]*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first offset: Monday=0 ... Sunday=6.
	lead := (int(first.Weekday()) + 6) % 7

	cells := make([]*time.Time, 0, lead+daysInMonth)
	for i := 0; i < lead; i++ {
		cells = append(cells, nil)
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		cells = append(cells, &day)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	grid := make([][]*time.Time, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		grid = append(grid, cells[i:i+7])
	}
	return grid
}
