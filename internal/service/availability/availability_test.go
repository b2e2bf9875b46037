package availability

import (
	"testing"
	"time"

	"decora-admin/internal/domain/blackout"
	"decora-admin/internal/domain/booking"
)

func visitAt(id string, start time.Time) booking.Visit {
	return booking.Visit{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		FullName:  "Cliente",
		Phone:     "600000000",
	}
}

func windowAt(id string, start, end time.Time) blackout.Window {
	return blackout.Window{ID: id, StartTime: start, EndTime: end, Reason: "vacaciones"}
}

func TestMonthStatsBucketsByStartDay(t *testing.T) {
	visit := visitAt("v1", time.Date(2024, 7, 1, 12, 0, 0, 0, time.Local))
	window := windowAt("b1",
		time.Date(2024, 7, 1, 9, 0, 0, 0, time.Local),
		time.Date(2024, 7, 1, 20, 0, 0, 0, time.Local),
	)
	outside := visitAt("v2", time.Date(2024, 8, 2, 12, 0, 0, 0, time.Local))

	stats := MonthStats([]booking.Visit{visit, outside}, []blackout.Window{window}, 2024, time.July)

	dc, ok := stats["2024-07-01"]
	if !ok {
		t.Fatalf("missing bucket for 2024-07-01, got %v", stats)
	}
	if dc.Visits != 1 || dc.Blocks != 1 {
		t.Errorf("2024-07-01 = %+v, want {Visits:1 Blocks:1}", dc)
	}
	if _, ok := stats["2024-08-02"]; ok {
		t.Errorf("August visit leaked into July stats")
	}
	if len(stats) != 1 {
		t.Errorf("got %d buckets, want 1", len(stats))
	}
}

func TestDayDetailMultiDayBlackout(t *testing.T) {
	// A blackout spanning [day 09:00, day+2 09:00] must appear on each
	// of the three days it touches.
	start := time.Date(2024, 7, 10, 9, 0, 0, 0, time.Local)
	window := windowAt("b1", start, start.AddDate(0, 0, 2))

	for d := 0; d < 3; d++ {
		date := start.AddDate(0, 0, d)
		view := DayDetail(nil, []blackout.Window{window}, date)
		if len(view.Blocks) != 1 {
			t.Errorf("day %s: %d blocks, want 1", date.Format("2006-01-02"), len(view.Blocks))
		}
	}

	// The day after it ends it is gone.
	after := start.AddDate(0, 0, 3)
	if view := DayDetail(nil, []blackout.Window{window}, after); len(view.Blocks) != 0 {
		t.Errorf("blackout leaked past its end: %v", view.Blocks)
	}
}

func TestDayDetailVisitsOnStartDayOnly(t *testing.T) {
	day := time.Date(2024, 7, 10, 0, 0, 0, 0, time.Local)
	v := visitAt("v1", day.Add(10*time.Hour))

	if view := DayDetail([]booking.Visit{v}, nil, day); len(view.Visits) != 1 {
		t.Errorf("visit missing from its start day")
	}
	if view := DayDetail([]booking.Visit{v}, nil, day.AddDate(0, 0, 1)); len(view.Visits) != 0 {
		t.Errorf("visit appeared on a day it does not start")
	}
}

func TestDayDetailSortedByStart(t *testing.T) {
	day := time.Date(2024, 7, 10, 0, 0, 0, 0, time.Local)
	visits := []booking.Visit{
		visitAt("late", day.Add(16*time.Hour)),
		visitAt("early", day.Add(9*time.Hour)),
		visitAt("mid", day.Add(12*time.Hour)),
	}

	view := DayDetail(visits, nil, day)
	if len(view.Visits) != 3 {
		t.Fatalf("got %d visits, want 3", len(view.Visits))
	}
	for i := 1; i < len(view.Visits); i++ {
		if view.Visits[i].StartTime.Before(view.Visits[i-1].StartTime) {
			t.Errorf("visits not sorted ascending: %v", view.Visits)
		}
	}
}

func TestWouldConflict(t *testing.T) {
	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.Local)
	existing := []blackout.Window{
		windowAt("b1", base, base.Add(4*time.Hour)), // 09:00-13:00
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", base.Add(time.Hour), base.Add(2 * time.Hour), true},
		{"touching end", base.Add(4 * time.Hour), base.Add(6 * time.Hour), true},
		{"after", base.Add(5 * time.Hour), base.Add(6 * time.Hour), false},
		{"before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"covering", base.Add(-time.Hour), base.Add(8 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WouldConflict(tt.start, tt.end, existing); got != tt.want {
				t.Errorf("WouldConflict = %v, want %v", got, tt.want)
			}
		})
	}

	if WouldConflict(base, base.Add(time.Hour), nil) {
		t.Errorf("empty blackout set should never conflict")
	}
}

func TestQuickFillPresets(t *testing.T) {
	date := time.Date(2024, 7, 10, 15, 30, 0, 0, time.Local)

	start, end := blackout.FullDay(date)
	if start.Hour() != 0 || start.Day() != 10 || end.Day() != 10 {
		t.Errorf("FullDay = [%v, %v]", start, end)
	}
	if !end.After(start) {
		t.Errorf("FullDay end not after start")
	}

	start, end = blackout.Morning(date)
	if start.Hour() != 9 || end.Hour() != 14 {
		t.Errorf("Morning = [%v, %v], want 09:00-14:00", start, end)
	}

	start, end = blackout.Afternoon(date)
	if start.Hour() != 15 || end.Hour() != 20 {
		t.Errorf("Afternoon = [%v, %v], want 15:00-20:00", start, end)
	}
}
