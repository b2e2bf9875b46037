package timeutil

import (
	"errors"
	"testing"
	"time"

	xerrors "decora-admin/internal/pkg/errors"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error: %v", s, err)
	}
	return d
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "2024-13-01", "2024-06-32", "not-a-date", "01/07/2024"} {
		if _, err := ParseDate(s); !errors.Is(err, xerrors.ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 6, 10, 13, 45, 12, 0, time.Local)
	start, end := DayBounds(at)

	if want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if !end.After(start) {
		t.Errorf("end %v not after start %v", end, start)
	}
	if end.Day() != 10 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end = %v, want last instant of the same day", end)
	}
}

func TestRangesOverlap(t *testing.T) {
	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.Local)
	h := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	tests := []struct {
		name                         string
		aStart, aEnd, bStart, bEnd   time.Time
		want                         bool
	}{
		{"disjoint", h(0), h(2), h(3), h(5), false},
		{"disjoint reversed", h(3), h(5), h(0), h(2), false},
		{"touching at endpoint", h(0), h(2), h(2), h(4), true},
		{"nested", h(0), h(10), h(2), h(4), true},
		{"nested reversed", h(2), h(4), h(0), h(10), true},
		{"identical", h(1), h(3), h(1), h(3), true},
		{"partial overlap", h(0), h(3), h(2), h(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("RangesOverlap = %v, want %v", got, tt.want)
			}
			// Symmetric by definition.
			if got := RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("RangesOverlap (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthGridShape(t *testing.T) {
	for _, tt := range []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.June, 30},
		{2024, time.July, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
	} {
		grid := MonthGrid(tt.year, tt.month)

		cells := 0
		for _, row := range grid {
			if len(row) != 7 {
				t.Fatalf("%d-%s: row has %d cells, want 7", tt.year, tt.month, len(row))
			}
			cells += 7
		}
		if cells < tt.days {
			t.Errorf("%d-%s: grid has %d cells for %d days", tt.year, tt.month, cells, tt.days)
		}

		// Non-nil cells are unique, chronologically increasing, and padding
		// only appears in the first and last rows.
		var prev *time.Time
		seen := 0
		for ri, row := range grid {
			for _, cell := range row {
				if cell == nil {
					if ri != 0 && ri != len(grid)-1 {
						t.Errorf("%d-%s: nil padding in middle row %d", tt.year, tt.month, ri)
					}
					continue
				}
				seen++
				if prev != nil && !cell.After(*prev) {
					t.Errorf("%d-%s: dates not increasing: %v after %v", tt.year, tt.month, cell, prev)
				}
				prev = cell
			}
		}
		if seen != tt.days {
			t.Errorf("%d-%s: %d non-nil cells, want %d", tt.year, tt.month, seen, tt.days)
		}
	}
}

func TestMonthGridStartsMonday(t *testing.T) {
	// July 2024 starts on a Monday: no leading padding.
	grid := MonthGrid(2024, time.July)
	if grid[0][0] == nil {
		t.Fatal("July 2024 should have no leading padding")
	}
	if grid[0][0].Weekday() != time.Monday {
		t.Errorf("first cell weekday = %v, want Monday", grid[0][0].Weekday())
	}

	// June 2024 starts on a Saturday: five leading nils.
	grid = MonthGrid(2024, time.June)
	for i := 0; i < 5; i++ {
		if grid[0][i] != nil {
			t.Errorf("June 2024 cell %d = %v, want nil", i, grid[0][i])
		}
	}
	if grid[0][5] == nil || grid[0][5].Day() != 1 {
		t.Errorf("June 2024 day 1 should sit in the Saturday column")
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, time.July)
	if start.Day() != 1 || start.Month() != time.July {
		t.Errorf("start = %v", start)
	}
	if end.Month() != time.July || end.Day() != 31 {
		t.Errorf("end = %v, want last instant of July", end)
	}
	if got := mustDate(t, "2024-07-15"); !RangesOverlap(got, got, start, end) {
		t.Errorf("mid-month date should fall inside month bounds")
	}
}
