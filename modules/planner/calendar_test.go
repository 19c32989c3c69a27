package planner

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday", time.Date(2024, 1, 3, 15, 30, 0, 0, time.Local), "2023-12-31"},
		{"sunday is its own start", time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local), "2024-01-07"},
		{"saturday", time.Date(2024, 1, 6, 23, 59, 59, 0, time.Local), "2023-12-31"},
		{"month boundary", time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), "2024-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if got.Weekday() != time.Sunday {
				t.Errorf("StartOfWeek(%v).Weekday() = %v, want Sunday", tt.in, got.Weekday())
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("StartOfWeek(%v) is not midnight: %v", tt.in, got)
			}
			if key := DateKey(got); key != tt.want {
				t.Errorf("StartOfWeek(%v) = %s, want %s", tt.in, key, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local), "2024-03-07"},
		{time.Date(2024, 12, 25, 23, 0, 0, 0, time.Local), "2024-12-25"},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), "2024-01-01"},
	}

	for _, tt := range tests {
		if got := DateKey(tt.in); got != tt.want {
			t.Errorf("DateKey(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddDaysRollover(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want string
	}{
		{"month rollover", time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local), 1, "2024-02-01"},
		{"year rollover", time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local), 1, "2024-01-01"},
		{"leap day", time.Date(2024, 2, 28, 0, 0, 0, 0, time.Local), 1, "2024-02-29"},
		{"backwards", time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), -1, "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(AddDays(tt.in, tt.n)); got != tt.want {
				t.Errorf("AddDays(%v, %d) = %s, want %s", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	weekStart := time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local)
	days := WeekDays(weekStart)

	if len(days) != 7 {
		t.Fatalf("WeekDays returned %d days, want 7", len(days))
	}
	for i, d := range days {
		want := AddDays(weekStart, i)
		if !d.Equal(want) {
			t.Errorf("days[%d] = %v, want %v", i, d, want)
		}
	}
	if days[0].Weekday() != time.Sunday || days[6].Weekday() != time.Saturday {
		t.Errorf("week runs %v..%v, want Sunday..Saturday", days[0].Weekday(), days[6].Weekday())
	}
}

func TestMonthGrid(t *testing.T) {
	// February 2024 starts on a Thursday; the grid walks back to the
	// preceding Sunday.
	cells := MonthGrid(2024, time.February, time.Local)

	if len(cells) != 42 {
		t.Fatalf("MonthGrid returned %d cells, want 42", len(cells))
	}
	if cells[0].Weekday() != time.Sunday {
		t.Errorf("first cell weekday = %v, want Sunday", cells[0].Weekday())
	}
	if got := DateKey(cells[0]); got != "2024-01-28" {
		t.Errorf("first cell = %s, want 2024-01-28", got)
	}
	if got := DateKey(cells[4]); got != "2024-02-01" {
		t.Errorf("cells[4] = %s, want 2024-02-01", got)
	}
	if got := DateKey(cells[41]); got != "2024-03-09" {
		t.Errorf("last cell = %s, want 2024-03-09", got)
	}
}

func TestMonthGridFirstOnSunday(t *testing.T) {
	// September 2024 starts on a Sunday; no walk-back happens.
	cells := MonthGrid(2024, time.September, time.Local)

	if got := DateKey(cells[0]); got != "2024-09-01" {
		t.Errorf("first cell = %s, want 2024-09-01", got)
	}
}
