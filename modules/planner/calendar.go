package planner

import (
	"fmt"
	"time"
)

// monthGridCells is always 6 full weeks so the picker shows complete rows
// including muted leading and trailing days from adjacent months.
const monthGridCells = 42

// ToMidnight returns the local midnight of the day containing t.
func ToMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the local midnight of the Sunday beginning the week
// that contains t. Weeks always begin on Sunday.
func StartOfWeek(t time.Time) time.Time {
	x := ToMidnight(t)
	return x.AddDate(0, 0, -int(x.Weekday()))
}

// AddDays offsets t by n calendar days, rolling over months and years.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WeekDays returns the 7 consecutive days starting at weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(weekStart, i)
	}
	return days
}

// DateKey derives the stable calendar-date key for t from its local
// calendar components. Task dates and bucket keys must both use this
// form or lookups silently miss.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// MonthGrid enumerates the 42 consecutive days shown for the given
// year/month: the first of the month walked back to the preceding Sunday,
// then 6 full weeks forward.
func MonthGrid(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := AddDays(first, -int(first.Weekday()))

	cells := make([]time.Time, monthGridCells)
	for i := range cells {
		cells[i] = AddDays(start, i)
	}
	return cells
}

// FormatWeekday renders the short weekday label for column headers.
func FormatWeekday(t time.Time) string {
	return t.Format("Mon")
}

// FormatMonthDay renders the short month-day label for column headers.
func FormatMonthDay(t time.Time) string {
	return t.Format("Jan 2")
}
