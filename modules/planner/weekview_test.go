package planner

import (
	"testing"
	"time"

	domain "github.com/yusup-a/task-planner/domain/task"
)

func TestBuildWeekViewSortsBuckets(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)
	weekStart := StartOfWeek(now)
	doneAt := now.Add(-time.Hour)

	// Newest-first collection order: the view must re-sort, not preserve it.
	collection := []*domain.Task{
		{ID: "late", Title: "late open", Date: "2024-01-03", StartTime: "10:00", CreatedAt: now.Add(-1 * time.Minute)},
		{ID: "done", Title: "done", Date: "2024-01-03", StartTime: "09:00", CreatedAt: now.Add(-2 * time.Minute), CompletedAt: &doneAt},
		{ID: "early", Title: "early open", Date: "2024-01-03", StartTime: "08:00", CreatedAt: now.Add(-3 * time.Minute)},
	}

	view := BuildWeekView(collection, weekStart, now)

	if len(view.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(view.Days))
	}

	wednesday := view.Days[3]
	if wednesday.Date != "2024-01-03" {
		t.Fatalf("days[3].Date = %s, want 2024-01-03", wednesday.Date)
	}
	if len(wednesday.Tasks) != 3 {
		t.Fatalf("got %d tasks in bucket, want 3", len(wednesday.Tasks))
	}

	gotOrder := []string{wednesday.Tasks[0].ID, wednesday.Tasks[1].ID, wednesday.Tasks[2].ID}
	wantOrder := []string{"early", "late", "done"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("bucket order = %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestBuildWeekViewTieBreaksByCreation(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)
	weekStart := StartOfWeek(now)

	collection := []*domain.Task{
		{ID: "second", Date: "2024-01-03", StartTime: "09:00", CreatedAt: now.Add(-1 * time.Minute)},
		{ID: "first", Date: "2024-01-03", StartTime: "09:00", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "untimed", Date: "2024-01-03", CreatedAt: now.Add(-3 * time.Minute)},
	}

	view := BuildWeekView(collection, weekStart, now)
	bucket := view.Days[3].Tasks

	// Unset times sort as minute 0, ahead of timed tasks.
	wantOrder := []string{"untimed", "first", "second"}
	for i := range wantOrder {
		if bucket[i].ID != wantOrder[i] {
			t.Fatalf("bucket order = [%s %s %s], want %v", bucket[0].ID, bucket[1].ID, bucket[2].ID, wantOrder)
		}
	}
}

func TestBuildWeekViewExcludesOutOfWeek(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)
	weekStart := StartOfWeek(now)

	collection := []*domain.Task{
		{ID: "in", Date: "2024-01-02", CreatedAt: now},
		{ID: "next month", Date: "2024-02-01", CreatedAt: now},
		{ID: "last week", Date: "2023-12-30", CreatedAt: now},
	}

	view := BuildWeekView(collection, weekStart, now)

	if view.Totals.Total != 1 {
		t.Errorf("Totals.Total = %d, want 1", view.Totals.Total)
	}
	for _, day := range view.Days {
		for _, task := range day.Tasks {
			if task.ID != "in" {
				t.Errorf("out-of-week task %s leaked into %s", task.ID, day.Date)
			}
		}
	}
}

func TestBuildWeekViewAggregates(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)
	weekStart := StartOfWeek(now)
	doneAt := now

	collection := []*domain.Task{
		{ID: "a", Date: "2024-01-01", CreatedAt: now},
		{ID: "b", Date: "2024-01-01", CreatedAt: now, CompletedAt: &doneAt},
		{ID: "c", Date: "2024-01-05", CreatedAt: now},
	}

	view := BuildWeekView(collection, weekStart, now)

	monday := view.Days[1]
	if monday.Open != 1 || monday.Completed != 1 || monday.Total != 2 {
		t.Errorf("monday counts = %d/%d/%d, want 1/1/2", monday.Open, monday.Completed, monday.Total)
	}
	if view.Totals.Open != 2 || view.Totals.Completed != 1 || view.Totals.Total != 3 {
		t.Errorf("week totals = %d/%d/%d, want 2/1/3",
			view.Totals.Open, view.Totals.Completed, view.Totals.Total)
	}
	if view.WeekStart != "2023-12-31" {
		t.Errorf("WeekStart = %s, want 2023-12-31", view.WeekStart)
	}
}

func TestTimeLabel(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{"both times", domain.Task{StartTime: "09:00", EndTime: "13:30"}, "9:00 AM – 1:30 PM"},
		{"start only", domain.Task{StartTime: "09:00"}, "9:00 AM"},
		{"end only", domain.Task{EndTime: "13:30"}, "until 1:30 PM"},
		{"no times", domain.Task{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeLabel(&tt.task); got != tt.want {
				t.Errorf("timeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildMonthGrid(t *testing.T) {
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.Local)
	grid := BuildMonthGrid(2024, time.February, now)

	if len(grid.Cells) != 42 {
		t.Fatalf("got %d cells, want 42", len(grid.Cells))
	}
	if grid.Year != 2024 || grid.Month != 2 {
		t.Errorf("grid labeled %d-%d, want 2024-2", grid.Year, grid.Month)
	}

	var today, inMonth int
	for _, cell := range grid.Cells {
		if cell.Today {
			today++
			if cell.Date != "2024-02-10" {
				t.Errorf("today cell = %s, want 2024-02-10", cell.Date)
			}
		}
		if cell.InMonth {
			inMonth++
		}
	}
	if today != 1 {
		t.Errorf("today marked %d times, want once", today)
	}
	if inMonth != 29 {
		t.Errorf("in-month cells = %d, want 29", inMonth)
	}
}
