package planner

import (
	"fmt"
	"sort"
	"time"

	domain "github.com/yusup-a/task-planner/domain/task"
)

// BuildWeekView buckets a collection into the 7 days of the week starting
// at weekStart, sorts each bucket, classifies every task against now, and
// aggregates the open/completed counts the chart consumes. Tasks dated
// outside the week are excluded from the view, not deleted.
func BuildWeekView(collection []*domain.Task, weekStart time.Time, now time.Time) WeekViewResponse {
	days := WeekDays(weekStart)

	buckets := make(map[string][]*domain.Task, len(days))
	for _, d := range days {
		buckets[DateKey(d)] = nil
	}
	for _, t := range collection {
		if _, ok := buckets[t.Date]; ok {
			buckets[t.Date] = append(buckets[t.Date], t)
		}
	}

	view := WeekViewResponse{
		WeekStart: DateKey(weekStart),
		Label:     fmt.Sprintf("%s – %s", FormatMonthDay(days[0]), FormatMonthDay(days[6])),
		Days:      make([]DayView, 0, len(days)),
	}

	for _, d := range days {
		key := DateKey(d)
		bucket := buckets[key]
		sortBucket(bucket)

		day := DayView{
			Date:     key,
			Weekday:  FormatWeekday(d),
			MonthDay: FormatMonthDay(d),
			Tasks:    make([]TaskItem, 0, len(bucket)),
			Total:    len(bucket),
		}
		for _, t := range bucket {
			if t.Completed() {
				day.Completed++
			}
			day.Tasks = append(day.Tasks, toTaskItem(t, now))
		}
		day.Open = day.Total - day.Completed

		view.Totals.Open += day.Open
		view.Totals.Completed += day.Completed
		view.Totals.Total += day.Total
		view.Days = append(view.Days, day)
	}

	return view
}

// sortBucket orders one day's tasks: incomplete before completed, then
// ascending by effective due minutes, then ascending by creation time.
func sortBucket(bucket []*domain.Task) {
	sort.SliceStable(bucket, func(i, j int) bool {
		a, b := bucket[i], bucket[j]
		if a.Completed() != b.Completed() {
			return !a.Completed()
		}
		am, bm := effectiveMinutes(a), effectiveMinutes(b)
		if am != bm {
			return am < bm
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// effectiveMinutes is the sort position of a task within its group: the
// start time, falling back to the end time when no start is set. Unset
// times sort first as minute 0.
func effectiveMinutes(t *domain.Task) int {
	if t.StartTime != "" {
		return ParseTimeToMin(t.StartTime)
	}
	return ParseTimeToMin(t.EndTime)
}

// toTaskItem annotates a task with its derived status and display label.
func toTaskItem(t *domain.Task, now time.Time) TaskItem {
	return TaskItem{
		ID:          t.ID,
		Title:       t.Title,
		Date:        t.Date,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		TimeLabel:   timeLabel(t),
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		Status:      Classify(t, now),
	}
}

// timeLabel renders the task's time fields for display.
func timeLabel(t *domain.Task) string {
	start := FormatTime12(t.StartTime)
	end := FormatTime12(t.EndTime)
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	case end != "":
		return "until " + end
	default:
		return ""
	}
}

// BuildMonthGrid enumerates the picker grid for the viewed year/month.
func BuildMonthGrid(year int, month time.Month, now time.Time) MonthGridResponse {
	todayKey := DateKey(now)

	resp := MonthGridResponse{
		Year:  year,
		Month: int(month),
		Cells: make([]MonthCell, 0, monthGridCells),
	}
	for _, d := range MonthGrid(year, month, now.Location()) {
		key := DateKey(d)
		resp.Cells = append(resp.Cells, MonthCell{
			Date:    key,
			Day:     d.Day(),
			InMonth: d.Month() == month,
			Today:   key == todayKey,
		})
	}
	return resp
}
