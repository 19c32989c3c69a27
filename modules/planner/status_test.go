package planner

import (
	"testing"
	"time"

	domain "github.com/yusup-a/task-planner/domain/task"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	completedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		task domain.Task
		want domain.Status
	}{
		{
			name: "completed wins over overdue",
			task: domain.Task{Date: "2024-01-01", StartTime: "11:00", CompletedAt: &completedAt},
			want: domain.StatusCompleted,
		},
		{
			name: "no times is unscheduled",
			task: domain.Task{Date: "2024-01-01"},
			want: domain.StatusUnscheduled,
		},
		{
			name: "start within the hour is due soon",
			task: domain.Task{Date: "2024-01-01", StartTime: "12:30"},
			want: domain.StatusDueSoon,
		},
		{
			name: "start beyond the hour is unscheduled",
			task: domain.Task{Date: "2024-01-01", StartTime: "13:30"},
			want: domain.StatusUnscheduled,
		},
		{
			name: "start exactly one hour out is due soon",
			task: domain.Task{Date: "2024-01-01", StartTime: "13:00"},
			want: domain.StatusDueSoon,
		},
		{
			name: "past start is overdue",
			task: domain.Task{Date: "2024-01-01", StartTime: "11:00"},
			want: domain.StatusOverdue,
		},
		{
			name: "at the due instant is overdue",
			task: domain.Task{Date: "2024-01-01", StartTime: "12:00"},
			want: domain.StatusOverdue,
		},
		{
			name: "end time alone is the due bound",
			task: domain.Task{Date: "2024-01-01", EndTime: "12:30"},
			want: domain.StatusDueSoon,
		},
		{
			name: "past a lone end time is overdue",
			task: domain.Task{Date: "2024-01-01", EndTime: "11:00"},
			want: domain.StatusOverdue,
		},
		{
			name: "inside the window is due soon",
			task: domain.Task{Date: "2024-01-01", StartTime: "11:00", EndTime: "13:00"},
			want: domain.StatusDueSoon,
		},
		{
			name: "at the window end is still due soon",
			task: domain.Task{Date: "2024-01-01", StartTime: "11:00", EndTime: "12:00"},
			want: domain.StatusDueSoon,
		},
		{
			name: "past the window is overdue",
			task: domain.Task{Date: "2024-01-01", StartTime: "09:00", EndTime: "11:00"},
			want: domain.StatusOverdue,
		},
		{
			name: "before the window is unscheduled",
			task: domain.Task{Date: "2024-01-01", StartTime: "13:00", EndTime: "14:00"},
			want: domain.StatusUnscheduled,
		},
		{
			name: "end before start reads as past end",
			task: domain.Task{Date: "2024-01-01", StartTime: "14:00", EndTime: "10:00"},
			want: domain.StatusOverdue,
		},
		{
			name: "end before start with neither bound reached",
			task: domain.Task{Date: "2024-01-01", StartTime: "14:00", EndTime: "12:30"},
			want: domain.StatusUnscheduled,
		},
		{
			name: "unparsable date is unscheduled",
			task: domain.Task{Date: "garbage", StartTime: "11:00"},
			want: domain.StatusUnscheduled,
		},
		{
			name: "unparsable window time is unscheduled",
			task: domain.Task{Date: "2024-01-01", StartTime: "10:xx", EndTime: "13:00"},
			want: domain.StatusUnscheduled,
		},
		{
			name: "other day is unscheduled until its window",
			task: domain.Task{Date: "2024-01-02", StartTime: "11:00", EndTime: "13:00"},
			want: domain.StatusUnscheduled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(&tt.task, now); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
