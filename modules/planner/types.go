package planner

import (
	"context"
	"time"

	domain "github.com/yusup-a/task-planner/domain/task"
)

// TaskItem is one task as it appears in a day bucket, annotated with its
// derived urgency state and display label.
type TaskItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime"`
	TimeLabel   string        `json:"timeLabel"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt"`
	Status      domain.Status `json:"status"`
}

// DayView is one bucket of the active week.
type DayView struct {
	Date      string     `json:"date"`
	Weekday   string     `json:"weekday"`
	MonthDay  string     `json:"monthDay"`
	Tasks     []TaskItem `json:"tasks"`
	Open      int        `json:"open"`
	Completed int        `json:"completed"`
	Total     int        `json:"total"`
}

// WeekTotals aggregates the whole week for the chart's summary cards.
type WeekTotals struct {
	Open      int `json:"open"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// WeekViewRequest asks for an identity's week, offset in whole weeks from
// the week containing today.
type WeekViewRequest struct {
	Username string `json:"username"`
	Offset   int    `json:"offset"`
}

// WeekViewResponse is the fully bucketed, sorted and classified week.
type WeekViewResponse struct {
	WeekStart string     `json:"weekStart"`
	Label     string     `json:"label"`
	Offset    int        `json:"offset"`
	Days      []DayView  `json:"days"`
	Totals    WeekTotals `json:"totals"`
}

// MonthCell is one day of the 6-week picker grid.
type MonthCell struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"`
	Today   bool   `json:"today"`
}

// MonthGridRequest asks for a picker grid for the viewed year/month.
type MonthGridRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthGridResponse is the 42-cell picker grid.
type MonthGridResponse struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Cells []MonthCell `json:"cells"`
}

// PlannerPort defines the interface other modules use for planner views.
type PlannerPort interface {
	WeekView(ctx context.Context, username string, offset int) (*WeekViewResponse, error)
	MonthGrid(ctx context.Context, year, month int) (*MonthGridResponse, error)
}
