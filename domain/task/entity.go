package task

import "time"

// Status is the derived urgency state of a task relative to the current
// instant. It is never persisted; views compute it on demand.
type Status string

const (
	// StatusCompleted overrides every time-based state.
	StatusCompleted Status = "completed"
	// StatusOverdue means the due instant has passed.
	StatusOverdue Status = "overdue"
	// StatusDueSoon means the task is inside its active window, or within
	// one hour of a lone due time.
	StatusDueSoon Status = "due_soon"
	// StatusUnscheduled covers tasks with no time set, tasks not yet
	// relevant, and tasks whose date/time fields fail to parse.
	StatusUnscheduled Status = "unscheduled"
)

// Task is the core domain entity: one planner item owned by an identity.
//
// Date is a local-calendar key in YYYY-MM-DD form and decides which day
// bucket the task belongs to. StartTime and EndTime are each either empty
// or a canonical 24-hour HH:MM string; both are optional and independent.
// End-before-start pairs are accepted as-is and simply classify as overdue
// once the end instant passes.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Completed reports whether the task has been marked done.
func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
