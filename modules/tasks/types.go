package tasks

import (
	"context"
	"time"
)

// TaskResponse is the wire representation of a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// AddTaskRequest is the request for creating a task.
type AddTaskRequest struct {
	Username  string `json:"username"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// ToggleTaskRequest is the request for flipping a task's completion state.
type ToggleTaskRequest struct {
	Username string `json:"username"`
	TaskID   string `json:"task_id"`
}

// RemoveTaskRequest is the request for deleting a task.
type RemoveTaskRequest struct {
	Username string `json:"username"`
	TaskID   string `json:"task_id"`
}

// RemoveTaskResponse is the response for deleting a task.
type RemoveTaskResponse struct {
	Removed bool `json:"removed"`
}

// UpdateTaskRequest is the request for a partial edit. Nil fields are
// left untouched; id, createdAt and completedAt are never editable.
type UpdateTaskRequest struct {
	Username  string  `json:"username"`
	TaskID    string  `json:"task_id"`
	Title     *string `json:"title,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ListTasksRequest is the request for an identity's full collection.
type ListTasksRequest struct {
	Username string `json:"username"`
}

// ListTasksResponse is the response for listing tasks, in collection
// iteration order (newest first).
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// StoreStatsRequest is the request for store counters.
type StoreStatsRequest struct{}

// StoreStatsResponse reports the store's degradation counters: sessions
// keep working through these, but they are observable here.
type StoreStatsResponse struct {
	SaveFailures    uint64 `json:"save_failures"`
	CorruptPayloads uint64 `json:"corrupt_payloads"`
	LoadedUsers     int    `json:"loaded_users"`
}

// TaskPort defines the interface other modules use to reach the task store.
type TaskPort interface {
	AddTask(ctx context.Context, req *AddTaskRequest) (*TaskResponse, error)
	ToggleTask(ctx context.Context, username, taskID string) (*TaskResponse, error)
	RemoveTask(ctx context.Context, username, taskID string) error
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	ListTasks(ctx context.Context, username string) (*ListTasksResponse, error)
}
