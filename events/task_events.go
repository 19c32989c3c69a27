package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is added to an identity's
// collection.
type TaskCreatedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskUpdatedEvent is emitted when a task's editable fields change.
type TaskUpdatedEvent struct {
	TaskID    string    `json:"task_id"`
	Username  string    `json:"username"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskUpdatedV1 is the typed event definition for task edits.
// Subject: events.task.v1.task-updated
var TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
	"task", "TaskUpdated", "v1",
)

// TaskCompletedEvent is emitted when a task is toggled to done.
type TaskCompletedEvent struct {
	TaskID      string    `json:"task_id"`
	Username    string    `json:"username"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.task.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"task", "TaskCompleted", "v1",
)

// TaskReopenedEvent is emitted when a completed task is toggled back open.
type TaskReopenedEvent struct {
	TaskID     string    `json:"task_id"`
	Username   string    `json:"username"`
	ReopenedAt time.Time `json:"reopened_at"`
}

// TaskReopenedV1 is the typed event definition for un-completing a task.
// Subject: events.task.v1.task-reopened
var TaskReopenedV1 = helper.EventDefinition[TaskReopenedEvent](
	"task", "TaskReopened", "v1",
)

// TaskDeletedEvent is emitted when a task is removed.
type TaskDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	Username  string    `json:"username"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)
