package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the tasks module received via
// SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// AddTask creates a new task via the add-task service.
func (a *taskAdapter) AddTask(ctx context.Context, req *AddTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "add-task", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("add-task service call failed: %w", err)
	}
	return &resp, nil
}

// ToggleTask flips a task's completion state via the toggle-task service.
func (a *taskAdapter) ToggleTask(ctx context.Context, username, taskID string) (*TaskResponse, error) {
	req := ToggleTaskRequest{Username: username, TaskID: taskID}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "toggle-task", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("toggle-task service call failed: %w", err)
	}
	return &resp, nil
}

// RemoveTask deletes a task via the remove-task service.
func (a *taskAdapter) RemoveTask(ctx context.Context, username, taskID string) error {
	req := RemoveTaskRequest{Username: username, TaskID: taskID}
	var resp RemoveTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "remove-task", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("remove-task service call failed: %w", err)
	}
	if !resp.Removed {
		return fmt.Errorf("task not removed: %s", taskID)
	}
	return nil
}

// UpdateTask merges partial field changes via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-task", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("update-task service call failed: %w", err)
	}
	return &resp, nil
}

// ListTasks lists an identity's collection via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, username string) (*ListTasksResponse, error) {
	req := ListTasksRequest{Username: username}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-tasks", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	return &resp, nil
}
