package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/yusup-a/task-planner/domain/task"
	"github.com/yusup-a/task-planner/events"
	"github.com/yusup-a/task-planner/modules/kv"
)

// TasksModule provides the task store as a mono module.
type TasksModule struct {
	store    kv.Store
	service  *Service
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.EventEmitterModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule. The key-value store is wired in
// after registration via SetStore.
func NewModule() *TasksModule {
	return &TasksModule{}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// SetStore wires the key-value store the module persists through.
func (m *TasksModule) SetStore(store kv.Store) {
	m.store = store
}

// SetEventBus receives the event bus from the framework.
func (m *TasksModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TasksModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskReopenedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// Start initializes the task service.
func (m *TasksModule) Start(_ context.Context) error {
	if m.store == nil {
		return fmt.Errorf("key-value store not set")
	}
	if m.eventBus == nil {
		log.Println("[tasks] Warning: eventBus not set, events will not be published")
	}

	service, err := NewService(m.store)
	if err != nil {
		return err
	}
	m.service = service

	log.Println("[tasks] Module started")
	return nil
}

// Stop shuts down the module.
func (m *TasksModule) Stop(_ context.Context) error {
	log.Println("[tasks] Module stopped")
	return nil
}

// Health reports the store's degradation counters. The module stays
// healthy through save failures; the counters make them observable.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}

	stats := m.service.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"save_failures":    stats.SaveFailures,
			"corrupt_payloads": stats.CorruptPayloads,
			"loaded_users":     stats.LoadedUsers,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "add-task", json.Unmarshal, json.Marshal, m.handleAdd,
	); err != nil {
		return fmt.Errorf("failed to register add-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle-task", json.Unmarshal, json.Marshal, m.handleToggle,
	); err != nil {
		return fmt.Errorf("failed to register toggle-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove-task", json.Unmarshal, json.Marshal, m.handleRemove,
	); err != nil {
		return fmt.Errorf("failed to register remove-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "store-stats", json.Unmarshal, json.Marshal, m.handleStats,
	); err != nil {
		return fmt.Errorf("failed to register store-stats service: %w", err)
	}

	log.Printf("[tasks] Registered services: add-task, toggle-task, remove-task, update-task, list-tasks, store-stats")
	return nil
}

// handleAdd handles the add-task service request.
func (m *TasksModule) handleAdd(ctx context.Context, req AddTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Add(ctx, req.Username, req.Title, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    task.ID,
			Title:     task.Title,
			Date:      task.Date,
			Username:  req.Username,
			CreatedAt: task.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			log.Printf("[tasks] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
		}
	}

	return toTaskResponse(task), nil
}

// handleToggle handles the toggle-task service request.
func (m *TasksModule) handleToggle(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Toggle(ctx, req.Username, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		if task.CompletedAt != nil {
			event := events.TaskCompletedEvent{
				TaskID:      task.ID,
				Username:    req.Username,
				CompletedAt: *task.CompletedAt,
			}
			if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
				log.Printf("[tasks] Warning: failed to publish TaskCompleted event for task %s: %v", task.ID, err)
			}
		} else {
			event := events.TaskReopenedEvent{
				TaskID:     task.ID,
				Username:   req.Username,
				ReopenedAt: task.CreatedAt,
			}
			if err := events.TaskReopenedV1.Publish(m.eventBus, event, nil); err != nil {
				log.Printf("[tasks] Warning: failed to publish TaskReopened event for task %s: %v", task.ID, err)
			}
		}
	}

	return toTaskResponse(task), nil
}

// handleRemove handles the remove-task service request.
func (m *TasksModule) handleRemove(ctx context.Context, req RemoveTaskRequest, _ *mono.Msg) (RemoveTaskResponse, error) {
	if err := m.service.Remove(ctx, req.Username, req.TaskID); err != nil {
		return RemoveTaskResponse{Removed: false}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			Username:  req.Username,
			DeletedAt: m.service.now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[tasks] Warning: failed to publish TaskDeleted event for task %s: %v", req.TaskID, err)
		}
	}

	return RemoveTaskResponse{Removed: true}, nil
}

// handleUpdate handles the update-task service request.
func (m *TasksModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Update(ctx, req.Username, req.TaskID, req.Title, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    task.ID,
			Username:  req.Username,
			UpdatedAt: m.service.now(),
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[tasks] Warning: failed to publish TaskUpdated event for task %s: %v", task.ID, err)
		}
	}

	return toTaskResponse(task), nil
}

// handleList handles the list-tasks service request.
func (m *TasksModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	collection, err := m.service.List(ctx, req.Username)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(collection)),
		Total: len(collection),
	}
	for _, task := range collection {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response, nil
}

// handleStats handles the store-stats service request.
func (m *TasksModule) handleStats(_ context.Context, _ StoreStatsRequest, _ *mono.Msg) (StoreStatsResponse, error) {
	return m.service.Stats(), nil
}

// GetService returns the task service for in-process wiring.
func (m *TasksModule) GetService() *Service {
	return m.service
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Date:        task.Date,
		StartTime:   task.StartTime,
		EndTime:     task.EndTime,
		CreatedAt:   task.CreatedAt,
		CompletedAt: task.CompletedAt,
	}
}
