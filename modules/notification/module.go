package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/yusup-a/task-planner/events"
)

// maxEntries bounds the in-memory activity log.
const maxEntries = 500

// ActivityEntry represents a logged task activity notification.
type ActivityEntry struct {
	TaskID    string    `json:"taskId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule records task activity as a driven adapter. It
// subscribes to task events and keeps a bounded in-memory activity log.
type NotificationModule struct {
	entries []ActivityEntry
	mu      sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		entries: make([]ActivityEntry, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskReopenedV1, m.handleTaskReopened, m); err != nil {
		return fmt.Errorf("failed to register TaskReopened consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskUpdated, TaskCompleted, TaskReopened, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task created: %s - %s", event.TaskID, event.Title)
	m.logActivity(event.TaskID, "task_created", event.Username,
		fmt.Sprintf("Task '%s' added for %s", event.Title, event.Date))
	return nil
}

func (m *NotificationModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task updated: %s by %s", event.TaskID, event.Username)
	m.logActivity(event.TaskID, "task_updated", event.Username,
		fmt.Sprintf("Task %s updated", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task completed: %s by %s", event.TaskID, event.Username)
	m.logActivity(event.TaskID, "task_completed", event.Username,
		fmt.Sprintf("Task %s completed!", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskReopened(_ context.Context, event events.TaskReopenedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task reopened: %s by %s", event.TaskID, event.Username)
	m.logActivity(event.TaskID, "task_reopened", event.Username,
		fmt.Sprintf("Task %s reopened", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %s by %s", event.TaskID, event.Username)
	m.logActivity(event.TaskID, "task_deleted", event.Username,
		fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) logActivity(taskID, activityType, username, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, ActivityEntry{
		TaskID:    taskID,
		Type:      activityType,
		Message:   message,
		Username:  username,
		Timestamp: time.Now(),
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// GetActivity returns a snapshot of the activity log, newest last.
func (m *NotificationModule) GetActivity() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ActivityEntry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
