package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/yusup-a/task-planner/events"
	"github.com/yusup-a/task-planner/modules/tasks"
)

// DefaultRefreshInterval matches the original once-a-minute status tick.
const DefaultRefreshInterval = 60 * time.Second

// PlannerModule serves week and month views as a mono module. A refresh
// worker invalidates cached views on a fixed interval so urgency states
// track the wall clock; task events invalidate them immediately.
type PlannerModule struct {
	service  *Service
	taskPort tasks.TaskPort
	interval time.Duration

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// Compile-time interface checks.
var _ mono.Module = (*PlannerModule)(nil)
var _ mono.ServiceProviderModule = (*PlannerModule)(nil)
var _ mono.DependentModule = (*PlannerModule)(nil)
var _ mono.EventConsumerModule = (*PlannerModule)(nil)

// NewModule creates a new PlannerModule refreshing at the given interval.
// A non-positive interval selects the default.
func NewModule(interval time.Duration) *PlannerModule {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &PlannerModule{
		interval: interval,
	}
}

// Name returns the module name.
func (m *PlannerModule) Name() string {
	return "planner"
}

// Dependencies returns the list of module dependencies.
func (m *PlannerModule) Dependencies() []string {
	return []string{"tasks"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *PlannerModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "tasks" {
		m.taskPort = tasks.NewTaskAdapter(container)
	}
}

// RegisterEventConsumers subscribes to task mutations so cached views are
// dropped as soon as a collection changes.
func (m *PlannerModule) RegisterEventConsumers(registry mono.EventRegistry) error {
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

	log.Printf("[planner] Registered event consumers: TaskCreated, TaskUpdated, TaskCompleted, TaskReopened, TaskDeleted")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *PlannerModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "week-view", json.Unmarshal, json.Marshal, m.handleWeekView,
	); err != nil {
		return fmt.Errorf("failed to register week-view service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "month-grid", json.Unmarshal, json.Marshal, m.handleMonthGrid,
	); err != nil {
		return fmt.Errorf("failed to register month-grid service: %w", err)
	}

	log.Printf("[planner] Registered services: week-view, month-grid")
	return nil
}

// Start initializes the service and launches the refresh worker.
func (m *PlannerModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}

	m.service = NewService(m.taskPort)
	m.stopChan = make(chan struct{})
	m.doneChan = make(chan struct{})

	go m.run()

	log.Printf("[planner] Module started (refresh interval: %s)", m.interval)
	return nil
}

// run drives the periodic re-evaluation tick.
func (m *PlannerModule) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer close(m.doneChan)

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.service.Invalidate()
		}
	}
}

// Stop tears down the refresh worker.
func (m *PlannerModule) Stop(ctx context.Context) error {
	if m.stopChan == nil {
		return nil
	}

	m.stopOnce.Do(func() {
		close(m.stopChan)
	})

	select {
	case <-m.doneChan:
		log.Println("[planner] Module stopped")
	case <-ctx.Done():
		log.Println("[planner] Refresh worker shutdown timeout exceeded")
		return ctx.Err()
	}

	return nil
}

// handleWeekView handles the week-view service request.
func (m *PlannerModule) handleWeekView(ctx context.Context, req WeekViewRequest, _ *mono.Msg) (WeekViewResponse, error) {
	view, err := m.service.WeekView(ctx, req.Username, req.Offset)
	if err != nil {
		return WeekViewResponse{}, err
	}
	return *view, nil
}

// handleMonthGrid handles the month-grid service request.
func (m *PlannerModule) handleMonthGrid(ctx context.Context, req MonthGridRequest, _ *mono.Msg) (MonthGridResponse, error) {
	grid, err := m.service.MonthGrid(ctx, req.Year, req.Month)
	if err != nil {
		return MonthGridResponse{}, err
	}
	return *grid, nil
}

// invalidate drops cached views. Events can arrive before Start when the
// tasks module boots first, so a missing service is tolerated.
func (m *PlannerModule) invalidate() {
	if m.service != nil {
		m.service.Invalidate()
	}
}

func (m *PlannerModule) handleTaskCreated(_ context.Context, _ events.TaskCreatedEvent, _ *mono.Msg) error {
	m.invalidate()
	return nil
}

func (m *PlannerModule) handleTaskUpdated(_ context.Context, _ events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.invalidate()
	return nil
}

func (m *PlannerModule) handleTaskCompleted(_ context.Context, _ events.TaskCompletedEvent, _ *mono.Msg) error {
	m.invalidate()
	return nil
}

func (m *PlannerModule) handleTaskReopened(_ context.Context, _ events.TaskReopenedEvent, _ *mono.Msg) error {
	m.invalidate()
	return nil
}

func (m *PlannerModule) handleTaskDeleted(_ context.Context, _ events.TaskDeletedEvent, _ *mono.Msg) error {
	m.invalidate()
	return nil
}
