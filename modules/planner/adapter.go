package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// plannerAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements the PlannerPort interface.
type plannerAdapter struct {
	container mono.ServiceContainer
}

// NewPlannerAdapter creates a new adapter for planner services.
// container is the ServiceContainer from the planner module received via
// SetDependencyServiceContainer.
func NewPlannerAdapter(container mono.ServiceContainer) PlannerPort {
	if container == nil {
		panic("planner adapter requires non-nil ServiceContainer")
	}
	return &plannerAdapter{container: container}
}

// WeekView builds the week view via the week-view service.
func (a *plannerAdapter) WeekView(ctx context.Context, username string, offset int) (*WeekViewResponse, error) {
	req := WeekViewRequest{Username: username, Offset: offset}
	var resp WeekViewResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "week-view", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("week-view service call failed: %w", err)
	}
	return &resp, nil
}

// MonthGrid builds the calendar grid via the month-grid service.
func (a *plannerAdapter) MonthGrid(ctx context.Context, year, month int) (*MonthGridResponse, error) {
	req := MonthGridRequest{Year: year, Month: month}
	var resp MonthGridResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "month-grid", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("month-grid service call failed: %w", err)
	}
	return &resp, nil
}
