package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/yusup-a/task-planner/events"
)

func TestActivityLogRecordsEvents(t *testing.T) {
	ctx := context.Background()
	module := NewModule()

	if err := module.handleTaskCreated(ctx, events.TaskCreatedEvent{
		TaskID: "t1", Title: "buy milk", Date: "2024-01-01", Username: "alice",
	}, nil); err != nil {
		t.Fatalf("handleTaskCreated failed: %v", err)
	}
	if err := module.handleTaskCompleted(ctx, events.TaskCompletedEvent{
		TaskID: "t1", Username: "alice",
	}, nil); err != nil {
		t.Fatalf("handleTaskCompleted failed: %v", err)
	}

	entries := module.GetActivity()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Type != "task_created" || entries[1].Type != "task_completed" {
		t.Errorf("entry types = %s, %s", entries[0].Type, entries[1].Type)
	}
	if entries[0].Username != "alice" || entries[0].TaskID != "t1" {
		t.Errorf("entry fields not carried over: %+v", entries[0])
	}
}

func TestActivityLogIsBounded(t *testing.T) {
	ctx := context.Background()
	module := NewModule()

	for i := 0; i < maxEntries+25; i++ {
		if err := module.handleTaskDeleted(ctx, events.TaskDeletedEvent{
			TaskID: fmt.Sprintf("t%d", i), Username: "alice",
		}, nil); err != nil {
			t.Fatalf("handleTaskDeleted failed: %v", err)
		}
	}

	entries := module.GetActivity()
	if len(entries) != maxEntries {
		t.Fatalf("got %d entries, want %d", len(entries), maxEntries)
	}
	if entries[len(entries)-1].TaskID != fmt.Sprintf("t%d", maxEntries+24) {
		t.Errorf("newest entry = %s, want the last delete", entries[len(entries)-1].TaskID)
	}
	if entries[0].TaskID != "t25" {
		t.Errorf("oldest retained entry = %s, want t25", entries[0].TaskID)
	}
}

func TestGetActivityReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	module := NewModule()

	if err := module.handleTaskCreated(ctx, events.TaskCreatedEvent{
		TaskID: "t1", Title: "original", Username: "alice",
	}, nil); err != nil {
		t.Fatalf("handleTaskCreated failed: %v", err)
	}

	entries := module.GetActivity()
	entries[0].Message = "mutated"

	fresh := module.GetActivity()
	if fresh[0].Message == "mutated" {
		t.Error("snapshot mutation leaked into the log")
	}
}
