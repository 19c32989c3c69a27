package planner

import (
	"time"

	domain "github.com/yusup-a/task-planner/domain/task"
)

// DueSoonWindow is how long before a lone due time a task is surfaced as
// due soon.
const DueSoonWindow = time.Hour

// Classify derives a task's urgency state at the given instant.
//
// Completion always wins. With both times set, the task is due soon for
// the whole [start, end] window and overdue past the end. With a single
// time set, that time is the due bound: due soon within the hour before
// it, overdue from it on. No times, a not-yet-started window, or fields
// that fail to parse all classify as unscheduled; this never errors.
func Classify(t *domain.Task, now time.Time) domain.Status {
	if t.CompletedAt != nil {
		return domain.StatusCompleted
	}

	hasStart := t.StartTime != ""
	hasEnd := t.EndTime != ""
	if !hasStart && !hasEnd {
		return domain.StatusUnscheduled
	}

	if hasStart && hasEnd {
		start, ok := combine(t.Date, t.StartTime, now.Location())
		if !ok {
			return domain.StatusUnscheduled
		}
		end, ok := combine(t.Date, t.EndTime, now.Location())
		if !ok {
			return domain.StatusUnscheduled
		}
		// Past end is checked first so a degenerate end-before-start pair
		// reads as past-end, not as a window that never opened.
		switch {
		case now.After(end):
			return domain.StatusOverdue
		case now.Before(start):
			return domain.StatusUnscheduled
		default:
			return domain.StatusDueSoon
		}
	}

	dueText := t.StartTime
	if !hasStart {
		dueText = t.EndTime
	}
	due, ok := combine(t.Date, dueText, now.Location())
	if !ok {
		return domain.StatusUnscheduled
	}
	switch {
	case !now.Before(due):
		return domain.StatusOverdue
	case !now.Before(due.Add(-DueSoonWindow)):
		return domain.StatusDueSoon
	default:
		return domain.StatusUnscheduled
	}
}

// combine builds the instant for a calendar-date key plus canonical time
// in the given location.
func combine(dateKey, canonical string, loc *time.Location) (time.Time, bool) {
	at, err := time.ParseInLocation("2006-01-02 15:04", dateKey+" "+canonical, loc)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
