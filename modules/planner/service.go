package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	domain "github.com/yusup-a/task-planner/domain/task"
	"github.com/yusup-a/task-planner/modules/tasks"
)

// ErrInvalidMonth is returned when the viewed month is out of range.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// Service computes planner views over the task store. Week views are
// cached per identity and offset for at most one refresh interval; the
// week containing "today" is re-derived from the live clock on every
// cache miss, so a session left open across midnight rolls over as soon
// as the refresher invalidates.
type Service struct {
	taskPort tasks.TaskPort
	now      func() time.Time

	generation uint64

	mu    sync.Mutex
	cache map[string]cachedWeek
}

type cachedWeek struct {
	generation uint64
	view       WeekViewResponse
}

// NewService creates a planner service reading tasks through taskPort.
func NewService(taskPort tasks.TaskPort) *Service {
	return &Service{
		taskPort: taskPort,
		now:      time.Now,
		cache:    make(map[string]cachedWeek),
	}
}

// WeekView returns the identity's week at the given offset in whole weeks
// from the week containing today.
func (s *Service) WeekView(ctx context.Context, username string, offset int) (*WeekViewResponse, error) {
	generation := atomic.LoadUint64(&s.generation)
	key := fmt.Sprintf("%s|%d", username, offset)

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok && cached.generation == generation {
		view := cached.view
		return &view, nil
	}

	listed, err := s.taskPort.ListTasks(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := s.now()
	weekStart := AddDays(StartOfWeek(now), offset*7)
	view := BuildWeekView(toDomain(listed.Tasks), weekStart, now)
	view.Offset = offset

	s.mu.Lock()
	s.cache[key] = cachedWeek{generation: generation, view: view}
	s.mu.Unlock()

	return &view, nil
}

// MonthGrid returns the 42-cell picker grid for the viewed year/month.
func (s *Service) MonthGrid(_ context.Context, year, month int) (*MonthGridResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	grid := BuildMonthGrid(year, time.Month(month), s.now())
	return &grid, nil
}

// Invalidate drops every cached view. The refresher calls this each tick
// so statuses and "today" are recomputed against the live clock; mutation
// paths call it so views never serve stale collections.
func (s *Service) Invalidate() {
	atomic.AddUint64(&s.generation, 1)

	s.mu.Lock()
	s.cache = make(map[string]cachedWeek)
	s.mu.Unlock()
}

// toDomain converts wire tasks back to domain entities for view building.
func toDomain(items []tasks.TaskResponse) []*domain.Task {
	collection := make([]*domain.Task, 0, len(items))
	for _, item := range items {
		collection = append(collection, &domain.Task{
			ID:          item.ID,
			Title:       item.Title,
			Date:        item.Date,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
			CreatedAt:   item.CreatedAt,
			CompletedAt: item.CompletedAt,
		})
	}
	return collection
}
