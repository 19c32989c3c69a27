package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gonanoid "github.com/jaevor/go-nanoid"
	domain "github.com/yusup-a/task-planner/domain/task"
	"github.com/yusup-a/task-planner/modules/kv"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("task title must not be empty")
	// ErrTaskNotFound is returned when no task matches the given id.
	ErrTaskNotFound = errors.New("task not found")
)

// taskIDLength matches the short opaque tokens the store has always used.
const taskIDLength = 16

// keyPrefix namespaces task collections in the key-value store; the full
// key is keyPrefix plus the owning username.
const keyPrefix = "items_"

// anonIdentity is the reserved partition used when no identity is active.
const anonIdentity = "_anon"

// persistedTask is the wire shape of one stored record. LegacyTime reads
// the pre-split single time field; it is never written back.
type persistedTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	LegacyTime  string     `json:"time,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Service owns the per-identity task collections. Each identity's
// collection is loaded from the key-value store on first access, held
// authoritative in memory for the life of the process, and re-serialized
// in full after every mutation. Persistence is best-effort: a failed save
// never fails the mutation, it is counted and logged instead.
type Service struct {
	store kv.Store
	newID func() string
	now   func() time.Time

	mu          sync.RWMutex
	collections map[string][]*domain.Task

	loads singleflight.Group

	saveFailures    uint64
	corruptPayloads uint64
}

// NewService creates a task service persisting through store.
func NewService(store kv.Store) (*Service, error) {
	newID, err := gonanoid.Standard(taskIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	return &Service{
		store:       store,
		newID:       newID,
		now:         time.Now,
		collections: make(map[string][]*domain.Task),
	}, nil
}

// collectionKey maps an identity to its storage key.
func collectionKey(username string) string {
	if username == "" {
		username = anonIdentity
	}
	return keyPrefix + username
}

// load returns the in-memory collection for username, reading it from the
// store on first access. Concurrent first accesses are deduplicated.
// Absent and unparsable payloads both degrade to an empty collection.
func (s *Service) load(ctx context.Context, username string) ([]*domain.Task, error) {
	s.mu.RLock()
	collection, ok := s.collections[username]
	s.mu.RUnlock()
	if ok {
		return collection, nil
	}

	result, err, _ := s.loads.Do(username, func() (any, error) {
		s.mu.RLock()
		existing, ok := s.collections[username]
		s.mu.RUnlock()
		if ok {
			return existing, nil
		}

		loaded := s.readCollection(ctx, username)

		s.mu.Lock()
		s.collections[username] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*domain.Task), nil
}

// readCollection fetches and decodes one identity's stored collection,
// applying the legacy single-time migration.
func (s *Service) readCollection(ctx context.Context, username string) []*domain.Task {
	payload, found, err := s.store.Get(ctx, collectionKey(username))
	if err != nil {
		atomic.AddUint64(&s.corruptPayloads, 1)
		log.Printf("[tasks] Warning: failed to read collection for %q, starting empty: %v", username, err)
		return []*domain.Task{}
	}
	if !found {
		return []*domain.Task{}
	}

	var records []persistedTask
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		atomic.AddUint64(&s.corruptPayloads, 1)
		log.Printf("[tasks] Warning: corrupt collection for %q, starting empty: %v", username, err)
		return []*domain.Task{}
	}

	collection := make([]*domain.Task, 0, len(records))
	for _, r := range records {
		if r.StartTime == "" && r.LegacyTime != "" {
			r.StartTime = r.LegacyTime
		}
		collection = append(collection, &domain.Task{
			ID:          r.ID,
			Title:       r.Title,
			Date:        r.Date,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			CreatedAt:   r.CreatedAt,
			CompletedAt: r.CompletedAt,
		})
	}
	return collection
}

// encode serializes the collection. The caller must hold the collection
// lock: tasks are mutated in place, so marshalling outside the lock would
// race concurrent mutations.
func (s *Service) encode(username string, collection []*domain.Task) (string, bool) {
	payload, err := json.Marshal(collection)
	if err != nil {
		atomic.AddUint64(&s.saveFailures, 1)
		log.Printf("[tasks] Warning: failed to encode collection for %q: %v", username, err)
		return "", false
	}
	return string(payload), true
}

// persist writes an already-encoded collection back to the store, outside
// the lock. Failures are swallowed; the in-memory state stays
// authoritative for the session.
func (s *Service) persist(ctx context.Context, username, payload string) {
	if err := s.store.Set(ctx, collectionKey(username), payload); err != nil {
		atomic.AddUint64(&s.saveFailures, 1)
		log.Printf("[tasks] Warning: failed to persist collection for %q: %v", username, err)
	}
}

// Add creates a new task at the head of the identity's collection.
func (s *Service) Add(ctx context.Context, username, title, date, startTime, endTime string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	if _, err := s.load(ctx, username); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:        s.newID(),
		Title:     title,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.collections[username] = append([]*domain.Task{task}, s.collections[username]...)
	result := task.Clone()
	payload, ok := s.encode(username, s.collections[username])
	s.mu.Unlock()

	if ok {
		s.persist(ctx, username, payload)
	}
	return result, nil
}

// Toggle flips a task between open and completed. Toggling twice restores
// the original state.
func (s *Service) Toggle(ctx context.Context, username, taskID string) (*domain.Task, error) {
	if _, err := s.load(ctx, username); err != nil {
		return nil, err
	}

	s.mu.Lock()
	task := findTask(s.collections[username], taskID)
	if task == nil {
		s.mu.Unlock()
		return nil, ErrTaskNotFound
	}
	if task.CompletedAt != nil {
		task.CompletedAt = nil
	} else {
		at := s.now()
		task.CompletedAt = &at
	}
	result := task.Clone()
	payload, ok := s.encode(username, s.collections[username])
	s.mu.Unlock()

	if ok {
		s.persist(ctx, username, payload)
	}
	return result, nil
}

// Remove deletes a task from the identity's collection.
func (s *Service) Remove(ctx context.Context, username, taskID string) error {
	if _, err := s.load(ctx, username); err != nil {
		return err
	}

	s.mu.Lock()
	collection := s.collections[username]
	idx := -1
	for i, t := range collection {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrTaskNotFound
	}
	collection = append(collection[:idx], collection[idx+1:]...)
	s.collections[username] = collection
	payload, ok := s.encode(username, collection)
	s.mu.Unlock()

	if ok {
		s.persist(ctx, username, payload)
	}
	return nil
}

// Update merges partial field changes into an existing task. The id,
// creation timestamp and completion state are never touched.
func (s *Service) Update(ctx context.Context, username, taskID string, title, date, startTime, endTime *string) (*domain.Task, error) {
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, ErrEmptyTitle
	}

	if _, err := s.load(ctx, username); err != nil {
		return nil, err
	}

	s.mu.Lock()
	task := findTask(s.collections[username], taskID)
	if task == nil {
		s.mu.Unlock()
		return nil, ErrTaskNotFound
	}
	if title != nil {
		task.Title = strings.TrimSpace(*title)
	}
	if date != nil {
		task.Date = *date
	}
	if startTime != nil {
		task.StartTime = *startTime
	}
	if endTime != nil {
		task.EndTime = *endTime
	}
	result := task.Clone()
	payload, ok := s.encode(username, s.collections[username])
	s.mu.Unlock()

	if ok {
		s.persist(ctx, username, payload)
	}
	return result, nil
}

// List returns a snapshot of the identity's collection, newest first.
func (s *Service) List(ctx context.Context, username string) ([]*domain.Task, error) {
	collection, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]*domain.Task, 0, len(collection))
	for _, t := range s.collections[username] {
		snapshot = append(snapshot, t.Clone())
	}
	return snapshot, nil
}

// Stats reports the store's degradation counters.
func (s *Service) Stats() StoreStatsResponse {
	s.mu.RLock()
	loaded := len(s.collections)
	s.mu.RUnlock()

	return StoreStatsResponse{
		SaveFailures:    atomic.LoadUint64(&s.saveFailures),
		CorruptPayloads: atomic.LoadUint64(&s.corruptPayloads),
		LoadedUsers:     loaded,
	}
}

// findTask returns the task with the given id, or nil. Caller holds the
// collection lock.
func findTask(collection []*domain.Task, taskID string) *domain.Task {
	for _, t := range collection {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}
