package taskstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/taskmgr/internal/errors"
	"github.com/Iron-Ham/taskmgr/internal/kv"
	"github.com/Iron-Ham/taskmgr/internal/logging"
	"github.com/Iron-Ham/taskmgr/internal/task"
)

// Keys of the two persisted slots.
const (
	TasksKey = "taskManager_tasks"
	ThemeKey = "taskManager_theme"
)

// Store provides CRUD and filter access over the persisted collection.
// It is safe for concurrent use within one process.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *logging.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed storage errors and
// mutation traces.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source for generated CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Store persisting to backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		logger: logging.NopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load decodes the persisted collection. An absent key is an empty
// collection. Corrupt JSON is reported as ErrStoreCorrupted.
func (s *Store) load() ([]task.Task, error) {
	raw, err := s.kv.Get(TasksKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []task.Task{}, nil
		}
		return nil, errors.NewStorageError("load", TasksKey, err)
	}

	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrStoreCorrupted, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// loadForWrite is load for mutations. Corruption degrades to an empty
// collection like GetAll does; an unreadable store is returned as an error
// so the mutation does not overwrite data it could not see.
func (s *Store) loadForWrite(log *logging.Logger) ([]task.Task, error) {
	tasks, err := s.load()
	if err == nil {
		return tasks, nil
	}
	if errors.Is(err, errors.ErrStoreCorrupted) {
		log.Warn("stored tasks are corrupt, starting from an empty list", "error", err.Error())
		return []task.Task{}, nil
	}
	log.Failure("failed to read tasks", err)
	return nil, err
}

// save replaces the persisted collection with tasks.
func (s *Store) save(log *logging.Logger, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		eerr := errors.NewStorageError("encode", TasksKey, fmt.Errorf("%w: %w", errors.ErrEncode, err)).
			WithSeverity(errors.SeverityCritical)
		log.Failure("failed to encode tasks", eerr)
		return eerr
	}
	if err := s.kv.Set(TasksKey, string(data)); err != nil {
		serr := errors.NewStorageError("save", TasksKey, err)
		if errors.Is(err, errors.ErrStorageFull) {
			serr = serr.WithSeverity(errors.SeverityWarning)
		}
		log.Failure("failed to save tasks", serr, "bytes", len(data))
		return serr
	}
	return nil
}

// GetAll returns the collection in insertion order. It never fails: any
// read problem yields an empty slice. The result is a snapshot the caller
// may modify.
func (s *Store) GetAll() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getAll()
}

func (s *Store) getAll() []task.Task {
	tasks, err := s.load()
	if err != nil {
		log := s.logger.WithOperation("get_all")
		if errors.Is(err, errors.ErrStoreCorrupted) {
			log.Warn("stored tasks are corrupt, reading as empty", "error", err.Error())
		} else {
			log.Failure("failed to read tasks", err)
		}
		return []task.Task{}
	}
	return tasks
}

// GetByID returns the task with id, if any.
func (s *Store) GetByID(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.getAll() {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// GetByFilter returns the tasks visible under f in insertion order.
// Unknown filters behave as task.FilterAll.
func (s *Store) GetByFilter(f task.Filter) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f.Apply(s.getAll())
}

// Counts derives the total, pending and completed numbers.
func (s *Store) Counts() task.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.CountOf(s.getAll())
}

// Add appends t and persists the collection. A missing ID, CreatedAt or
// Priority is filled in and written back to t. The title is trimmed and
// must not be empty.
func (s *Store) Add(t *task.Task) error {
	if t == nil {
		return errors.NewValidationError("task is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.Title = strings.TrimSpace(t.Title)
	if t.ID == "" {
		t.ID = task.NewID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now().UTC()
	}
	if t.Priority == "" {
		t.Priority = task.DefaultPriority
	}

	log := s.logger.WithOperation("add").WithTask(t.ID)
	if err := t.Validate(); err != nil {
		log.Debug("rejected task", "error", err.Error())
		return err
	}

	tasks, err := s.loadForWrite(log)
	if err != nil {
		return err
	}
	for _, existing := range tasks {
		if existing.ID == t.ID {
			return errors.NewAlreadyExistsError("task", t.ID)
		}
	}

	next := make([]task.Task, len(tasks), len(tasks)+1)
	copy(next, tasks)
	next = append(next, *t)

	if err := s.save(log, next); err != nil {
		return err
	}
	log.Debug("task added", "total", len(next))
	return nil
}

// Update merges p into the task with id and persists the collection.
// Omitted fields are kept; ID and CreatedAt never change.
func (s *Store) Update(id string, p task.Patch) error {
	return s.mutate("update", id, func(t task.Task) (task.Task, error) {
		updated := p.Apply(t)
		if err := updated.Validate(); err != nil {
			return t, err
		}
		return updated, nil
	})
}

// ToggleCompletion flips the completed flag of the task with id.
func (s *Store) ToggleCompletion(id string) error {
	return s.mutate("toggle", id, func(t task.Task) (task.Task, error) {
		t.Completed = !t.Completed
		return t, nil
	})
}

// mutate replaces the task with id by fn's result and persists. The
// collection keeps its order.
func (s *Store) mutate(op, id string, fn func(task.Task) (task.Task, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.WithOperation(op).WithTask(id)

	tasks, err := s.loadForWrite(log)
	if err != nil {
		return err
	}

	idx := indexOf(tasks, id)
	if idx < 0 {
		log.Debug("task not found")
		return errors.NewNotFoundError("task", id)
	}

	updated, err := fn(tasks[idx])
	if err != nil {
		log.Debug("rejected change", "error", err.Error())
		return err
	}

	next := make([]task.Task, len(tasks))
	copy(next, tasks)
	next[idx] = updated

	if err := s.save(log, next); err != nil {
		return err
	}
	log.Debug("task updated", "completed", updated.Completed)
	return nil
}

// Delete removes the task with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.WithOperation("delete").WithTask(id)

	tasks, err := s.loadForWrite(log)
	if err != nil {
		return err
	}

	idx := indexOf(tasks, id)
	if idx < 0 {
		log.Debug("task not found")
		return errors.NewNotFoundError("task", id)
	}

	next := make([]task.Task, 0, len(tasks)-1)
	next = append(next, tasks[:idx]...)
	next = append(next, tasks[idx+1:]...)

	if err := s.save(log, next); err != nil {
		return err
	}
	log.Debug("task deleted", "total", len(next))
	return nil
}

// ClearAll replaces the collection with an empty one.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.WithOperation("clear")
	if err := s.save(log, []task.Task{}); err != nil {
		return err
	}
	log.Debug("tasks cleared")
	return nil
}

// Inspect checks the persisted blob without changing it. It returns nil
// when the blob is absent or well formed, an error matching
// ErrStoreCorrupted when it cannot be decoded or breaks the collection
// invariants, and an error matching ErrStorageUnavailable when it cannot
// be read.
func (s *Store) Inspect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: task %d: %w", errors.ErrStoreCorrupted, i, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate id %q", errors.ErrStoreCorrupted, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

func indexOf(tasks []task.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
