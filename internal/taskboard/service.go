package taskboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/validate"
)

var (
	// ErrTaskNotFound is returned when no task matches an id or prefix.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousID is returned when a prefix matches more than one task.
	ErrAmbiguousID = errors.New("ambiguous task id")

	// ErrInvalidPosition is returned by Move for positions outside the list.
	ErrInvalidPosition = errors.New("invalid position")
)

// Service validates user input and resolves ids before handing off to the
// task store. The store itself treats unknown ids and bad indices as silent
// no-ops; Service turns those into errors a command can report.
type Service struct {
	store *task.Store
	log   zerolog.Logger
	now   func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for new tasks and due-date checks.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service over store.
func NewService(store *task.Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   logging.Component("tasks"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Add validates in and creates a task at the front of the list. The task is
// returned even when saving fails, since it is already in memory.
func (s *Service) Add(ctx context.Context, in validate.TaskInput) (task.Task, error) {
	now := s.now()
	if err := validate.Task(in, now); err != nil {
		return task.Task{}, err
	}

	priority, err := task.ParsePriority(in.Priority)
	if err != nil {
		return task.Task{}, err
	}

	t := task.New(now,
		strings.TrimSpace(in.Title),
		priority,
		strings.TrimSpace(in.Category),
		strings.TrimSpace(in.DueDate),
	)

	ctx = logging.WithTaskID(ctx, t.ID)
	if err := s.store.Create(ctx, t); err != nil {
		return t, fmt.Errorf("save new task: %w", err)
	}

	s.log.Debug().Ctx(ctx).Str("title", t.Title).Msg("task created")
	return t, nil
}

// Edit validates the supplied patch fields and applies them to the task with
// the given id.
func (s *Service) Edit(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	if _, ok := s.store.Get(id); !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if patch.IsEmpty() {
		return task.Task{}, errors.New("nothing to change")
	}

	if err := s.validatePatch(patch); err != nil {
		return task.Task{}, err
	}

	ctx = logging.WithTaskID(ctx, id)
	err := s.store.Edit(ctx, id, patch)
	updated, _ := s.store.Get(id)
	if err != nil {
		return updated, fmt.Errorf("save task: %w", err)
	}
	return updated, nil
}

func (s *Service) validatePatch(p task.Patch) error {
	now := s.now()
	var checks []error
	if p.Title != nil {
		checks = append(checks, validate.TitleField("title", *p.Title))
	}
	if p.Priority != nil {
		checks = append(checks, validate.PriorityField("priority", string(*p.Priority)))
	}
	if p.Category != nil {
		checks = append(checks, validate.CategoryField("category", *p.Category))
	}
	if p.DueDate != nil {
		checks = append(checks, validate.DueDateField("dueDate", *p.DueDate, now))
	}
	return errors.Join(checks...)
}

// Delete removes the task with the given id.
func (s *Service) Delete(ctx context.Context, id string) (task.Task, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	ctx = logging.WithTaskID(ctx, id)
	if err := s.store.Delete(ctx, id); err != nil {
		return t, fmt.Errorf("save after delete: %w", err)
	}
	return t, nil
}

// Toggle flips the completion flag of the task with the given id and returns
// the updated task.
func (s *Service) Toggle(ctx context.Context, id string) (task.Task, error) {
	if _, ok := s.store.Get(id); !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	ctx = logging.WithTaskID(ctx, id)
	err := s.store.ToggleCompleted(ctx, id)
	t, _ := s.store.Get(id)
	if err != nil {
		return t, fmt.Errorf("save task: %w", err)
	}
	return t, nil
}

// Move repositions a task within the full collection. Positions are 0-based
// and to is interpreted after the task has been removed.
func (s *Service) Move(ctx context.Context, from, to int) error {
	n := s.store.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: positions must be between 0 and %d", ErrInvalidPosition, n-1)
	}

	if err := s.store.Reorder(ctx, from, to); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// Resolve finds a task by full id or by a unique id prefix.
func (s *Service) Resolve(idOrPrefix string) (task.Task, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return task.Task{}, fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}

	if t, ok := s.store.Get(idOrPrefix); ok {
		return t, nil
	}

	var matches []task.Task
	for _, t := range s.store.Tasks() {
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}

// ImportResult summarises an Import call.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Import adds every task whose id is not already present. The imported tasks
// end up at the front of the list in the same order they were given. Tasks
// without an id get a fresh one; missing priority and creation time are
// filled in.
func (s *Service) Import(ctx context.Context, tasks []task.Task) (ImportResult, error) {
	var (
		res  ImportResult
		errs []error
	)

	now := s.now()
	seen := make(map[string]bool, len(tasks))

	prepared := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = task.NewID(now)
		}
		if _, exists := s.store.Get(t.ID); exists || seen[t.ID] {
			res.Skipped++
			continue
		}
		seen[t.ID] = true

		if t.Priority == "" {
			t.Priority = task.DefaultPriority
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		prepared = append(prepared, t)
	}

	for _, t := range slices.Backward(prepared) {
		if err := s.store.Create(logging.WithTaskID(ctx, t.ID), t); err != nil {
			errs = append(errs, err)
		}
		res.Added++
	}

	if len(errs) > 0 {
		return res, fmt.Errorf("save imported tasks: %w", errs[len(errs)-1])
	}

	s.log.Info().Ctx(ctx).Int("added", res.Added).Int("skipped", res.Skipped).Msg("tasks imported")
	return res, nil
}

// Statistics returns the completion statistics as of the service clock.
func (s *Service) Statistics() task.Statistics {
	return s.store.Statistics(s.now())
}
