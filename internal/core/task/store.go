package task

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// BlobStore persists the whole task collection as a single snapshot.
type BlobStore interface {
	// Load returns the saved collection. A nil slice with a nil error means
	// nothing has been saved yet.
	Load(ctx context.Context) ([]Task, error)

	// Save overwrites the snapshot with tasks.
	Save(ctx context.Context, tasks []Task) error
}

// ViewState is the ephemeral view selection. It is never persisted.
type ViewState struct {
	Filter      string `json:"filter"`
	SearchQuery string `json:"search_query"`
	ShowStats   bool   `json:"show_stats"`
}

// DefaultViewState is the state every store starts with.
func DefaultViewState() ViewState {
	return ViewState{Filter: FilterAll}
}

// Store owns the ordered task collection and the current view state.
// Every mutation commits in memory first and then saves the full collection;
// a failed save is logged and returned but never rolls the mutation back.
//
// Store is not safe for concurrent use. Callers drive it from a single event
// loop.
type Store struct {
	blobs BlobStore
	log   zerolog.Logger

	tasks []Task
	view  ViewState
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore loads the initial collection from blobs. A load failure is logged
// and the store starts empty.
func NewStore(ctx context.Context, blobs BlobStore, opts ...StoreOption) *Store {
	s := &Store{
		blobs: blobs,
		log:   zerolog.Nop(),
		view:  DefaultViewState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := blobs.Load(ctx)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("load tasks failed, starting with an empty list")
		tasks = nil
	}
	s.tasks = tasks

	s.log.Debug().Int("count", len(s.tasks)).Msg("tasks loaded")
	return s
}

// Create inserts t at the front of the collection.
func (s *Store) Create(ctx context.Context, t Task) error {
	s.tasks = slices.Insert(s.tasks, 0, t)
	return s.persist(ctx, "create")
}

// Delete removes the task with id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return nil
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	return s.persist(ctx, "delete")
}

// Edit merges patch into the task with id. Unknown ids are ignored.
func (s *Store) Edit(ctx context.Context, id string, patch Patch) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return nil
	}
	s.tasks[idx] = patch.Apply(s.tasks[idx])
	return s.persist(ctx, "edit")
}

// ToggleCompleted flips the completion flag of the task with id. Unknown ids
// are ignored.
func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return nil
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	return s.persist(ctx, "toggle")
}

// Reorder moves the task at from so that it ends up at index to. The task is
// removed first and to is interpreted against the shortened collection, so
// Reorder(0, 2) on [A B C D] yields [B C A D]. Out of range indices make the
// call a no-op.
func (s *Store) Reorder(ctx context.Context, from, to int) error {
	n := len(s.tasks)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return nil
	}

	moved := s.tasks[from]
	s.tasks = slices.Delete(s.tasks, from, from+1)
	s.tasks = slices.Insert(s.tasks, to, moved)
	return s.persist(ctx, "reorder")
}

// SetFilter selects a status keyword or a category.
func (s *Store) SetFilter(filter string) {
	s.view.Filter = filter
}

// SetSearchQuery sets the free text search.
func (s *Store) SetSearchQuery(query string) {
	s.view.SearchQuery = query
}

// ToggleStats flips statistics visibility.
func (s *Store) ToggleStats() {
	s.view.ShowStats = !s.view.ShowStats
}

// View returns the current view state.
func (s *Store) View() ViewState {
	return s.view
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id string) (Task, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx], true
}

// IndexOf returns the position of the task with id, or -1.
func (s *Store) IndexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// Visible returns the tasks matching the current filter and search query.
func (s *Store) Visible() []Task {
	return FilterTasks(s.tasks, s.view.Filter, s.view.SearchQuery)
}

// CategoryCounts maps each non-empty category to its task count.
func (s *Store) CategoryCounts() map[string]int {
	return CountCategories(s.tasks)
}

// Categories returns the distinct categories in first-appearance order.
func (s *Store) Categories() []string {
	return DistinctCategories(s.tasks)
}

// Statistics computes completion ratios as of now.
func (s *Store) Statistics(now time.Time) Statistics {
	return ComputeStatistics(s.tasks, now)
}

func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.blobs.Save(ctx, s.Tasks()); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Str("op", op).Int("count", len(s.tasks)).Msg("save tasks failed")
		return err
	}
	return nil
}
