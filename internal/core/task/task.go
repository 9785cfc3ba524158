// Package task defines the task domain model and the in-memory store that
// owns the ordered task collection.
package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/taskboard/pkg/randid"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// DefaultPriority is applied when a task is created without one.
const DefaultPriority = PriorityMedium

// Priorities lists the valid priorities, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority converts a case-insensitive string into a Priority.
// An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}

	p := Priority(strings.ToUpper(s))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q: must be one of high, medium, low", s)
	}
	return p, nil
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Is compares priorities ignoring case. Stored data may carry lowercase values.
func (p Priority) Is(other Priority) bool {
	return strings.EqualFold(string(p), string(other))
}

// Task is a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  Priority  `json:"priority"`
	Category  string    `json:"category,omitempty"`
	DueDate   string    `json:"dueDate,omitempty"` // YYYY-MM-DD, empty when unset
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasCategory reports whether the task carries a non-empty category.
func (t Task) HasCategory() bool {
	return t.Category != ""
}

// Due parses the due date in the given location. The second return value is
// false when the task has no due date or the stored value is malformed.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// New builds a task with a fresh ID and creation timestamp. Priority falls
// back to DefaultPriority when empty.
func New(now time.Time, title string, priority Priority, category, dueDate string) Task {
	if priority == "" {
		priority = DefaultPriority
	}
	return Task{
		ID:        NewID(now),
		Title:     title,
		Priority:  priority,
		Category:  category,
		DueDate:   dueDate,
		CreatedAt: now,
	}
}

// NewID returns an identifier derived from the current time in milliseconds,
// base-36 encoded, followed by a short random suffix so two tasks created in
// the same millisecond still differ.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + randid.Generate(4)
}

// Patch is a partial update. Nil fields are left untouched by Apply.
type Patch struct {
	Title     *string
	Priority  *Priority
	Category  *string
	DueDate   *string
	Completed *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Priority == nil && p.Category == nil &&
		p.DueDate == nil && p.Completed == nil
}

// Apply returns a copy of t with every supplied field overwritten.
// ID and CreatedAt are never touched.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
