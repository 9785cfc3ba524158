// Package validate provides the field checks shared by the CLI and TUI task
// forms. The task store itself trusts its callers and does not validate.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskboard/internal/core/task"
)

// Title validates a task title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// Category validates a category is non-empty after trimming whitespace.
func Category(category string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}

// Priority validates s names one of the known priorities. Matching is
// case-insensitive; empty is rejected here even though ParsePriority
// defaults it, so forms always show an explicit value.
func Priority(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("priority is required")
	}
	_, err := task.ParsePriority(s)
	return err
}

// DueDate validates an optional YYYY-MM-DD date that must not be before the
// calendar day of now. Empty is allowed.
func DueDate(s string, now time.Time) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	due, err := time.ParseInLocation(task.DateLayout, s, now.Location())
	if err != nil {
		return fmt.Errorf("due date %q must use the YYYY-MM-DD format", s)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return fmt.Errorf("due date cannot be in the past")
	}
	return nil
}

// TitleField returns a criterio validator for task titles.
func TitleField(field, title string) error {
	return criterio.Run(field, title, Title)
}

// CategoryField returns a criterio validator for categories.
func CategoryField(field, category string) error {
	return criterio.Run(field, category, Category)
}

// PriorityField returns a criterio validator for priorities.
func PriorityField(field, priority string) error {
	return criterio.Run(field, priority, Priority)
}

// DueDateField returns a criterio validator for due dates relative to now.
func DueDateField(field, due string, now time.Time) error {
	return criterio.Run(field, due, func(s string) error {
		return DueDate(s, now)
	})
}

// TaskInput is the raw text of a task form before parsing.
type TaskInput struct {
	Title    string
	Priority string
	Category string
	DueDate  string
}

// Task validates every field of a form and reports all failures together as
// criterio field errors keyed by field name.
func Task(in TaskInput, now time.Time) error {
	return criterio.ValidateStruct(
		TitleField("title", in.Title),
		PriorityField("priority", in.Priority),
		CategoryField("category", in.Category),
		DueDateField("dueDate", in.DueDate, now),
	)
}
