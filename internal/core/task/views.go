package task

import (
	"fmt"
	"strings"
	"time"
)

// Status filter keywords. Any other filter value is treated as a category.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// StatusFilters lists the status keywords in display order.
func StatusFilters() []string {
	return []string{FilterAll, FilterActive, FilterCompleted}
}

// IsStatusFilter reports whether f is one of the status keywords.
func IsStatusFilter(f string) bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// MatchesFilter applies the status-or-category predicate. Status keywords are
// checked first, so a category literally named "active" can never be selected.
func MatchesFilter(t Task, filter string) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterCompleted:
		return t.Completed
	case FilterActive:
		return !t.Completed
	default:
		return t.Category == filter
	}
}

// MatchesSearch reports whether the title or category contains query,
// ignoring case. An empty query matches everything.
func MatchesSearch(t Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Category), q)
}

// FilterTasks returns the tasks passing both the filter and the search query,
// preserving input order.
func FilterTasks(tasks []Task, filter, query string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if MatchesFilter(t, filter) && MatchesSearch(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// CountCategories maps each non-empty category to the number of tasks in it.
func CountCategories(tasks []Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.HasCategory() {
			counts[t.Category]++
		}
	}
	return counts
}

// DistinctCategories returns the non-empty categories in order of first
// appearance.
func DistinctCategories(tasks []Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		if !t.HasCategory() {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// Ratio is a done/total pair.
type Ratio struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Value returns Done/Total, or 0 for an empty bucket.
func (r Ratio) Value() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Done) / float64(r.Total)
}

// Percent returns Value scaled to 0..100.
func (r Ratio) Percent() float64 {
	return r.Value() * 100
}

func (r *Ratio) add(completed bool) {
	r.Total++
	if completed {
		r.Done++
	}
}

// Statistics summarises completion across the collection.
type Statistics struct {
	Completion   Ratio `json:"completion"`
	HighPriority Ratio `json:"high_priority"`
	DueThisWeek  Ratio `json:"due_this_week"`
}

// WeekBounds returns the calendar day of now and the last day of its week.
// The week ends on the Sunday after today (today + 7 - weekday, Sunday = 0),
// so on a Sunday the window covers the following seven days.
func WeekBounds(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 0, 7-int(start.Weekday()))
	return start, end
}

// ComputeStatistics derives completion ratios from tasks. The due-this-week
// bucket holds tasks whose due date falls on or between today and the end of
// the week.
func ComputeStatistics(tasks []Task, now time.Time) Statistics {
	var stats Statistics
	start, end := WeekBounds(now)

	for _, t := range tasks {
		stats.Completion.add(t.Completed)

		if t.Priority.Is(PriorityHigh) {
			stats.HighPriority.add(t.Completed)
		}

		if due, ok := t.Due(now.Location()); ok && !due.Before(start) && !due.After(end) {
			stats.DueThisWeek.add(t.Completed)
		}
	}

	return stats
}

// EmptyMessage explains an empty visible list for the given view.
func EmptyMessage(v ViewState) string {
	if v.SearchQuery != "" {
		switch v.Filter {
		case FilterCompleted:
			return fmt.Sprintf("No completed task matches %q", v.SearchQuery)
		case FilterActive:
			return fmt.Sprintf("No active task matches %q", v.SearchQuery)
		case FilterAll:
			return fmt.Sprintf("No task found for %q", v.SearchQuery)
		default:
			return fmt.Sprintf("No task found in the %q category", v.Filter)
		}
	}

	switch v.Filter {
	case FilterCompleted:
		return "No completed tasks available"
	case FilterActive:
		return "No active tasks available"
	default:
		return "No tasks found"
	}
}
