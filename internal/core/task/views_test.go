package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Task {
	return []Task{
		{ID: "t1", Title: "Write report", Category: "Work", Completed: false},
		{ID: "t2", Title: "Fix sink", Category: "Home", Completed: true},
	}
}

func TestFilterTasks(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		query  string
		want   []string
	}{
		{"all", FilterAll, "", []string{"t1", "t2"}},
		{"active", FilterActive, "", []string{"t1"}},
		{"completed", FilterCompleted, "", []string{"t2"}},
		{"category", "Home", "", []string{"t2"}},
		{"category is case sensitive", "home", "", []string{}},
		{"search matches category case-insensitively", FilterAll, "work", []string{"t1"}},
		{"search matches title", FilterAll, "SINK", []string{"t2"}},
		{"filter and search both apply", FilterCompleted, "report", []string{}},
		{"unknown category", "Garden", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTasks(filterFixture(), tt.filter, tt.query)))
		})
	}
}

func TestFilterTasks_StatusKeywordShadowsCategory(t *testing.T) {
	tasks := []Task{
		{ID: "x", Category: "active", Completed: true},
		{ID: "y", Category: "Work"},
	}

	// "active" resolves to the status keyword, not the category of the same name
	assert.Equal(t, []string{"y"}, ids(FilterTasks(tasks, FilterActive, "")))
}

func TestCountCategories(t *testing.T) {
	tasks := []Task{
		{ID: "1", Category: "Work"},
		{ID: "2", Category: "Home"},
		{ID: "3", Category: "Work"},
		{ID: "4"},
	}

	assert.Equal(t, map[string]int{"Work": 2, "Home": 1}, CountCategories(tasks))
	assert.Equal(t, []string{"Work", "Home"}, DistinctCategories(tasks))
	assert.Empty(t, CountCategories(nil))
}

func TestComputeStatistics(t *testing.T) {
	// Wednesday; the week runs through Sunday 2026-10-18.
	now := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

	t.Run("empty collection", func(t *testing.T) {
		stats := ComputeStatistics(nil, now)
		assert.Zero(t, stats.Completion.Value())
		assert.Zero(t, stats.HighPriority.Value())
		assert.Zero(t, stats.DueThisWeek.Value())
		assert.Zero(t, stats.Completion.Percent())
	})

	t.Run("ratios", func(t *testing.T) {
		tasks := []Task{
			{ID: "1", Priority: PriorityHigh, Completed: true, DueDate: "2026-10-14"},
			{ID: "2", Priority: "high", DueDate: "2026-10-18"},
			{ID: "3", Priority: PriorityLow, Completed: true, DueDate: "2026-10-19"},
			{ID: "4", Priority: PriorityMedium, DueDate: "2026-10-13"},
			{ID: "5", Priority: PriorityMedium, DueDate: "not-a-date"},
		}

		stats := ComputeStatistics(tasks, now)
		assert.Equal(t, Ratio{Done: 2, Total: 5}, stats.Completion)
		assert.Equal(t, Ratio{Done: 1, Total: 2}, stats.HighPriority)
		assert.Equal(t, Ratio{Done: 1, Total: 2}, stats.DueThisWeek)
		assert.InDelta(t, 40.0, stats.Completion.Percent(), 0.001)
		assert.InDelta(t, 0.5, stats.HighPriority.Value(), 0.001)
	})
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantEnd string
	}{
		{"wednesday", time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), "2026-10-18"},
		{"saturday", time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), "2026-10-18"},
		{"sunday rolls to next sunday", time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), "2026-10-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.now)
			assert.Equal(t, tt.now.Format(DateLayout), start.Format(DateLayout))
			assert.Equal(t, tt.wantEnd, end.Format(DateLayout))
		})
	}
}

func TestEmptyMessage(t *testing.T) {
	tests := []struct {
		view ViewState
		want string
	}{
		{ViewState{Filter: FilterAll}, "No tasks found"},
		{ViewState{Filter: FilterActive}, "No active tasks available"},
		{ViewState{Filter: FilterCompleted}, "No completed tasks available"},
		{ViewState{Filter: "Work"}, "No tasks found"},
		{ViewState{Filter: FilterAll, SearchQuery: "milk"}, `No task found for "milk"`},
		{ViewState{Filter: FilterActive, SearchQuery: "milk"}, `No active task matches "milk"`},
		{ViewState{Filter: FilterCompleted, SearchQuery: "milk"}, `No completed task matches "milk"`},
		{ViewState{Filter: "Home", SearchQuery: "milk"}, `No task found in the "Home" category`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EmptyMessage(tt.view))
		})
	}
}
