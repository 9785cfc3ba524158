package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/data/stores"
	"github.com/colonyops/taskboard/internal/taskboard"
)

var testNow = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyPress(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, string(r))
	}
	return m
}

func newTestModel(t *testing.T, seed ...task.Task) Model {
	t.Helper()
	t.Cleanup(func() {
		p, _ := styles.GetPalette(styles.DefaultTheme)
		styles.SetTheme(p)
	})

	ctx := context.Background()
	blobs := task.NewKVBlobStore(stores.NewMemoryBlobs(), "")
	require.NoError(t, blobs.Save(ctx, seed))

	store := task.NewStore(ctx, blobs)
	cfg := config.DefaultConfig()
	app := taskboard.NewApp(store, &cfg, nil, taskboard.WithClock(func() time.Time { return testNow }))

	return New(ctx, app, Opts{Theme: styles.DefaultTheme})
}

func mk(id, category string, completed bool) task.Task {
	return task.Task{
		ID:        id,
		Title:     "task " + id,
		Priority:  task.PriorityMedium,
		Category:  category,
		Completed: completed,
		CreatedAt: testNow,
	}
}

func order(m Model) []string {
	var ids []string
	for _, t := range m.app.Store.Tasks() {
		ids = append(ids, t.ID)
	}
	return ids
}

func render(m Model) string {
	return m.render()
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, mk("a", "", false), mk("b", "", false), mk("c", "", false))

	m = press(t, m, "j", "j", "j")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m = press(t, m, "k", "k", "k")
	assert.Equal(t, 0, m.cursor, "cursor stops at the first row")
}

func TestModel_Toggle(t *testing.T) {
	m := newTestModel(t, mk("a", "", false), mk("b", "", false))

	m = press(t, m, "j", "space")
	got, _ := m.app.Store.Get("b")
	assert.True(t, got.Completed)

	m = press(t, m, "x")
	got, _ = m.app.Store.Get("b")
	assert.False(t, got.Completed)
}

func TestModel_DeleteRequiresConfirm(t *testing.T) {
	m := newTestModel(t, mk("a", "", false), mk("b", "", false))

	m = press(t, m, "d")
	assert.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.confirmView(), "Delete task?")
	assert.True(t, m.View().AltScreen)

	m = press(t, m, "n")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 2, m.app.Store.Len())

	m = press(t, m, "j", "d", "y")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"a"}, order(m))
	assert.Equal(t, 0, m.cursor, "cursor clamps after removing the last row")
}

func TestModel_Reorder(t *testing.T) {
	m := newTestModel(t, mk("A", "", false), mk("B", "", false), mk("C", "", false))

	m = press(t, m, "J")
	assert.Equal(t, []string{"B", "A", "C"}, order(m))
	assert.Equal(t, 1, m.cursor, "cursor follows the moved task")

	m = press(t, m, "J")
	assert.Equal(t, []string{"B", "C", "A"}, order(m))

	m = press(t, m, "J")
	assert.Equal(t, []string{"B", "C", "A"}, order(m), "moving past the end is a no-op")

	m = press(t, m, "K", "K")
	assert.Equal(t, []string{"A", "B", "C"}, order(m))
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ReorderUnderFilterKeepsHiddenTasks(t *testing.T) {
	m := newTestModel(t, mk("A", "", false), mk("B", "", true), mk("C", "", false))

	m = press(t, m, "f")
	require.Equal(t, task.FilterActive, m.app.Store.View().Filter)

	m = press(t, m, "J")
	assert.Equal(t, []string{"B", "C", "A"}, order(m))

	var visible []string
	for _, v := range m.visible() {
		visible = append(visible, v.ID)
	}
	assert.Equal(t, []string{"C", "A"}, visible)
}

func TestModel_FilterCycle(t *testing.T) {
	m := newTestModel(t, mk("a", "Work", false), mk("b", "Home", true), mk("c", "Work", false))

	want := []string{
		task.FilterActive,
		task.FilterCompleted,
		"Work",
		"Home",
		task.FilterAll,
	}
	for _, w := range want {
		m = press(t, m, "f")
		assert.Equal(t, w, m.app.Store.View().Filter)
	}
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t, mk("a", "Work", false), mk("b", "Home", false))

	m = press(t, m, "/")
	require.Equal(t, modeSearch, m.mode)

	m = typeText(t, m, "wo")
	assert.Equal(t, "wo", m.app.Store.View().SearchQuery)
	require.Len(t, m.visible(), 1)
	assert.Equal(t, "a", m.visible()[0].ID)

	m = press(t, m, "enter")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "wo", m.app.Store.View().SearchQuery, "enter keeps the query")

	m = press(t, m, "/", "esc")
	assert.Empty(t, m.app.Store.View().SearchQuery, "esc clears the query")
	assert.Len(t, m.visible(), 2)
}

func TestModel_StatsPanel(t *testing.T) {
	m := newTestModel(t, mk("a", "", true), mk("b", "", false))

	assert.NotContains(t, render(m), "High priority")

	m = press(t, m, "s")
	assert.True(t, m.app.Store.View().ShowStats)
	out := render(m)
	assert.Contains(t, out, "High priority")
	assert.Contains(t, out, "1/2")

	m = press(t, m, "s")
	assert.False(t, m.app.Store.View().ShowStats)
}

func TestModel_ThemeToggle(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "t")
	assert.Equal(t, styles.ThemeLight, m.Theme())
	assert.Equal(t, styles.ThemeLight, styles.CurrentPalette.Name)

	m = press(t, m, "t")
	assert.Equal(t, styles.ThemeDark, m.Theme())
}

func TestModel_AddForm(t *testing.T) {
	m := newTestModel(t, mk("a", "Work", false))

	m = press(t, m, "a")
	require.Equal(t, modeForm, m.mode)

	m = typeText(t, m, "Buy milk")
	m = press(t, m, "tab", "tab")
	m = typeText(t, m, "Home")
	m = press(t, m, "tab")
	m = typeText(t, m, "2026-10-20")
	m = press(t, m, "enter")

	require.Equal(t, modeList, m.mode)
	require.Equal(t, 2, m.app.Store.Len())

	created := m.app.Store.Tasks()[0]
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "Home", created.Category)
	assert.Equal(t, task.PriorityMedium, created.Priority)
	assert.Equal(t, "2026-10-20", created.DueDate)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_AddFormShowsValidationErrors(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "a", "enter")
	assert.Equal(t, modeForm, m.mode, "invalid form stays open")
	assert.Contains(t, m.form.errs, "title")
	assert.Contains(t, m.form.errs, "category")
	assert.Equal(t, 0, m.app.Store.Len())

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 0, m.app.Store.Len())
}

func TestModel_EditForm(t *testing.T) {
	m := newTestModel(t, mk("a", "Work", false))

	m = press(t, m, "e")
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "task a", m.form.inputs[fieldTitle].Value(), "form is prefilled")
	assert.Equal(t, "MEDIUM", m.form.inputs[fieldPriority].Value())

	m = typeText(t, m, "!")
	m = press(t, m, "tab")
	m = press(t, m, "left")
	m = press(t, m, "enter")

	require.Equal(t, modeList, m.mode)
	got, ok := m.app.Store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "task a!", got.Title)
	assert.Equal(t, task.PriorityHigh, got.Priority)
	assert.Equal(t, "Work", got.Category)
	assert.Equal(t, testNow, got.CreatedAt)
}

func TestModel_EmptyState(t *testing.T) {
	m := newTestModel(t)
	out := render(m)
	assert.Contains(t, out, "No tasks found")
	assert.Contains(t, out, "press a to add your first task")

	m = newTestModel(t, mk("a", "Work", false))
	m = press(t, m, "f", "f")
	assert.Contains(t, render(m), "No completed tasks available")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
