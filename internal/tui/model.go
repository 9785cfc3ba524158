// Package tui implements the interactive task list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmDelete
	modeForm
)

// Opts configures the TUI.
type Opts struct {
	// Theme is the initial palette name. The toggle is never persisted.
	Theme string
}

// Model is the root bubbletea model.
type Model struct {
	ctx   context.Context
	app   *taskboard.App
	keys  keyMap
	log   zerolog.Logger
	theme string

	mode   mode
	cursor int
	search textinput.Model
	form   taskForm

	pendingDelete task.Task

	status    string
	statusErr bool

	width  int
	height int
}

// New creates the model. ctx is used for every store write.
func New(ctx context.Context, app *taskboard.App, opts Opts) Model {
	theme := opts.Theme
	if _, ok := styles.GetPalette(theme); !ok {
		theme = styles.DefaultTheme
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search title or category"
	search.SetWidth(40)

	m := Model{
		ctx:    logging.WithCommand(ctx, "tui"),
		app:    app,
		keys:   defaultKeyMap(),
		log:    logging.Component("tui"),
		theme:  theme,
		search: search,
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Theme returns the active palette name.
func (m Model) Theme() string {
	return m.theme
}

// visible returns the tasks shown under the current filter and search.
func (m Model) visible() []task.Task {
	return m.app.Store.Visible()
}

// selected returns the task under the cursor.
func (m Model) selected() (task.Task, bool) {
	v := m.visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return task.Task{}, false
	}
	return v[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	m.cursor = max(0, min(m.cursor, n-1))
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

// setResult reports a service error or clears the status line. Save
// failures still leave the change in place, so the list stays consistent.
func (m *Model) setResult(err error, okMsg string) {
	if err == nil {
		m.setStatus(okMsg)
		return
	}
	m.log.Warn().Ctx(m.ctx).Err(err).Msg("task operation failed")
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) applyTheme() {
	p, _ := styles.GetPalette(m.theme)
	styles.SetTheme(p)

	searchStyles := textinput.DefaultStyles(p.Dark)
	searchStyles.Focused.Prompt = styles.CategoryStyle
	searchStyles.Cursor.Color = styles.ColorPrimary
	m.search.SetStyles(searchStyles)
}

// filterOptions lists the filter cycle: the status keywords followed by each
// category in first-appearance order.
func (m Model) filterOptions() []string {
	return append(task.StatusFilters(), m.app.Store.Categories()...)
}

func (m *Model) cycleFilter() {
	opts := m.filterOptions()
	idx := slices.Index(opts, m.app.Store.View().Filter)
	next := opts[(idx+1)%len(opts)]

	m.app.Store.SetFilter(next)
	m.cursor = 0
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			_, err := m.app.Tasks.Toggle(m.ctx, t.ID)
			m.setResult(err, "")
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.pendingDelete = t
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.MoveUp):
		m.move(-1)

	case key.Matches(msg, m.keys.MoveDown):
		m.move(1)

	case key.Matches(msg, m.keys.Filter):
		m.cycleFilter()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.app.Store.View().SearchQuery)
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Stats):
		m.app.Store.ToggleStats()

	case key.Matches(msg, m.keys.Theme):
		m.theme = styles.Opposite(m.theme)
		m.applyTheme()

	case key.Matches(msg, m.keys.Add):
		m.form = newTaskForm()
		m.mode = modeForm

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.form = newEditForm(t)
			m.mode = modeForm
		}
	}

	return m, nil
}

// move swaps the selected task with its visible neighbour. Positions are
// translated to the full collection so hidden tasks keep their places.
func (m *Model) move(delta int) {
	v := m.visible()
	target := m.cursor + delta
	if m.cursor < 0 || m.cursor >= len(v) || target < 0 || target >= len(v) {
		return
	}

	from := m.app.Store.IndexOf(v[m.cursor].ID)
	to := m.app.Store.IndexOf(v[target].ID)

	err := m.app.Tasks.Move(m.ctx, from, to)
	m.setResult(err, "")
	if errors.Is(err, taskboard.ErrInvalidPosition) {
		return
	}
	m.cursor = target
}

func (m Model) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.app.Store.SetSearchQuery("")
		m.search.Blur()
		m.mode = modeList
		m.cursor = 0
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.app.Store.SetSearchQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		t := m.pendingDelete
		_, err := m.app.Tasks.Delete(m.ctx, t.ID)
		m.setResult(err, fmt.Sprintf("Deleted %q", t.Title))
		m.clampCursor()
	case "n", "N", "esc", "q":
		m.setStatus("")
	default:
		return m, nil
	}

	m.pendingDelete = task.Task{}
	m.mode = modeList
	return m, nil
}

func (m Model) updateForm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if !m.form.Validate(m.app.Tasks.Now()) {
		return m, nil
	}

	in := m.form.Input()

	if !m.form.editing() {
		t, err := m.app.Tasks.Add(m.ctx, in)
		m.setResult(err, fmt.Sprintf("Added %q", t.Title))
		if t.ID != "" {
			m.cursor = max(0, slices.IndexFunc(m.visible(), func(v task.Task) bool { return v.ID == t.ID }))
		}
		m.mode = modeList
		return m, nil
	}

	priority, err := task.ParsePriority(in.Priority)
	if err != nil {
		m.form.errs[fieldKeys[fieldPriority]] = err.Error()
		return m, nil
	}

	updated, err := m.app.Tasks.Edit(m.ctx, m.form.editID, task.Patch{
		Title:    &in.Title,
		Priority: &priority,
		Category: &in.Category,
		DueDate:  &in.DueDate,
	})
	m.setResult(err, fmt.Sprintf("Updated %q", updated.Title))
	m.clampCursor()
	m.mode = modeList
	return m, nil
}
