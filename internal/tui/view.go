package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
)

const barWidth = 20

// View implements tea.Model.
func (m Model) View() tea.View {
	content := m.render()

	switch m.mode {
	case modeForm:
		content = m.overlay(content, m.form.View())
	case modeConfirmDelete:
		content = m.overlay(content, m.confirmView())
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	view := m.app.Store.View()

	sections := []string{
		styles.HeaderStyle.Render("taskboard"),
		m.filterBar(view),
	}

	if m.mode == modeSearch {
		sections = append(sections, m.search.View())
	} else if view.SearchQuery != "" {
		sections = append(sections, styles.TextMutedStyle.Render("search: "+view.SearchQuery))
	}

	if view.ShowStats {
		sections = append(sections, m.statsPanel())
	}

	sections = append(sections, "", m.list(view))

	if m.status != "" {
		style := styles.TextMutedStyle
		if m.statusErr {
			style = styles.FormErrorStyle
		}
		sections = append(sections, "", style.Render(m.status))
	}

	sections = append(sections, m.helpLine())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) filterBar(view task.ViewState) string {
	opts := m.filterOptions()
	parts := make([]string, 0, len(opts))
	counts := m.app.Store.CategoryCounts()

	for _, opt := range opts {
		label := opt
		if !task.IsStatusFilter(opt) {
			label = fmt.Sprintf("%s (%d)", opt, counts[opt])
		}
		if opt == view.Filter {
			parts = append(parts, styles.FilterActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.FilterNormalStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) list(view task.ViewState) string {
	tasks := m.visible()
	if len(tasks) == 0 {
		msg := task.EmptyMessage(view)
		if view.SearchQuery == "" && m.app.Store.Len() == 0 {
			msg += "\n" + styles.CategoryStyle.Render("press a to add your first task")
		}
		return styles.TextMutedStyle.Render(msg)
	}

	rows := make([]string, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, m.row(t, i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) row(t task.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.IconCursor + " "
	}

	title := styles.TitleStyle.Render(t.Title)
	if t.Completed {
		title = styles.CompletedTextStyle.Render(t.Title)
	}

	parts := []string{
		cursor + statusMark(t),
		priorityBadge(t.Priority),
		title,
	}
	if t.HasCategory() {
		parts = append(parts, styles.CategoryStyle.Render("#"+t.Category))
	}
	if t.DueDate != "" {
		parts = append(parts, styles.TextMutedStyle.Render(styles.IconDue+" "+t.DueDate))
	}

	line := strings.Join(parts, " ")
	if selected {
		return styles.SelectedRowStyle.Render(line)
	}
	return line
}

func statusMark(t task.Task) string {
	if t.Completed {
		return styles.IconChecked
	}
	return styles.IconUnchecked
}

func priorityBadge(p task.Priority) string {
	switch {
	case p.Is(task.PriorityHigh):
		return styles.PriorityHighStyle.Render("HIGH")
	case p.Is(task.PriorityLow):
		return styles.PriorityLowStyle.Render("LOW ")
	default:
		return styles.PriorityMediumStyle.Render("MED ")
	}
}

func (m Model) statsPanel() string {
	s := m.app.Tasks.Statistics()

	rows := []string{
		ratioRow("Completed", s.Completion),
		ratioRow("High priority", s.HighPriority),
		ratioRow("Due this week", s.DueThisWeek),
	}
	return styles.StatsBoxStyle.Render(strings.Join(rows, "\n"))
}

func ratioRow(label string, r task.Ratio) string {
	filled := int(r.Value()*barWidth + 0.5)
	bar := styles.BarFilledStyle.Render(strings.Repeat(styles.IconBarFull, filled)) +
		styles.BarEmptyStyle.Render(strings.Repeat(styles.IconBarEmpty, barWidth-filled))

	return fmt.Sprintf("%s %s %s %s",
		styles.StatsLabelStyle.Render(fmt.Sprintf("%-14s", label)),
		bar,
		styles.StatsValueStyle.Render(fmt.Sprintf("%3.0f%%", r.Percent())),
		styles.TextMutedStyle.Render(fmt.Sprintf("%d/%d", r.Done, r.Total)),
	)
}

func (m Model) confirmView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete task?"),
		"",
		m.pendingDelete.Title,
		"",
		styles.FormHelpStyle.Render("y delete  n cancel"),
	)
	return styles.ModalStyle.Render(body)
}

func (m Model) helpLine() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.HelpStyle.Render(strings.Join(parts, " • "))
}

// overlay draws the dialog centred over the background.
func (m Model) overlay(background, dialog string) string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		return background + "\n\n" + dialog
	}

	x := max(0, (width-lipgloss.Width(dialog))/2)
	y := max(0, (height-lipgloss.Height(dialog))/2)

	bgLayer := lipgloss.NewLayer(background)
	dialogLayer := lipgloss.NewLayer(dialog)
	dialogLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, dialogLayer).Render()
}
