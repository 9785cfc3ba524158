package tui

import (
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/validate"
)

const (
	fieldTitle = iota
	fieldPriority
	fieldCategory
	fieldDueDate
	fieldCount
)

var (
	fieldLabels = [fieldCount]string{"Title", "Priority", "Category", "Due date"}
	fieldKeys   = [fieldCount]string{"title", "priority", "category", "dueDate"}
)

// taskForm edits the four user-facing task fields. editID is empty when the
// form creates a new task.
type taskForm struct {
	editID string
	inputs [fieldCount]textinput.Model
	focus  int
	errs   map[string]string
}

func newTaskForm() taskForm {
	f := taskForm{errs: map[string]string{}}

	placeholders := [fieldCount]string{
		"What needs doing?",
		"HIGH, MEDIUM or LOW",
		"Work, Home, ...",
		"YYYY-MM-DD (optional)",
	}

	inputStyles := textinput.DefaultStyles(styles.CurrentPalette.Dark)
	inputStyles.Cursor.Color = styles.ColorPrimary

	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		in.SetWidth(40)
		in.SetStyles(inputStyles)
		f.inputs[i] = in
	}
	f.inputs[fieldPriority].SetValue(string(task.DefaultPriority))
	f.inputs[fieldDueDate].CharLimit = len(task.DateLayout)
	f.inputs[fieldTitle].Focus()

	return f
}

// newEditForm returns a form prefilled from t.
func newEditForm(t task.Task) taskForm {
	f := newTaskForm()
	f.editID = t.ID

	priority := string(t.Priority)
	if priority == "" {
		priority = string(task.DefaultPriority)
	}

	f.inputs[fieldTitle].SetValue(t.Title)
	f.inputs[fieldPriority].SetValue(priority)
	f.inputs[fieldCategory].SetValue(t.Category)
	f.inputs[fieldDueDate].SetValue(t.DueDate)
	return f
}

func (f taskForm) editing() bool {
	return f.editID != ""
}

// Input returns the field values with surrounding whitespace removed.
func (f taskForm) Input() validate.TaskInput {
	return validate.TaskInput{
		Title:    strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Priority: strings.TrimSpace(f.inputs[fieldPriority].Value()),
		Category: strings.TrimSpace(f.inputs[fieldCategory].Value()),
		DueDate:  strings.TrimSpace(f.inputs[fieldDueDate].Value()),
	}
}

// Validate checks every field and records per-field messages. It reports
// whether the form is valid.
func (f *taskForm) Validate(now time.Time) bool {
	f.errs = map[string]string{}

	err := validate.Task(f.Input(), now)
	if err == nil {
		return true
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			f.errs[fe.Field] = fe.Err.Error()
		}
	} else {
		f.errs[fieldKeys[fieldTitle]] = err.Error()
	}
	return false
}

func (f *taskForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// cyclePriority steps the priority field through the known values.
func (f *taskForm) cyclePriority(delta int) {
	all := task.Priorities()
	current, err := task.ParsePriority(f.inputs[fieldPriority].Value())
	idx := 0
	if err == nil {
		for i, p := range all {
			if p == current {
				idx = i
			}
		}
	}
	idx = (idx + delta + len(all)) % len(all)
	f.inputs[fieldPriority].SetValue(string(all[idx]))
}

// Update routes navigation keys and forwards the rest to the focused input.
func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil
		case "left", "right":
			if f.focus == fieldPriority {
				delta := 1
				if keyMsg.String() == "left" {
					delta = -1
				}
				f.cyclePriority(delta)
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form body.
func (f taskForm) View() string {
	title := "Add New Task"
	if f.editing() {
		title = "Edit Task"
	}

	rows := []string{styles.ModalTitleStyle.Render(title), ""}
	for i := range f.inputs {
		fieldStyle := styles.FormFieldStyle
		if i == f.focus {
			fieldStyle = styles.FormFieldFocusedStyle
		}

		body := styles.StatsLabelStyle.Render(fieldLabels[i]) + "\n" + f.inputs[i].View()
		if msg, ok := f.errs[fieldKeys[i]]; ok {
			body += "\n" + styles.FormErrorStyle.Render(msg)
		}
		rows = append(rows, fieldStyle.Render(body))
	}

	rows = append(rows, "", styles.FormHelpStyle.Render(strings.Join([]string{
		"tab next",
		"←/→ priority",
		"enter save",
		"esc cancel",
	}, "  ")))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
