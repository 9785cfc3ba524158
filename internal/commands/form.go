package commands

import (
	"time"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/validate"
)

func priorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		opts = append(opts, huh.NewOption(string(p), string(p)))
	}
	return opts
}

// runTaskForm prompts for every task field, starting from the values already
// in in. Edits happen in place.
func runTaskForm(title string, in *validate.TaskInput, now time.Time) error {
	if p, err := task.ParsePriority(in.Priority); err == nil {
		in.Priority = string(p)
	} else {
		in.Priority = string(task.DefaultPriority)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.Title).
				Value(&in.Title),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&in.Priority),
			huh.NewInput().
				Title("Category").
				Validate(validate.Category).
				Value(&in.Category),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, leave empty for none").
				Validate(func(s string) error { return validate.DueDate(s, now) }).
				Value(&in.DueDate),
		).Title(title),
	).WithTheme(huh.ThemeCharm()).Run()
}
