package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/validate"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type EditCmd struct {
	flags *Flags
	app   *taskboard.App

	interactive bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *taskboard.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change fields of a task",
		UsageText: "taskboard edit <id> [--title ..] [--priority ..] [--category ..] [--due ..] [--done|--undone]",
		Description: `Updates only the fields whose flags are given. Pass --due "" to clear the
due date. The id may be any unique prefix.

Use --interactive to edit all fields in a form prefilled with the current values.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "new title"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "new priority (high, medium, low)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: "new category"},
			&cli.StringFlag{Name: "due", Aliases: []string{"d"}, Usage: "new due date (YYYY-MM-DD, empty clears)"},
			&cli.BoolFlag{Name: "done", Usage: "mark completed"},
			&cli.BoolFlag{Name: "undone", Usage: "mark not completed"},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "edit fields in a form",
				Destination: &cmd.interactive,
			},
		},
		ShellComplete: TaskIDCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("edit requires exactly one task id")
	}

	t, err := cmd.app.Tasks.Resolve(c.Args().First())
	if err != nil {
		return err
	}
	ctx = logging.WithCommand(ctx, "edit")

	var patch task.Patch
	if cmd.interactive {
		patch, err = cmd.formPatch(t)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	} else {
		patch, err = patchFromFlags(c)
		if err != nil {
			return err
		}
	}

	updated, err := cmd.app.Tasks.Edit(ctx, t.ID, patch)
	if err != nil {
		return fmt.Errorf("edit task: %w", err)
	}

	printSuccess(c.Root().Writer, "Task updated", updated.ID)
	return nil
}

func (cmd *EditCmd) formPatch(t task.Task) (task.Patch, error) {
	in := validate.TaskInput{
		Title:    t.Title,
		Priority: string(t.Priority),
		Category: t.Category,
		DueDate:  t.DueDate,
	}
	if err := runTaskForm("Edit task", &in, cmd.app.Tasks.Now()); err != nil {
		return task.Patch{}, err
	}
	return patchFromInput(in)
}

// patchFromFlags builds a patch from the flags that were explicitly set.
func patchFromFlags(c *cli.Command) (task.Patch, error) {
	var patch task.Patch

	if c.IsSet("title") {
		v := c.String("title")
		patch.Title = &v
	}
	if c.IsSet("priority") {
		p, err := task.ParsePriority(c.String("priority"))
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if c.IsSet("category") {
		v := c.String("category")
		patch.Category = &v
	}
	if c.IsSet("due") {
		v := c.String("due")
		patch.DueDate = &v
	}

	switch {
	case c.Bool("done") && c.Bool("undone"):
		return patch, fmt.Errorf("--done and --undone cannot be combined")
	case c.Bool("done"):
		v := true
		patch.Completed = &v
	case c.Bool("undone"):
		v := false
		patch.Completed = &v
	}

	return patch, nil
}

// patchFromInput converts a complete form into a patch touching every
// editable field.
func patchFromInput(in validate.TaskInput) (task.Patch, error) {
	p, err := task.ParsePriority(in.Priority)
	if err != nil {
		return task.Patch{}, err
	}
	return task.Patch{
		Title:    &in.Title,
		Priority: &p,
		Category: &in.Category,
		DueDate:  &in.DueDate,
	}, nil
}
