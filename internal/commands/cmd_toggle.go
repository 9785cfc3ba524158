package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type ToggleCmd struct {
	flags *Flags
	app   *taskboard.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *taskboard.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Flip a task between active and completed",
		UsageText: "taskboard toggle <id>",
		ShellComplete: TaskIDCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("toggle requires exactly one task id")
	}

	t, err := cmd.app.Tasks.Resolve(c.Args().First())
	if err != nil {
		return err
	}

	updated, err := cmd.app.Tasks.Toggle(logging.WithCommand(ctx, "toggle"), t.ID)
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}

	state := "active"
	if updated.Completed {
		state = "completed"
	}
	printSuccess(c.Root().Writer, "Task marked "+state, updated.ID)
	return nil
}
