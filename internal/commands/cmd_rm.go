package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type RmCmd struct {
	flags *Flags
	app   *taskboard.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskboard.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete tasks",
		UsageText: "taskboard rm <id> [id...]",
		ShellComplete: TaskIDCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("rm requires at least one task id")
	}
	ctx = logging.WithCommand(ctx, "rm")

	for _, arg := range c.Args().Slice() {
		t, err := cmd.app.Tasks.Resolve(arg)
		if err != nil {
			return err
		}
		if _, err := cmd.app.Tasks.Delete(ctx, t.ID); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		printSuccess(c.Root().Writer, "Task deleted", t.ID)
	}

	return nil
}
