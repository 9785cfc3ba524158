package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/validate"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type AddCmd struct {
	flags *Flags
	app   *taskboard.App

	// Command-specific flags
	input       validate.TaskInput
	interactive bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskboard.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Create a task",
		UsageText: "taskboard add --title <title> --category <category> [options]",
		Description: `Creates a task at the top of the list.

Title and category are required. Priority defaults to medium. The due date
uses the YYYY-MM-DD format and cannot be in the past.

Use --interactive to fill the fields in a form instead.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "task title",
				Destination: &cmd.input.Title,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (high, medium, low)",
				Value:       "medium",
				Destination: &cmd.input.Priority,
			},
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"C"},
				Usage:       "category label",
				Destination: &cmd.input.Category,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date (YYYY-MM-DD)",
				Destination: &cmd.input.DueDate,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "prompt for fields in a form",
				Destination: &cmd.interactive,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	if cmd.interactive {
		if err := runTaskForm("New task", &cmd.input, cmd.app.Tasks.Now()); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	t, err := cmd.app.Tasks.Add(ctx, cmd.input)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	printSuccess(c.Root().Writer, "Task created", t.ID)
	return nil
}
