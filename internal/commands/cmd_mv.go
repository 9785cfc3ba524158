package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type MvCmd struct {
	flags *Flags
	app   *taskboard.App
}

// NewMvCmd creates a new mv command
func NewMvCmd(flags *Flags, app *taskboard.App) *MvCmd {
	return &MvCmd{flags: flags, app: app}
}

// Register adds the mv command to the application
func (cmd *MvCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mv",
		Usage:     "Move a task to another position",
		UsageText: "taskboard mv <from> <to>",
		Description: `Moves the task at position <from> so it ends up at position <to>.

Positions are 0-based and refer to the full list as shown in the # column of
'taskboard ls' with no filter.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *MvCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("mv requires <from> and <to> positions")
	}

	from, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid from position %q", c.Args().Get(0))
	}
	to, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid to position %q", c.Args().Get(1))
	}

	if err := cmd.app.Tasks.Move(logging.WithCommand(ctx, "mv"), from, to); err != nil {
		return fmt.Errorf("move task: %w", err)
	}

	printSuccess(c.Root().Writer, "Task moved", fmt.Sprintf("%d → %d", from, to))
	return nil
}
