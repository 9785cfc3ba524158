package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *taskboard.App

	file iojson.FileReader[[]task.Task]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *taskboard.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import tasks from a JSON array",
		UsageText: "taskboard import [-f tasks.json]",
		Description: `Reads a JSON array of tasks in the stored format from a file or stdin.

Tasks whose id already exists are skipped. Imported tasks are placed at the top
of the list in file order.

Example:
  taskboard ls --json | jq -s . > backup.json
  taskboard --data-dir /tmp/other import -f backup.json`,
		Flags: []cli.Flag{
			cmd.file.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.file.Read()
	if err != nil {
		return err
	}

	res, err := cmd.app.Tasks.Import(logging.WithCommand(ctx, "import"), tasks)
	if err != nil {
		return fmt.Errorf("import tasks: %w", err)
	}

	printSuccess(c.Root().Writer, "Import complete", fmt.Sprintf("%d added, %d skipped", res.Added, res.Skipped))
	return nil
}
