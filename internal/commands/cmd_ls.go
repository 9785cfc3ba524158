package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *taskboard.App

	// flags
	filter     string
	search     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskboard.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "taskboard ls [--filter <all|active|completed|category>] [--search <text>] [--json]",
		Description: `Displays tasks in list order with their position, id, status, priority,
category, and due date.

--filter accepts all, active, or completed. Any other value selects tasks in
that exact category. --search keeps tasks whose title or category contains
the text, ignoring case.

Output switches to JSON lines when --json is set or stdout is not a terminal.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "status keyword or category",
				Value:       task.FilterAll,
				Destination: &cmd.filter,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "case-insensitive text in title or category",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	store := cmd.app.Store
	store.SetFilter(cmd.filter)
	store.SetSearchQuery(cmd.search)

	visible := store.Visible()
	out := c.Root().Writer

	if cmd.jsonOutput || !isTerminal(out) {
		for _, t := range visible {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(visible) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, task.EmptyMessage(store.View()))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tID\tDONE\tPRIORITY\tCATEGORY\tDUE\tTITLE")
	for _, t := range visible {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			store.IndexOf(t.ID), t.ID, statusMark(t), t.Priority, orDash(t.Category), orDash(t.DueDate), t.Title)
	}
	return w.Flush()
}
