package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type CategoriesCmd struct {
	flags *Flags
	app   *taskboard.App

	jsonOutput bool
}

// CategoryCount is one row of the categories listing.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewCategoriesCmd creates a new categories command
func NewCategoriesCmd(flags *Flags, app *taskboard.App) *CategoriesCmd {
	return &CategoriesCmd{flags: flags, app: app}
}

// Register adds the categories command to the application
func (cmd *CategoriesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "categories",
		Aliases:   []string{"cats"},
		Usage:     "List categories with task counts",
		UsageText: "taskboard categories [--json]",
		Flags: []cli.Flag{
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

func (cmd *CategoriesCmd) run(_ context.Context, c *cli.Command) error {
	counts := cmd.app.Store.CategoryCounts()
	out := c.Root().Writer

	rows := make([]CategoryCount, 0, len(counts))
	for _, name := range cmd.app.Store.Categories() {
		rows = append(rows, CategoryCount{Name: name, Count: counts[name]})
	}

	if cmd.jsonOutput {
		for _, r := range rows {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode category: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tTASKS")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", r.Name, r.Count)
	}
	return w.Flush()
}
