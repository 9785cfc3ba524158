package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *taskboard.App

	jsonOutput bool
	width      int
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *taskboard.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show completion statistics",
		UsageText: "taskboard stats [--json]",
		Description: `Reports the share of completed tasks, completed high-priority tasks, and
completed tasks due between today and the coming Sunday.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width for the rendered report",
				Value:       80,
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(_ context.Context, c *cli.Command) error {
	stats := cmd.app.Tasks.Statistics()
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, stats)
	}

	md := statsMarkdown(stats, cmd.app.Store.CategoryCounts(), cmd.app.Store.Categories())

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(cmd.width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, printing raw markdown")
		_, err = fmt.Fprint(out, md)
		return err
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		_, err = fmt.Fprint(out, md)
		return err
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}

// statsMarkdown renders the statistics report as markdown.
func statsMarkdown(s task.Statistics, counts map[string]int, categories []string) string {
	var b strings.Builder

	b.WriteString("# Statistics\n\n")
	b.WriteString("| Metric | Done | Total | Percent |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	writeRatioRow(&b, "Completed", s.Completion)
	writeRatioRow(&b, "High priority", s.HighPriority)
	writeRatioRow(&b, "Due this week", s.DueThisWeek)

	if len(categories) > 0 {
		b.WriteString("\n## Categories\n\n")
		for _, c := range categories {
			fmt.Fprintf(&b, "- **%s**: %d\n", c, counts[c])
		}
	}

	return b.String()
}

func writeRatioRow(b *strings.Builder, label string, r task.Ratio) {
	fmt.Fprintf(b, "| %s | %d | %d | %.0f%% |\n", label, r.Done, r.Total, r.Percent())
}
