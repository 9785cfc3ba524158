package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// ValidationError is a single failed configuration check.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskboard config validate [options]",
				Description: "Validates the configuration file, the data directory, and the storage backend file.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	errs := collectValidationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []ValidationError          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(errs) == 0,
			Errors:   errs,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
		if len(errs) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	return outputValidationText(c.Root().Writer, cfg, errs, warnings)
}

// collectValidationErrors flattens criterio field errors into rows. Other
// errors become a single row without a field.
func collectValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
		}
		return out
	}

	return []ValidationError{{Message: err.Error()}}
}

func outputValidationText(w io.Writer, cfg *config.Config, errs []ValidationError, warnings []config.ValidationWarning) error {
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.TextMutedStyle.Render("backend:"), cfg.Storage.Backend)
	if path := cfg.BackendPath(); path != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.TextMutedStyle.Render("path:"), path)
	}

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.PriorityMediumStyle.Render("!"), warn.Category, warn.Message)
	}

	for _, e := range errs {
		label := e.Field
		if label == "" {
			label = "config"
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.FormErrorStyle.Render("✗"), label, e.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(errs) == 0 {
		printSuccess(w, "Configuration is valid", "")
		return nil
	}

	_, _ = fmt.Fprintf(w, "%d error(s) found\n", len(errs))
	return cli.Exit("", 1)
}
