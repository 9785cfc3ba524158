package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
)

func printSuccess(w io.Writer, msg, detail string) {
	line := styles.CommandHeaderStyle.Render("✓ " + msg)
	if detail != "" {
		line += " " + styles.TextMutedStyle.Render(detail)
	}
	_, _ = fmt.Fprintln(w, line)
}

// isTerminal reports whether w is an interactive terminal. Anything other
// than an *os.File counts as a pipe.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func statusMark(t task.Task) string {
	if t.Completed {
		return styles.IconChecked
	}
	return styles.IconUnchecked
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
