package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/foldergen-labs/foldergen/internal/scaffold"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
)

// isTerminal reports whether w is an interactive terminal. Styling is only
// applied there so piped output stays plain.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func render(w io.Writer, style lipgloss.Style, text string) string {
	if !isTerminal(w) {
		return text
	}
	return style.Render(text)
}

func printGenerateResult(w io.Writer, req scaffold.Request, result *scaffold.Result) {
	if result.Status == scaffold.StatusNoop {
		fmt.Fprintln(w, render(w, warnStyle, "Nothing selected; no folders created."))
		return
	}

	fmt.Fprintln(w, render(w, successStyle, fmt.Sprintf("Generated %s under %s", req.Categories, req.BaseDir)))
	for _, dir := range result.Dirs {
		fmt.Fprintf(w, "  %s/\n", relTo(req.BaseDir, dir))
	}
	for _, file := range result.Files {
		fmt.Fprintf(w, "  %s\n", relTo(req.BaseDir, file))
	}
	if n := len(result.Existing); n > 0 {
		fmt.Fprintln(w, render(w, mutedStyle, fmt.Sprintf("  (%d placeholder files already present)", n)))
	}
}

func printPlan(w io.Writer, steps []scaffold.Step) {
	if len(steps) == 0 {
		fmt.Fprintln(w, render(w, warnStyle, "Nothing selected; no folders would be created."))
		return
	}
	fmt.Fprintln(w, render(w, mutedStyle, "Dry run, nothing written:"))
	for _, step := range steps {
		switch step.Kind {
		case scaffold.StepDir:
			fmt.Fprintf(w, "  mkdir  %s\n", filepath.ToSlash(step.Path))
		case scaffold.StepPlaceholder:
			fmt.Fprintf(w, "  touch  %s\n", filepath.ToSlash(step.Path))
		}
	}
}

func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
