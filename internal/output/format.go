// Package output renders tasks for the command-line client.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"task-api/internal/model"
)

const emptyList = "(no tasks)"

type styles struct {
	id        lipgloss.Style
	done      lipgloss.Style
	pending   lipgloss.Style
	title     lipgloss.Style
	doneTitle lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		id:        lipgloss.NewStyle().Bold(true),
		done:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		title:     lipgloss.NewStyle(),
		doneTitle: lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
}

// Printer writes task lines. Styling is only applied when the destination
// is a terminal, so piped output stays plain.
type Printer struct {
	w      io.Writer
	styled bool
	st     styles
}

func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, styled: styled, st: defaultStyles()}
}

// Tasks prints one line per task: "{ID:>4}  [x] {TITLE}".
func (p *Printer) Tasks(tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.w, emptyList)
		return
	}
	for _, t := range tasks {
		p.Task(t)
	}
}

func (p *Printer) Task(t model.Task) {
	id := fmt.Sprintf("%4d", t.ID)
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	title := normalizeTitle(t.Title)

	if p.styled {
		id = p.st.id.Render(id)
		if t.Completed {
			mark = p.st.done.Render(mark)
			title = p.st.doneTitle.Render(title)
		} else {
			mark = p.st.pending.Render(mark)
			title = p.st.title.Render(title)
		}
	}
	fmt.Fprintf(p.w, "%s  %s %s\n", id, mark, title)
}

// normalizeTitle keeps each task on one line and gives blank titles a label.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
