package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/slok/todo/internal/model"
)

// PrettyPrinter prints tasks as styled blocks. Styles are dropped when the
// writer is not a terminal.
type PrettyPrinter struct {
	writer io.Writer

	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	mutedStyle   lipgloss.Style
	doneStyle    lipgloss.Style
	pendingStyle lipgloss.Style
}

// NewPrettyPrinter creates a new pretty printer.
func NewPrettyPrinter(w io.Writer) *PrettyPrinter {
	r := lipgloss.NewRenderer(w)
	return &PrettyPrinter{
		writer:       w,
		titleStyle:   r.NewStyle().Bold(true),
		labelStyle:   r.NewStyle().Foreground(lipgloss.Color("12")),
		mutedStyle:   r.NewStyle().Faint(true),
		doneStyle:    r.NewStyle().Foreground(lipgloss.Color("42")),
		pendingStyle: r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// PrintTasks prints the tasks in order.
func (p *PrettyPrinter) PrintTasks(tasks []model.Task) error {
	for i, t := range tasks {
		status := p.pendingStyle.Render("[ ]")
		if t.Completed {
			status = p.doneStyle.Render("[x]")
		}

		description := p.mutedStyle.Render(noDescription)
		if t.Description != nil {
			description = *t.Description
		}
		due := p.mutedStyle.Render(noDueDate)
		if t.DueDate != nil {
			due = FormatTimestamp(*t.DueDate)
		}

		_, err := fmt.Fprintf(p.writer, "%s %s %s\n    %s %s\n    %s %s\n\n",
			status,
			p.mutedStyle.Render(fmt.Sprintf("%d.", i+1)),
			p.titleStyle.Render(t.Title),
			p.labelStyle.Render("Description:"), description,
			p.labelStyle.Render("Due Date:"), due,
		)
		if err != nil {
			return fmt.Errorf("could not print task: %w", err)
		}
	}

	return nil
}

// PrintMessage prints a simple text message.
func (p *PrettyPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(p.writer, p.titleStyle.Render(msg))
	return err
}
