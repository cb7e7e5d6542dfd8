package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/slok/todo/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
	now    func() time.Time
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, now: time.Now}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "#\tTITLE\tDUE\tCOMPLETED\tDESCRIPTION")

	// Print rows
	now := t.now()
	for i, task := range tasks {
		due := "-"
		if task.DueDate != nil {
			due = fmt.Sprintf("%s (%s)", FormatTimestamp(*task.DueDate), Relative(*task.DueDate, now))
		}
		description := "-"
		if task.Description != nil {
			description = *task.Description
		}
		completed := "no"
		if task.Completed {
			completed = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, task.Title, due, completed, description)
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
