package printer

import (
	"fmt"
	"io"

	"github.com/slok/todo/internal/model"
)

// TextPrinter prints every task as a four line block followed by a blank line.
type TextPrinter struct {
	writer io.Writer
}

// NewTextPrinter creates a new text printer.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w}
}

// PrintTasks prints the tasks in order.
func (t *TextPrinter) PrintTasks(tasks []model.Task) error {
	for _, task := range tasks {
		_, err := fmt.Fprintf(t.writer, "Title: %s\nDescription: %s\nDue Date: %s\nCompleted: %t\n\n",
			task.Title,
			descriptionOrDefault(task),
			dueDateOrDefault(task),
			task.Completed,
		)
		if err != nil {
			return fmt.Errorf("could not print task: %w", err)
		}
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TextPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
