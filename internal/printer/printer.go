package printer

import (
	"fmt"
	"io"

	"github.com/slok/todo/internal/model"
)

const (
	// FormatText prints each task as a block of labeled lines.
	FormatText = "text"
	// FormatTable prints tasks as a table.
	FormatTable = "table"
	// FormatJSON prints tasks as JSON.
	FormatJSON = "json"
	// FormatPretty prints each task as a styled block.
	FormatPretty = "pretty"
)

// Formats are all the supported output formats.
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatPretty}

const (
	noDescription = "No description"
	noDueDate     = "No due date"
)

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintTasks(tasks []model.Task) error
	PrintMessage(msg string) error
}

// New returns the printer for the format.
func New(format string, w io.Writer) (Printer, error) {
	switch format {
	case FormatText, "":
		return NewTextPrinter(w), nil
	case FormatTable:
		return NewTablePrinter(w), nil
	case FormatJSON:
		return NewJSONPrinter(w), nil
	case FormatPretty:
		return NewPrettyPrinter(w), nil
	}
	return nil, fmt.Errorf("unknown format %q: %w", format, model.ErrInvalidInput)
}

func descriptionOrDefault(t model.Task) string {
	if t.Description == nil {
		return noDescription
	}
	return *t.Description
}

func dueDateOrDefault(t model.Task) string {
	if t.DueDate == nil {
		return noDueDate
	}
	return FormatTimestamp(*t.DueDate)
}
