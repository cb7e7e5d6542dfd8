package model

import (
	"fmt"
	"time"
)

// Task represents a single to-do item.
//
// Identity is positional: a task is addressed by its index in the owning
// collection. ID is a surrogate key assigned on creation, it is kept for
// reference only and may be empty on tasks stored by older versions.
type Task struct {
	ID          string
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
}

// NewTask returns a new not completed task. Optional fields are carried as they
// are, nil means absent.
func NewTask(title string, description *string, dueDate *time.Time) Task {
	return Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
	}
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		dd := *t.DueDate
		c.DueDate = &dd
	}
	return c
}

// Validate checks the task is storable.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required: %w", ErrNotValid)
	}
	return nil
}

// DueBefore reports if t should be placed before o when ordering by due date.
// A missing due date ranks lower than any present one.
func (t Task) DueBefore(o Task) bool {
	switch {
	case t.DueDate == nil && o.DueDate == nil:
		return false
	case t.DueDate == nil:
		return true
	case o.DueDate == nil:
		return false
	}
	return t.DueDate.Before(*o.DueDate)
}

// Filter selects a view of the task collection.
type Filter string

const (
	// FilterAll selects every task in insertion order.
	FilterAll Filter = "all"
	// FilterPending selects the not completed tasks in insertion order.
	FilterPending Filter = "pending"
	// FilterCompleted selects the completed tasks in insertion order.
	FilterCompleted Filter = "completed"
	// FilterDueDate selects every task ordered by due date.
	FilterDueDate Filter = "due_date"
)

// Filters are all the supported filters.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterDueDate}

// FilterStrings returns the supported filters as strings.
func FilterStrings() []string {
	fs := make([]string, 0, len(Filters))
	for _, f := range Filters {
		fs = append(fs, string(f))
	}
	return fs
}

// Validate checks the filter is a known one.
func (f Filter) Validate() error {
	for _, known := range Filters {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("unknown filter %q: %w", f, ErrInvalidInput)
}
