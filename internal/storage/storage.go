package storage

import (
	"context"

	"github.com/slok/todo/internal/model"
)

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name Repository --filename mocks.go

// Repository is the interface for task collection persistence.
//
// Persistence is whole-collection: ListTasks returns every stored task in
// insertion order and SaveTasks replaces the stored collection with the received
// one. A missing backing store is not an error, ListTasks returns an empty
// collection.
//
// Implementations don't guard against concurrent processes using the same
// store, the last save wins.
type Repository interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
}
