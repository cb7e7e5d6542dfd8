// Package manager owns the in-memory task collection and its persistence
// round-trip.
//
// A Manager lives for a single invocation: it's loaded from the repository,
// mutated by appending and explicitly saved. Anything added and not saved is
// lost. Views never mutate the collection and return copies.
package manager

import (
	"context"
	"fmt"
	"sort"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/storage"
)

// ManagerConfig is the configuration for the task manager.
type ManagerConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ManagerConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "manager.Manager"})
	return nil
}

// Manager is an ordered task collection backed by a repository.
type Manager struct {
	tasks  []model.Task
	repo   storage.Repository
	logger log.Logger
}

// NewManager returns an empty manager, use Load to fill it from the repository.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Manager{
		tasks:  []model.Task{},
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Load creates a manager and loads the whole collection from the repository.
func Load(ctx context.Context, cfg ManagerConfig) (*Manager, error) {
	m, err := NewManager(cfg)
	if err != nil {
		return nil, err
	}

	if err := m.Load(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

// Load replaces the in-memory collection with the stored one.
func (m *Manager) Load(ctx context.Context) error {
	tasks, err := m.repo.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("could not load tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	m.tasks = tasks
	m.logger.Debugf("Loaded %d tasks", len(tasks))
	return nil
}

// Save replaces the stored collection with the in-memory one.
func (m *Manager) Save(ctx context.Context) error {
	if err := m.repo.SaveTasks(ctx, m.All()); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}

	m.logger.Debugf("Saved %d tasks", len(m.tasks))
	return nil
}

// Add appends a task at the end of the collection. It's not persisted until Save.
func (m *Manager) Add(t model.Task) {
	m.tasks = append(m.tasks, t.Clone())
}

// Len returns the number of tasks.
func (m *Manager) Len() int { return len(m.tasks) }

// All returns every task in insertion order.
func (m *Manager) All() []model.Task {
	return m.filter(func(model.Task) bool { return true })
}

// Pending returns the not completed tasks in insertion order.
func (m *Manager) Pending() []model.Task {
	return m.filter(func(t model.Task) bool { return !t.Completed })
}

// Completed returns the completed tasks in insertion order.
func (m *Manager) Completed() []model.Task {
	return m.filter(func(t model.Task) bool { return t.Completed })
}

// ByDueDate returns every task sorted ascending by due date. Tasks without due
// date go first, ties keep insertion order.
func (m *Manager) ByDueDate() []model.Task {
	tasks := m.All()
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DueBefore(tasks[j]) })
	return tasks
}

// View returns the view selected by the filter.
func (m *Manager) View(f model.Filter) ([]model.Task, error) {
	switch f {
	case model.FilterAll:
		return m.All(), nil
	case model.FilterPending:
		return m.Pending(), nil
	case model.FilterCompleted:
		return m.Completed(), nil
	case model.FilterDueDate:
		return m.ByDueDate(), nil
	}
	return nil, fmt.Errorf("unknown filter %q: %w", f, model.ErrInvalidInput)
}

func (m *Manager) filter(keep func(model.Task) bool) []model.Task {
	res := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if keep(t) {
			res = append(res, t.Clone())
		}
	}
	return res
}
