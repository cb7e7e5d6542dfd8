package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	// Tasks are the initial stored tasks, if nil the store starts empty.
	Tasks  []model.Task
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	tasks  []model.Task
	saves  int
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		tasks:  cloneTasks(cfg.Tasks),
		logger: cfg.Logger,
	}, nil
}

// ListTasks returns a copy of the stored tasks.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneTasks(r.tasks), nil
}

// SaveTasks replaces the stored tasks.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = cloneTasks(tasks)
	r.saves++
	r.logger.Debugf("Saved %d tasks in repository", len(tasks))

	return nil
}

// Saves returns how many times the collection has been saved.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.saves
}

func cloneTasks(tasks []model.Task) []model.Task {
	res := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, t.Clone())
	}
	return res
}
