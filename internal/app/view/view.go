package view

import (
	"context"
	"fmt"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/manager"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/storage"
)

// ServiceConfig is the configuration for the view service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.View"})

	return nil
}

// Service returns views of the stored tasks.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new view service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the view request parameters.
type Request struct {
	// Filter selects the view, empty means all.
	Filter model.Filter
}

// Run loads the tasks and returns the selected view.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	filter := req.Filter
	if filter == "" {
		filter = model.FilterAll
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger.WithCtxValues(ctx)
	logger.Debugf("viewing tasks with filter: %s", filter)

	m, err := manager.Load(ctx, manager.ManagerConfig{
		Repository: s.repo,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	tasks, err := m.View(filter)
	if err != nil {
		return nil, err
	}

	logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}
