package add

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/manager"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/storage"
)

// ServiceConfig is the configuration for the add service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
	// IDGenerator returns new task IDs, defaults to ULIDs.
	IDGenerator func() string
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Add"})

	if c.IDGenerator == nil {
		c.IDGenerator = func() string {
			return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
		}
	}
	return nil
}

// Service appends tasks to the stored collection.
type Service struct {
	repo   storage.Repository
	logger log.Logger
	newID  func() string
}

// NewService creates a new add service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		newID:  cfg.IDGenerator,
	}, nil
}

// Request represents the add request parameters.
type Request struct {
	Title string
	// Description is optional, nil means no description.
	Description *string
	// DueDate is optional, nil means no due date. It must be an RFC3339 timestamp.
	DueDate *string
}

// Run validates the request, appends the new task and saves the whole collection.
// Invalid input is rejected before the store is touched.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	logger := s.logger.WithCtxValues(ctx)

	if req.Title == "" {
		return nil, fmt.Errorf("title is required: %w", model.ErrInvalidInput)
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := ParseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	m, err := manager.Load(ctx, manager.ManagerConfig{
		Repository: s.repo,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	task := model.NewTask(req.Title, req.Description, dueDate)
	task.ID = s.newID()
	m.Add(task)

	if err := m.Save(ctx); err != nil {
		return nil, err
	}

	logger.Infof("Task %s added (%d tasks)", task.ID, m.Len())
	return &task, nil
}

// ParseDueDate parses an RFC3339 timestamp and resolves it to UTC. A space or a
// lowercase "t" are accepted as date and time separator, and a lowercase "z" as
// the UTC offset.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, normalizeRFC3339(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, RFC3339 format required (e.g. 2025-01-02T15:04:05Z): %w", s, model.ErrInvalidInput)
	}
	return t.UTC(), nil
}

func normalizeRFC3339(s string) string {
	const sepIdx = len("2006-01-02")
	if len(s) <= sepIdx {
		return s
	}

	b := []byte(s)
	if b[sepIdx] == ' ' || b[sepIdx] == 't' {
		b[sepIdx] = 'T'
	}
	if b[len(b)-1] == 'z' {
		b[len(b)-1] = 'Z'
	}
	return string(b)
}
