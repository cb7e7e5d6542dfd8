// Package yamlfile implements the task store as a single YAML file.
package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/moby/sys/atomicwriter"
	"gopkg.in/yaml.v3"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
)

// RepositoryConfig is the configuration for the YAML file repository.
type RepositoryConfig struct {
	Path   string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.YAMLFile"})
	return nil
}

// Repository is a YAML file implementation of storage.Repository.
type Repository struct {
	path   string
	logger log.Logger
}

// NewRepository creates a new YAML file repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		path:   cfg.Path,
		logger: cfg.Logger,
	}, nil
}

type storeYAML struct {
	Tasks []taskYAML `yaml:"tasks"`
}

type taskYAML struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description *string    `yaml:"description"`
	DueDate     *time.Time `yaml:"due_date"`
	Completed   bool       `yaml:"completed"`
}

// ListTasks loads every task from the file. A missing or empty file is an empty collection.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugf("Task store %s missing, starting empty", r.path)
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("could not read %s: %w: %w", r.path, model.ErrIOFailure, err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var store storeYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&store); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode %s: %w: %w", r.path, model.ErrMalformedStore, err)
	}

	tasks := make([]model.Task, 0, len(store.Tasks))
	for i, t := range store.Tasks {
		task := t.toModel()
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("task %d on %s: %w: %w", i, r.path, model.ErrMalformedStore, err)
		}
		tasks = append(tasks, task)
	}

	r.logger.Debugf("Loaded %d tasks from %s", len(tasks), r.path)
	return tasks, nil
}

// SaveTasks replaces the file contents with the received collection.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	store := storeYAML{Tasks: make([]taskYAML, 0, len(tasks))}
	for _, t := range tasks {
		store.Tasks = append(store.Tasks, fromModel(t))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(store); err != nil {
		return fmt.Errorf("could not encode tasks: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not encode tasks: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create store directory: %w: %w", model.ErrIOFailure, err)
		}
	}

	if err := atomicwriter.WriteFile(r.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w: %w", r.path, model.ErrIOFailure, err)
	}

	r.logger.Debugf("Saved %d tasks on %s", len(tasks), r.path)
	return nil
}

func fromModel(t model.Task) taskYAML {
	ty := taskYAML{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		ty.DueDate = &d
	}
	return ty
}

func (t taskYAML) toModel() model.Task {
	task := model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		task.DueDate = &d
	}
	return task
}
