// Package jsonfile implements the task store as a single JSON file.
//
// The file holds the whole collection:
//
//	{"tasks": [{"id": "...", "title": "...", "description": null, "due_date": null, "completed": false}]}
//
// Absent optional fields are written as an explicit null.
package jsonfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/moby/sys/atomicwriter"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
)

const schemaURL = "tasks.schema.json"

//go:embed tasks.schema.json
var schemaData string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("could not add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// RepositoryConfig is the configuration for the JSON file repository.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.JSONFile"})
	return nil
}

// Repository is a JSON file implementation of storage.Repository.
type Repository struct {
	path   string
	logger log.Logger
}

// NewRepository creates a new JSON file repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		path:   cfg.Path,
		logger: cfg.Logger,
	}, nil
}

type storeJSON struct {
	Tasks []taskJSON `json:"tasks"`
}

type taskJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
}

// ListTasks loads every task from the file. A missing file is an empty collection.
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

	tasks, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w: %w", r.path, model.ErrMalformedStore, err)
	}

	r.logger.Debugf("Loaded %d tasks from %s", len(tasks), r.path)
	return tasks, nil
}

// SaveTasks replaces the file contents with the received collection.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	data, err := encode(tasks)
	if err != nil {
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

	if err := atomicwriter.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("could not write %s: %w: %w", r.path, model.ErrIOFailure, err)
	}

	r.logger.Debugf("Saved %d tasks on %s", len(tasks), r.path)
	return nil
}

func decode(data []byte) ([]model.Task, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("could not compile schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var store storeJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&store); err != nil {
		return nil, fmt.Errorf("invalid task data: %w", err)
	}

	tasks := make([]model.Task, 0, len(store.Tasks))
	for _, t := range store.Tasks {
		tasks = append(tasks, t.toModel())
	}
	return tasks, nil
}

func encode(tasks []model.Task) ([]byte, error) {
	store := storeJSON{Tasks: make([]taskJSON, 0, len(tasks))}
	for _, t := range tasks {
		store.Tasks = append(store.Tasks, fromModel(t))
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func fromModel(t model.Task) taskJSON {
	tj := taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		tj.DueDate = &d
	}
	return tj
}

func (t taskJSON) toModel() model.Task {
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
