package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository, the database is created and
// migrated if required.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w: %w", model.ErrIOFailure, err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w: %w", model.ErrIOFailure, err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w: %w", model.ErrMalformedStore, err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// ListTasks returns all the tasks in insertion order.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	query := `
		SELECT id, title, description, due_date, completed
		FROM tasks
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w: %w", model.ErrIOFailure, err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var (
			t           model.Task
			description sql.NullString
			dueDate     sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Title, &description, &dueDate, &t.Completed); err != nil {
			return nil, fmt.Errorf("could not scan task: %w: %w", model.ErrMalformedStore, err)
		}

		if description.Valid {
			d := description.String
			t.Description = &d
		}
		if dueDate.Valid {
			d, err := time.Parse(time.RFC3339Nano, dueDate.String)
			if err != nil {
				return nil, fmt.Errorf("invalid due date %q: %w: %w", dueDate.String, model.ErrMalformedStore, err)
			}
			d = d.UTC()
			t.DueDate = &d
		}

		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate tasks: %w: %w", model.ErrIOFailure, err)
	}

	r.logger.Debugf("Loaded %d tasks", len(tasks))
	return tasks, nil
}

// SaveTasks replaces all the stored tasks in a single transaction.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w: %w", model.ErrIOFailure, err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not clear tasks: %w: %w", model.ErrIOFailure, err)
	}

	insertQuery := `
		INSERT INTO tasks (position, id, title, description, due_date, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w: %w", model.ErrIOFailure, err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		var dueDate *string
		if t.DueDate != nil {
			d := t.DueDate.UTC().Format(time.RFC3339Nano)
			dueDate = &d
		}

		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Title, t.Description, dueDate, t.Completed); err != nil {
			return fmt.Errorf("could not insert task %d: %w: %w", i, model.ErrIOFailure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w: %w", model.ErrIOFailure, err)
	}

	r.logger.Debugf("Saved %d tasks", len(tasks))
	return nil
}
