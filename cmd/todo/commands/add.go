package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todo/internal/app/add"
	"github.com/slok/todo/internal/printer"
	"github.com/slok/todo/internal/storage"
	"github.com/slok/todo/internal/storage/memory"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title          string
	description    string
	descriptionSet bool
	dueDate        string
	dueDateSet     bool
	dryRun         bool
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Adds a new task.")
	c.Cmd.Arg("title", "The title of the task.").Required().StringVar(&c.title)
	c.Cmd.Arg("description", "The description of the task.").Action(markSet(&c.descriptionSet)).StringVar(&c.description)
	c.Cmd.Arg("due_date", "The due date of the task (RFC3339 format, e.g. 2025-01-02T15:04:05Z).").Action(markSet(&c.dueDateSet)).StringVar(&c.dueDate)
	c.Cmd.Flag("dry-run", "Validates and adds the task without saving it.").BoolVar(&c.dryRun)

	return c
}

// markSet returns an action that flags an optional argument as given, kingpin only
// runs arg actions for arguments present on the command line.
func markSet(set *bool) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		*set = true
		return nil
	}
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	req := add.Request{Title: c.title}
	if c.descriptionSet {
		req.Description = &c.description
	}
	if c.dueDateSet {
		req.DueDate = &c.dueDate
	}

	// Reject invalid input before opening the store, so nothing is created or touched.
	if req.DueDate != nil {
		if _, err := add.ParseDueDate(*req.DueDate); err != nil {
			return err
		}
	}

	repo, closeRepo, err := newRepository(ctx, c.rootCmd, c.dryRun)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warningf("could not close repository: %s", err)
		}
	}()

	var svcRepo storage.Repository = repo
	if c.dryRun {
		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("could not load tasks: %w", err)
		}
		svcRepo, err = memory.NewRepository(memory.RepositoryConfig{Tasks: tasks, Logger: logger})
		if err != nil {
			return fmt.Errorf("could not create dry run repository: %w", err)
		}
	}

	svc, err := add.NewService(add.ServiceConfig{
		Repository: svcRepo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if _, err := svc.Run(ctx, req); err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}

	msg := "Task added successfully!"
	if c.dryRun {
		msg += " (dry run, nothing saved)"
	}

	p := printer.NewTextPrinter(c.rootCmd.Stdout)
	return p.PrintMessage(msg)
}
