package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todo/internal/app/view"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/printer"
)

type ViewCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	filter string
	format string
}

// NewViewCommand returns the view command.
func NewViewCommand(rootCmd *RootCommand, app *kingpin.Application) *ViewCommand {
	c := &ViewCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("view", "View tasks.")
	c.Cmd.Flag("filter", "Filter tasks by status or sort them by due date (default all).").Short('f').PlaceHolder("FILTER").EnumVar(&c.filter, model.FilterStrings()...)
	c.Cmd.Flag("format", "Output format (default text).").EnumVar(&c.format, printer.Formats...)

	return c
}

func (c ViewCommand) Name() string { return c.Cmd.FullCommand() }

func (c ViewCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.UserConfig(ctx)
	if err != nil {
		return err
	}
	filter := model.Filter(firstNonEmpty(c.filter, string(cfg.Filter), string(model.FilterAll)))
	format := firstNonEmpty(c.format, cfg.Format, printer.FormatText)

	p, err := printer.New(format, c.rootCmd.Stdout)
	if err != nil {
		return err
	}

	repo, closeRepo, err := newRepository(ctx, c.rootCmd, true)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warningf("could not close repository: %s", err)
		}
	}()

	svc, err := view.NewService(view.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	tasks, err := svc.Run(ctx, view.Request{Filter: filter})
	if err != nil {
		return fmt.Errorf("could not view tasks: %w", err)
	}

	if err := p.PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
