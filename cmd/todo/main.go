package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/todo/cmd/todo/commands"
	"github.com/slok/todo/internal/log"
	loglogrus "github.com/slok/todo/internal/log/logrus"
	"github.com/slok/todo/internal/model"
)

// Version is the application version (set via ldflags).
var Version = "dev"

// Run parses args and executes the selected command, it returns once the command
// finishes or a termination signal arrives.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("todo", "A simple task tracker.")
	app.Version(Version)
	app.DefaultEnvars()
	app.UsageWriter(stderr).ErrorWriter(stderr)

	rootCmd := commands.NewRootCommand(app)
	rootCmd.Stdin, rootCmd.Stdout, rootCmd.Stderr = stdin, stdout, stderr

	cmds := map[string]commands.Command{}
	for _, c := range []commands.Command{
		commands.NewAddCommand(rootCmd, app),
		commands.NewViewCommand(rootCmd, app),
	} {
		cmds[c.Name()] = c
	}

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Stdout belongs to the task output on views.
	if cmdName == "view" && !rootCmd.Debug {
		rootCmd.NoLog = true
	}
	rootCmd.Logger = newLogger(rootCmd)
	ctx = rootCmd.Logger.SetValuesOnCtx(ctx, log.Kv{"cmd": cmdName})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))
	g.Add(
		func() error {
			if err := cmds[cmdName].Run(ctx); err != nil {
				return fmt.Errorf("%q command failed: %w", cmdName, err)
			}
			return nil
		},
		func(error) { cancel() },
	)

	err = g.Run()
	if errors.Is(err, run.ErrSignal) {
		rootCmd.Logger.Warningf("Interrupted: %s", err)
	}
	return err
}

func newLogger(rootCmd *commands.RootCommand) log.Logger {
	if rootCmd.NoLog {
		return log.Noop
	}

	l := logrus.New()
	l.SetOutput(rootCmd.Stderr)
	if rootCmd.Debug {
		l.SetLevel(logrus.DebugLevel)
	}

	switch rootCmd.LoggerType {
	case commands.LoggerTypeJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !rootCmd.NoColor,
			DisableColors: rootCmd.NoColor,
		})
	}

	logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{"version": Version})
	logger.Debugf("Debug level is enabled")

	return logger
}

func main() {
	err := Run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error (%s): %s\n", model.KindOf(err), err)
		os.Exit(1)
	}
}
