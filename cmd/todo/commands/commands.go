package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/todo/internal/conventions"
	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
	storageio "github.com/slok/todo/internal/storage/io"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigFile string
	StorePath  string
	StoreType  string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger

	config *model.Config
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("config", "Path to a YAML or TOML config file.").StringVar(&c.ConfigFile)
	app.Flag("store-path", fmt.Sprintf("Path to the task store file (default %q).", conventions.DefaultStoreFile)).Envar(envar("store-path")).StringVar(&c.StorePath)
	app.Flag("store", "Task store type, auto selects it by the store path extension.").EnumVar(&c.StoreType, conventions.StoreTypes...)

	return c
}

// UserConfig returns the config file contents, an empty config when no config
// file has been set. The file is only read once.
func (r *RootCommand) UserConfig(ctx context.Context) (model.Config, error) {
	if r.config != nil {
		return *r.config, nil
	}

	cfg := model.Config{}
	if r.ConfigFile != "" {
		configPath, err := filepath.Abs(conventions.ExpandPath(r.ConfigFile))
		if err != nil {
			return model.Config{}, fmt.Errorf("could not resolve config path: %w", err)
		}

		configRepo := storageio.NewConfigRepository(os.DirFS("/"))
		cfg, err = configRepo.GetConfig(ctx, configPath[1:])
		if err != nil {
			return model.Config{}, fmt.Errorf("could not load config: %w", err)
		}
	}

	r.config = &cfg
	return cfg, nil
}

// Store returns the resolved store path and type. Flags win over the config
// file, and the config file over the defaults.
func (r *RootCommand) Store(ctx context.Context) (path, storeType string, err error) {
	cfg, err := r.UserConfig(ctx)
	if err != nil {
		return "", "", err
	}

	path = firstNonEmpty(r.StorePath, cfg.StorePath, conventions.DefaultStoreFile)
	path = conventions.ExpandPath(path)
	storeType = conventions.ResolveStoreType(firstNonEmpty(r.StoreType, cfg.StoreType), path)

	return path, storeType, nil
}

// envar returns the environment variable name that maps to a flag.
func envar(flag string) string {
	return conventions.EnvarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
