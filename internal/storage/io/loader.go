package io

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/slok/todo/internal/conventions"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/printer"
)

// ConfigRepository loads the user configuration from YAML or TOML files, the
// format is selected by the file extension (.toml is TOML, anything else YAML).
type ConfigRepository struct {
	fs fs.FS
}

// NewConfigRepository creates a new config repository.
func NewConfigRepository(filesystem fs.FS) *ConfigRepository {
	return &ConfigRepository{fs: filesystem}
}

// GetConfig loads a configuration file and returns a validated domain model.
func (r *ConfigRepository) GetConfig(ctx context.Context, path string) (model.Config, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Config{}, ctx.Err()
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return model.Config{}, fmt.Errorf("parsing TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return model.Config{}, fmt.Errorf("parsing TOML: unknown keys: %v", undecoded)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return model.Config{}, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return model.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel(), nil
}

// Config represents the config file structure.
type Config struct {
	StorePath string `yaml:"store_path" toml:"store_path"`
	Store     string `yaml:"store" toml:"store"`
	Filter    string `yaml:"filter" toml:"filter"`
	Format    string `yaml:"format" toml:"format"`
}

func (c Config) validate() error {
	if c.Store != "" && !slices.Contains(conventions.StoreTypes, c.Store) {
		return fmt.Errorf("store must be one of %v, got: %q", conventions.StoreTypes, c.Store)
	}
	if c.Filter != "" {
		if err := model.Filter(c.Filter).Validate(); err != nil {
			return err
		}
	}
	if c.Format != "" && !slices.Contains(printer.Formats, c.Format) {
		return fmt.Errorf("format must be one of %v, got: %q", printer.Formats, c.Format)
	}
	return nil
}

func (c Config) toModel() model.Config {
	return model.Config{
		StorePath: c.StorePath,
		StoreType: c.Store,
		Filter:    model.Filter(c.Filter),
		Format:    c.Format,
	}
}
