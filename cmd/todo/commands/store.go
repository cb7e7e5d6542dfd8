package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/slok/todo/internal/conventions"
	"github.com/slok/todo/internal/storage"
	"github.com/slok/todo/internal/storage/jsonfile"
	"github.com/slok/todo/internal/storage/memory"
	"github.com/slok/todo/internal/storage/sqlite"
	"github.com/slok/todo/internal/storage/yamlfile"
)

// newRepository returns the task repository configured on the root command. The
// returned close func must be called when the repository is no longer used.
//
// Read only repositories never create a missing store, a missing database is
// served as an empty in-memory store instead.
func newRepository(ctx context.Context, rootCmd *RootCommand, readOnly bool) (storage.Repository, func() error, error) {
	noClose := func() error { return nil }

	path, storeType, err := rootCmd.Store(ctx)
	if err != nil {
		return nil, noClose, err
	}

	logger := rootCmd.Logger
	logger.Debugf("Using %s task store at %s", storeType, path)

	switch storeType {
	case conventions.StoreTypeJSON:
		repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{Path: path, Logger: logger})
		return repo, noClose, err
	case conventions.StoreTypeYAML:
		repo, err := yamlfile.NewRepository(yamlfile.RepositoryConfig{Path: path, Logger: logger})
		return repo, noClose, err
	case conventions.StoreTypeSQLite:
		if readOnly {
			_, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debugf("Task store %s missing, starting empty", path)
				repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: logger})
				return repo, noClose, err
			}
		}

		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: path, Logger: logger})
		if err != nil {
			return nil, noClose, err
		}
		return repo, repo.Close, nil
	}

	return nil, noClose, fmt.Errorf("unknown store type %q", storeType)
}
