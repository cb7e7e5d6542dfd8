package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/todo/internal/model"
)

func runCLI(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	err = Run(context.Background(), append([]string{"todo", "--no-log"}, args...), nil, &outBuf, &errBuf)
	return outBuf.String(), err
}

func TestRunAddAndView(t *testing.T) {
	tests := map[string]struct {
		store string
	}{
		"JSON store":   {store: "tasks.json"},
		"YAML store":   {store: "tasks.yaml"},
		"SQLite store": {store: "tasks.db"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)

			storePath := filepath.Join(t.TempDir(), test.store)

			out, err := runCLI(t, "--store-path", storePath, "add", "Buy milk")
			require.NoError(err)
			assert.Equal("Task added successfully!\n", out)

			_, err = runCLI(t, "--store-path", storePath, "add", "Pay rent", "Flat 3B", "2025-03-01T00:00:00Z")
			require.NoError(err)

			out, err = runCLI(t, "--store-path", storePath, "view")
			require.NoError(err)
			exp := `Title: Buy milk
Description: No description
Due Date: No due date
Completed: false

Title: Pay rent
Description: Flat 3B
Due Date: 2025-03-01 00:00:00 UTC
Completed: false

`
			assert.Equal(exp, out)

			out, err = runCLI(t, "--store-path", storePath, "view", "--filter", "completed")
			require.NoError(err)
			assert.Empty(out)
		})
	}
}

func TestRunViewByDueDate(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")

	_, err := runCLI(t, "--store-path", storePath, "add", "march", "", "2025-03-01T00:00:00Z")
	require.NoError(t, err)
	_, err = runCLI(t, "--store-path", storePath, "add", "no date")
	require.NoError(t, err)
	_, err = runCLI(t, "--store-path", storePath, "add", "january", "", "2025-01-01T00:00:00+02:00")
	require.NoError(t, err)

	out, err := runCLI(t, "--store-path", storePath, "view", "-f", "due_date", "--format", "table")
	require.NoError(t, err)

	noDate := bytes.Index([]byte(out), []byte("no date"))
	january := bytes.Index([]byte(out), []byte("january"))
	march := bytes.Index([]byte(out), []byte("march"))
	assert.True(t, noDate < january && january < march, out)
	assert.Contains(t, out, "2024-12-31 22:00:00 UTC")
}

func TestRunAddInvalidDueDateKeepsStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")

	_, err := runCLI(t, "--store-path", storePath, "add", "Buy milk")
	require.NoError(t, err)
	before, err := os.ReadFile(storePath)
	require.NoError(t, err)

	_, err = runCLI(t, "--store-path", storePath, "add", "Bad", "desc", "not-a-date")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	after, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunAddInvalidDueDateDoesNotCreateStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")

	_, err := runCLI(t, "--store-path", storePath, "add", "Bad", "desc", "not-a-date")
	require.Error(t, err)

	_, err = os.Stat(storePath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunViewMalformedStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0644))

	_, err := runCLI(t, "--store-path", storePath, "view")
	require.Error(t, err)
	assert.Equal(t, model.ErrorKindMalformedStore, model.KindOf(err))
}

func TestRunViewEmptyStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")

	out, err := runCLI(t, "--store-path", storePath, "view")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = os.Stat(storePath)
	assert.True(t, os.IsNotExist(err), "viewing should not create the store")
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "tasks.yaml")
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`store_path = "`+storePath+`"
format = "json"
`), 0644))

	_, err := runCLI(t, "--config", configPath, "add", "From config")
	require.NoError(t, err)

	_, err = os.Stat(storePath)
	require.NoError(t, err)

	out, err := runCLI(t, "--config", configPath, "view")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "From config"`)
}

func TestRunInvalidCommand(t *testing.T) {
	_, err := runCLI(t, "view", "--filter", "overdue")
	require.Error(t, err)
}

func TestRunAddDryRun(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")

	_, err := runCLI(t, "--store-path", storePath, "add", "Kept")
	require.NoError(t, err)
	before, err := os.ReadFile(storePath)
	require.NoError(t, err)

	out, err := runCLI(t, "--store-path", storePath, "add", "--dry-run", "Not kept")
	require.NoError(t, err)
	assert.Equal(t, "Task added successfully! (dry run, nothing saved)\n", out)

	after, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunReadOnlyCommandsDoNotCreateStore(t *testing.T) {
	tests := map[string]struct {
		store string
		args  []string
		exp   string
	}{
		"View on a missing SQLite store": {
			store: "tasks.db",
			args:  []string{"view"},
			exp:   "",
		},
		"Dry run add on a missing SQLite store": {
			store: "tasks.db",
			args:  []string{"add", "--dry-run", "Not kept"},
			exp:   "Task added successfully! (dry run, nothing saved)\n",
		},
		"View on a missing YAML store": {
			store: "tasks.yaml",
			args:  []string{"view"},
			exp:   "",
		},
		"Dry run add on a missing JSON store": {
			store: "tasks.json",
			args:  []string{"add", "--dry-run", "Not kept"},
			exp:   "Task added successfully! (dry run, nothing saved)\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			storePath := filepath.Join(t.TempDir(), test.store)

			out, err := runCLI(t, append([]string{"--store-path", storePath}, test.args...)...)
			require.NoError(t, err)
			assert.Equal(t, test.exp, out)

			_, err = os.Stat(storePath)
			assert.True(t, os.IsNotExist(err), "the store should not be created")
		})
	}
}

func TestRunAddBlankTitle(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "tasks.json")

	_, err := runCLI(t, "--store-path", storePath, "add", " ", "", "2025-01-01 00:00:00z")
	require.NoError(t, err)

	out, err := runCLI(t, "--store-path", storePath, "view")
	require.NoError(t, err)
	assert.Equal(t, "Title:  \nDescription: \nDue Date: 2025-01-01 00:00:00 UTC\nCompleted: false\n\n", out)
}

func TestRunStorePathFromEnv(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "env-tasks.json")
	t.Setenv("TODO_STORE_PATH", storePath)

	_, err := runCLI(t, "add", "From env")
	require.NoError(t, err)

	_, err = os.Stat(storePath)
	require.NoError(t, err)
}
