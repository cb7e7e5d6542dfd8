package conventions_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/todo/internal/conventions"
)

func TestResolveStoreType(t *testing.T) {
	tests := map[string]struct {
		storeType string
		path      string
		exp       string
	}{
		"Auto with json extension":         {storeType: "auto", path: "tasks.json", exp: "json"},
		"Auto with yaml extension":         {storeType: "auto", path: "tasks.yaml", exp: "yaml"},
		"Auto with yml extension":          {storeType: "auto", path: "/tmp/Tasks.YML", exp: "yaml"},
		"Auto with db extension":           {storeType: "auto", path: "todo.db", exp: "sqlite"},
		"Auto with unknown extension":      {storeType: "auto", path: "tasks", exp: "json"},
		"Empty type behaves as auto":       {storeType: "", path: "tasks.sqlite", exp: "sqlite"},
		"Explicit type wins over the path": {storeType: "sqlite", path: "tasks.json", exp: "sqlite"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, conventions.ResolveStoreType(test.storeType, test.path))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".todo", "tasks.json"), conventions.ExpandPath("~/.todo/tasks.json"))
	assert.Equal(t, home, conventions.ExpandPath("~"))
	assert.Equal(t, "tasks.json", conventions.ExpandPath("tasks.json"))
	assert.Equal(t, "/abs/~/tasks.json", conventions.ExpandPath("/abs/~/tasks.json"))
}
