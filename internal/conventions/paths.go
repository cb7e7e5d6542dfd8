package conventions

import (
	"path/filepath"
	"strings"

	"k8s.io/client-go/util/homedir"
)

const (
	// DefaultStoreFile is the default task store, relative to the working directory.
	DefaultStoreFile = "tasks.json"
	// EnvarPrefix is the prefix of the environment variables that map to flags.
	EnvarPrefix = "TODO"
)

// Store types.
const (
	// StoreTypeAuto selects the store type from the store path extension.
	StoreTypeAuto = "auto"
	// StoreTypeJSON is the JSON file store.
	StoreTypeJSON = "json"
	// StoreTypeYAML is the YAML file store.
	StoreTypeYAML = "yaml"
	// StoreTypeSQLite is the SQLite database store.
	StoreTypeSQLite = "sqlite"
)

// StoreTypes are all the accepted store types.
var StoreTypes = []string{StoreTypeAuto, StoreTypeJSON, StoreTypeYAML, StoreTypeSQLite}

// ExpandPath expands a leading "~" to the user home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return homedir.HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homedir.HomeDir(), path[2:])
	}
	return path
}

// ResolveStoreType returns the concrete store type. Auto resolves by the path
// extension and falls back to JSON.
func ResolveStoreType(storeType, path string) string {
	if storeType != "" && storeType != StoreTypeAuto {
		return storeType
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return StoreTypeYAML
	case ".db", ".sqlite", ".sqlite3":
		return StoreTypeSQLite
	}
	return StoreTypeJSON
}
