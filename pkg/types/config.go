package types

import (
	"errors"
	"path/filepath"
)

// Config holds backend selection and the data directory for a task list.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Task file names inside DataDir, per backend.
const (
	JSONFileName   = "tasks.json"
	SQLiteFileName = "tasks.db"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends maps the backends that Validate accepts to their file names.
var knownBackends = map[string]string{
	BackendJSON:   JSONFileName,
	BackendSQLite: SQLiteFileName,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if _, ok := knownBackends[c.Backend]; !ok {
		return ErrBackendUnknown
	}
	return nil
}

// Path returns the task file for the configured backend. An empty DataDir
// means the current directory.
func (c Config) Path() string {
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, knownBackends[c.Backend])
}
