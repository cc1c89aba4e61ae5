// Package sqlite persists a task list in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// Backend implements types.Backend using a SQLite database file.
// The database is opened for each call and closed before returning.
type Backend struct {
	path string
}

// New returns a backend for the database at path. The file is not created
// until WriteTasks is called.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Location returns the database path.
func (b *Backend) Location() string {
	return b.path
}

// ReadTasks returns all tasks in stored order.
// A missing database file wraps types.ErrSourceNotFound; a database without
// a tasks table reads as empty; a file that is not a database wraps
// types.ErrMalformed.
func (b *Backend) ReadTasks() ([]types.Task, error) {
	info, err := os.Stat(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", b.path, types.ErrSourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", types.ErrStorage, b.path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrStorage, b.path)
	}

	db, err := b.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	defer db.Close()

	exists, err := hasTasksTable(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformed, err)
	}
	if !exists {
		return []types.Task{}, nil
	}
	tasks, err := loadTasks(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformed, err)
	}
	return tasks, nil
}

// WriteTasks replaces every stored task with tasks in one transaction.
func (b *Backend) WriteTasks(tasks []types.Task) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", types.ErrStorage, filepath.Dir(b.path), err)
	}

	db, err := b.open()
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	if err := replaceTasks(db, tasks); err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	return nil
}

func (b *Backend) open() (*sql.DB, error) {
	db, err := sql.Open(driverName, b.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", b.path, err)
	}
	// A single connection keeps the transaction and queries on one handle.
	db.SetMaxOpenConns(1)
	return db, nil
}

// hasTasksTable reports whether the database already holds a tasks table.
// Reads never create it.
func hasTasksTable(db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRow(countTasksTable).Scan(&n); err != nil {
		return false, fmt.Errorf("checking schema: %w", err)
	}
	return n > 0, nil
}

// ensureSchema creates the tasks table if it does not exist.
func ensureSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}
