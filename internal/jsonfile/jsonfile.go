// Package jsonfile persists a task list as a single JSON array.
// Writes are atomic (temp file, fsync, rename); reads are strict and
// validated against an embedded JSON Schema.
package jsonfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Backend implements types.Backend on top of one JSON file.
type Backend struct {
	path string
}

// New returns a backend for the file at path. The file is not touched until
// ReadTasks or WriteTasks is called.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Location returns the file path.
func (b *Backend) Location() string {
	return b.path
}

// ReadTasks reads and validates the task file.
// A missing file wraps types.ErrSourceNotFound.
func (b *Backend) ReadTasks() ([]types.Task, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", b.path, types.ErrSourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrStorage, b.path, err)
	}
	return Decode(data)
}

// WriteTasks atomically replaces the task file with tasks.
func (b *Backend) WriteTasks(tasks []types.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	if err := writeAtomic(b.path, data); err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	return nil
}

// Encode renders tasks as an indented JSON array with a trailing newline.
// A nil slice encodes as an empty array.
func Encode(tasks []types.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []types.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON task array. Records must carry id and title, may
// carry completed, and must not carry anything else. Errors wrap
// types.ErrMalformed.
func Decode(data []byte) ([]types.Task, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformed, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var tasks []types.Task
	if err := dec.Decode(&tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformed, err)
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	if err := types.ValidateTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern so a crash leaves either the old or the new file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tasks-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing tasks: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
