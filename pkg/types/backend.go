package types

import "errors"

// Backend reads and writes a complete task sequence. A Backend holds no
// in-memory state between calls; the store owns the tasks.
type Backend interface {
	// ReadTasks returns the persisted tasks in their stored order.
	// Returns an error wrapping ErrSourceNotFound when nothing has been
	// persisted yet, ErrMalformed when the content cannot be parsed, and
	// ErrStorage when the source cannot be read.
	ReadTasks() ([]Task, error)

	// WriteTasks replaces the persisted tasks with tasks.
	// Returns an error wrapping ErrStorage on failure; the previous content
	// is left intact.
	WriteTasks(tasks []Task) error

	// Location describes where the tasks live, for messages and logs.
	Location() string
}

// Task errors.
var (
	ErrInvalidTitle   = errors.New("task title cannot be empty")
	ErrNotFound       = errors.New("task not found")
	ErrMalformed      = errors.New("malformed task data")
	ErrStorage        = errors.New("task storage error")
	ErrSourceNotFound = errors.New("task source does not exist")
)
