// Package store holds the in-memory task list and its ID allocation policy.
// Persistence is delegated to a types.Backend.
package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Store is an ordered task collection with a sequential ID counter.
// IDs are never reused within the lifetime of a Store; Load recomputes the
// counter from the highest ID present in the loaded tasks.
// A Store is not safe for concurrent use.
type Store struct {
	tasks  []types.Task
	nextID int
}

// New returns an empty store whose first task gets ID 1.
func New() *Store {
	return &Store{nextID: 1}
}

// Add appends a task with the next ID. The title is trimmed; an empty title
// returns ErrInvalidTitle and leaves the store unchanged.
func (s *Store) Add(title string) (types.Task, error) {
	title, err := types.NormalizeTitle(title)
	if err != nil {
		return types.Task{}, err
	}
	t := types.Task{ID: s.nextID, Title: title}
	s.tasks = append(s.tasks, t)
	s.nextID++
	return t, nil
}

// List returns a copy of all tasks in insertion order. The result is never
// nil.
func (s *Store) List() []types.Task {
	out := make([]types.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID returns the ID the next Add will assign.
func (s *Store) NextID() int {
	return s.nextID
}

// Get returns the task with the given ID.
func (s *Store) Get(id int) (types.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return types.Task{}, false
	}
	return s.tasks[i], true
}

// Delete removes the task with the given ID, keeping the order of the rest.
// It reports whether a task was removed.
func (s *Store) Delete(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true
}

// Complete marks the task with the given ID as completed. Completing an
// already completed task succeeds. It reports whether the task exists.
func (s *Store) Complete(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = true
	return true
}

// Save writes every task, in order, to dst.
func (s *Store) Save(dst types.Backend) error {
	if err := dst.WriteTasks(s.List()); err != nil {
		return fmt.Errorf("save tasks to %s: %w", dst.Location(), err)
	}
	return nil
}

// Load replaces the store contents with the tasks read from src.
// A source that does not exist yet leaves the store empty with next ID 1.
// On any other error the store is not modified.
func (s *Store) Load(src types.Backend) error {
	tasks, err := src.ReadTasks()
	if errors.Is(err, types.ErrSourceNotFound) {
		s.tasks = nil
		s.nextID = 1
		return nil
	}
	if err != nil {
		return fmt.Errorf("load tasks from %s: %w", src.Location(), err)
	}
	if err := types.ValidateTasks(tasks); err != nil {
		return fmt.Errorf("load tasks from %s: %w", src.Location(), err)
	}

	maxID := 0
	for _, t := range tasks {
		maxID = max(maxID, t.ID)
	}
	if maxID == math.MaxInt {
		return fmt.Errorf("load tasks from %s: %w: id %d leaves no id for new tasks", src.Location(), types.ErrMalformed, maxID)
	}
	s.tasks = tasks
	s.nextID = maxID + 1
	return nil
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
