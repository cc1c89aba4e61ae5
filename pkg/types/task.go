package types

import (
	"fmt"
	"strings"
)

// Task is a single to-do item.
type Task struct {
	ID        int    `json:"id"`        // Positive, unique within a store.
	Title     string `json:"title"`     // Non-empty after trimming.
	Completed bool   `json:"completed"` // False until completed.
}

// Completion marks returned by Mark.
const (
	MarkDone    = "✓"
	MarkPending = "✗"
)

// Mark returns the completion mark for the task.
func (t Task) Mark() string {
	if t.Completed {
		return MarkDone
	}
	return MarkPending
}

// NormalizeTitle trims surrounding whitespace and returns ErrInvalidTitle
// when nothing is left.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrInvalidTitle
	}
	return title, nil
}

// ValidateTasks checks a loaded task sequence: every ID positive and unique,
// every title non-empty. It returns an error wrapping ErrMalformed.
func ValidateTasks(tasks []Task) error {
	seen := make(map[int]bool, len(tasks))
	for i, t := range tasks {
		if t.ID < 1 {
			return fmt.Errorf("%w: task %d: id %d is not positive", ErrMalformed, i, t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: task %d: duplicate id %d", ErrMalformed, i, t.ID)
		}
		seen[t.ID] = true
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %d: empty title", ErrMalformed, i)
		}
	}
	return nil
}
