// This file implements reading and transactional replacement of task rows.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// loadTasks reads every row in position order. The result is never nil.
func loadTasks(db *sql.DB) ([]types.Task, error) {
	rows, err := db.Query(selectTasks)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		var t types.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// replaceTasks deletes all rows and inserts tasks in order. Either every
// row is written or the previous content remains.
func replaceTasks(db *sql.DB, tasks []types.Task) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteTasks); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	stmt, err := tx.Prepare(insertTask)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.Exec(i+1, t.ID, t.Title, t.Completed); err != nil {
			return fmt.Errorf("inserting task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}
