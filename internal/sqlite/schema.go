// This file holds the schema DDL.
package sqlite

// Schema DDL. position keeps insertion order independent of id.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    position INTEGER PRIMARY KEY,
    id INTEGER NOT NULL UNIQUE CHECK (id > 0),
    title TEXT NOT NULL CHECK (length(trim(title)) > 0),
    completed INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1))
);`
)

// schemaDDL lists all statements run when a database is opened.
var schemaDDL = []string{
	createTasks,
}

// Queries used by the backend.
const (
	countTasksTable = `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`
	selectTasks     = `SELECT id, title, completed FROM tasks ORDER BY position`
	deleteTasks     = `DELETE FROM tasks`
	insertTask      = `INSERT INTO tasks (position, id, title, completed) VALUES (?, ?, ?, ?)`
)
