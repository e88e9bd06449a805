package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableSnapshots  = "snapshots"
	tableTaskEvents = "task_events"
	tableChatEvents = "chat_events"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS snapshots_sequence ON snapshots (sequence)`,
	`CREATE TABLE IF NOT EXISTS task_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		task_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		task_type TEXT NOT NULL DEFAULT '',
		difficulty INTEGER NOT NULL DEFAULT 0,
		estimated_hours REAL NOT NULL DEFAULT 0,
		actual_hours REAL NOT NULL DEFAULT 0,
		efficiency REAL NOT NULL DEFAULT 0,
		grade TEXT NOT NULL DEFAULT '',
		quality TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS chat_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		user_text TEXT NOT NULL,
		intent TEXT NOT NULL,
		response TEXT NOT NULL
	)`,
}

// migrate creates the schema idempotently.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
