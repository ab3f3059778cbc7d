package db

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one forward-only schema step. Versions are applied in order
// and recorded in schema_migrations, so each step runs exactly once.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "users and progress",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id           TEXT PRIMARY KEY,
				display_name TEXT NOT NULL DEFAULT '',
				language     TEXT NOT NULL DEFAULT 'vi',
				token_hash   TEXT,
				created_at   TEXT NOT NULL,
				updated_at   TEXT NOT NULL
			)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_token ON users(token_hash) WHERE token_hash IS NOT NULL`,
			`CREATE TABLE IF NOT EXISTS progress (
				user_id          TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				completed_tasks  INTEGER NOT NULL DEFAULT 0,
				streak           INTEGER NOT NULL DEFAULT 0,
				last_active_date TEXT NOT NULL DEFAULT '',
				updated_at       TEXT NOT NULL
			)`,
		},
	},
	{
		version: 2,
		name:    "conversations and chat history",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS conversations (
				id                TEXT PRIMARY KEY,
				user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title             TEXT NOT NULL,
				conversation_type TEXT NOT NULL DEFAULT 'skill'
				                  CHECK(conversation_type IN ('master','skill')),
				skill             TEXT,
				pinned            INTEGER NOT NULL DEFAULT 0,
				created_at        TEXT NOT NULL,
				updated_at        TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id)`,
			// One master control channel per user.
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_master
				ON conversations(user_id) WHERE conversation_type = 'master'`,
			`CREATE TABLE IF NOT EXISTS chat_history (
				id              TEXT PRIMARY KEY,
				user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
				role            TEXT NOT NULL CHECK(role IN ('user','assistant')),
				message         TEXT NOT NULL,
				sentiment       TEXT,
				created_at      TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_chat_history_conversation ON chat_history(conversation_id, created_at)`,
		},
	},
	{
		version: 3,
		name:    "goals and roadmaps",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS goals (
				id             TEXT PRIMARY KEY,
				user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				skill          TEXT NOT NULL,
				level          TEXT NOT NULL DEFAULT 'beginner'
				               CHECK(level IN ('beginner','intermediate','advanced')),
				duration_weeks INTEGER NOT NULL CHECK(duration_weeks BETWEEN 1 AND 52),
				created_at     TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
			`CREATE TABLE IF NOT EXISTS roadmaps (
				id         TEXT PRIMARY KEY,
				goal_id    TEXT NOT NULL UNIQUE REFERENCES goals(id) ON DELETE CASCADE,
				content    TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
		},
	},
	{
		version: 4,
		name:    "schedules",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS schedules (
				id         TEXT PRIMARY KEY,
				user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				task       TEXT NOT NULL,
				task_date  TEXT NOT NULL,
				status     TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending','done')),
				sort_order INTEGER NOT NULL,
				note       TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				UNIQUE (user_id, task_date, sort_order)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_schedules_user_date ON schedules(user_id, task_date)`,
		},
	},
	{
		version: 5,
		name:    "prompt vault",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS prompt_vault (
				id         TEXT PRIMARY KEY,
				user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title      TEXT NOT NULL,
				content    TEXT NOT NULL,
				tags       TEXT NOT NULL DEFAULT '[]',
				category   TEXT NOT NULL DEFAULT 'general',
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_prompt_vault_user ON prompt_vault(user_id, updated_at)`,
		},
	},
}

// Migrate applies every migration newer than the recorded schema version.
// Running it again on an up-to-date database is a no-op.
func Migrate(db *sql.DB) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration version, or 0.
func SchemaVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return int(v.Int64), nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	committed = true
	return nil
}
