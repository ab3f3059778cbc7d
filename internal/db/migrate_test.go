package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	v, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].version, v)

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, len(migrations), applied, "each migration is recorded once")
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"users", "progress", "conversations", "chat_history", "goals", "roadmaps", "schedules", "prompt_vault"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_VersionsAreOrdered(t *testing.T) {
	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].version, migrations[i-1].version)
	}
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_MasterConversationIsUnique(t *testing.T) {
	db := openTestDB(t)
	now := "2026-01-01T00:00:00Z"

	_, err := db.Exec(`INSERT INTO users (id, created_at, updated_at) VALUES ('u', ?, ?)`, now, now)
	require.NoError(t, err)

	insert := `INSERT INTO conversations (id, user_id, title, conversation_type, pinned, created_at, updated_at)
		VALUES (?, 'u', 'Master Control', 'master', 1, ?, ?)`
	_, err = db.Exec(insert, "c1", now, now)
	require.NoError(t, err)
	_, err = db.Exec(insert, "c2", now, now)
	assert.Error(t, err, "a second master conversation must be rejected")
}

func TestMigrate_SortOrderUniquePerDate(t *testing.T) {
	db := openTestDB(t)
	now := "2026-01-01T00:00:00Z"

	_, err := db.Exec(`INSERT INTO users (id, created_at, updated_at) VALUES ('u', ?, ?)`, now, now)
	require.NoError(t, err)

	insert := `INSERT INTO schedules (id, user_id, task, task_date, sort_order, created_at, updated_at)
		VALUES (?, 'u', 'task', ?, ?, ?, ?)`
	_, err = db.Exec(insert, "t1", "2026-03-02", 1, now, now)
	require.NoError(t, err)
	_, err = db.Exec(insert, "t2", "2026-03-03", 1, now, now)
	require.NoError(t, err, "same order on a different date is fine")
	_, err = db.Exec(insert, "t3", "2026-03-02", 1, now, now)
	assert.Error(t, err)
}
