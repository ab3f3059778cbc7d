package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)
	ctx := context.Background()

	u := testutil.NewTestUser(testutil.WithDisplayName("Linh"))
	require.NoError(t, repo.Create(ctx, u))

	fetched, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linh", fetched.DisplayName)
	assert.Equal(t, "vi", fetched.Language)
	assert.Empty(t, fetched.TokenHash)
	assert.WithinDuration(t, u.CreatedAt, fetched.CreatedAt, time.Microsecond)
}

func TestUserRepo_GetByTokenHash(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)
	ctx := context.Background()

	u := testutil.NewTestUser(testutil.WithTokenHash("abc123"))
	require.NoError(t, repo.Create(ctx, u))

	fetched, err := repo.GetByTokenHash(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)

	_, err = repo.GetByTokenHash(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_UsersWithoutTokenDoNotCollide(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestUser()))
	require.NoError(t, repo.Create(ctx, testutil.NewTestUser()))
}

func TestUserRepo_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestUser())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressRepo_GetDefaultsAndUpsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	repo := NewSQLiteProgressRepo(db)
	ctx := context.Background()

	p, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
	assert.Zero(t, p.CompletedTasks)
	assert.Zero(t, p.Streak)

	p.RecordCompletion("2025-03-01", time.Now())
	require.NoError(t, repo.Upsert(ctx, p))
	p.RecordCompletion("2025-03-02", time.Now())
	require.NoError(t, repo.Upsert(ctx, p))

	fetched, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.CompletedTasks)
	assert.Equal(t, 2, fetched.Streak)
	assert.Equal(t, "2025-03-02", fetched.LastActiveDate)
}
