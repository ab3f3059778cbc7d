package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultRepo_TagsRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	repo := NewSQLiteVaultRepo(db)
	ctx := context.Background()

	p := testutil.NewTestPrompt(u.ID, "Pomodoro", "Work 25 minutes",
		testutil.WithTags("focus", "study"), testutil.WithCategory("study"))
	require.NoError(t, repo.Create(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"focus", "study"}, fetched.Tags)
	assert.Equal(t, "study", fetched.Category)
}

func TestVaultRepo_ListNewestFirstAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	repo := NewSQLiteVaultRepo(db)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	older := testutil.NewTestPrompt(u.ID, "older", "x", testutil.WithPromptUpdatedAt(base))
	newer := testutil.NewTestPrompt(u.ID, "newer", "y", testutil.WithPromptUpdatedAt(base.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)

	older.Title = "refreshed"
	older.Tags = nil
	older.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, repo.Update(ctx, older))

	list, err = repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "refreshed", list[0].Title)
	assert.Empty(t, list[0].Tags)
}

func TestVaultRepo_DeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVaultRepo(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
