package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepo_CreateListCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	repo := NewSQLiteGoalRepo(db)
	ctx := context.Background()

	first := testutil.NewTestGoal(u.ID, "Python", testutil.WithLevel(domain.LevelIntermediate))
	second := testutil.NewTestGoal(u.ID, "Guitar", testutil.WithWeeks(12))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Guitar", list[0].Skill)
	assert.Equal(t, 12, list[0].DurationWeeks)
	assert.Equal(t, domain.LevelIntermediate, list[1].Level)

	n, err := repo.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGoalRepo_RejectsOutOfRangeWeeks(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	repo := NewSQLiteGoalRepo(db)

	g := testutil.NewTestGoal(u.ID, "Rust", testutil.WithWeeks(53))
	assert.Error(t, repo.Create(context.Background(), g))
}

func TestRoadmapRepo_UpsertReplacesContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	goals := NewSQLiteGoalRepo(db)
	repo := NewSQLiteRoadmapRepo(db)
	ctx := context.Background()

	g := testutil.NewTestGoal(u.ID, "SQL")
	require.NoError(t, goals.Create(ctx, g))

	now := time.Now().UTC()
	first := &domain.Roadmap{
		ID: uuid.New().String(), GoalID: g.ID,
		Content:   testutil.NewTestRoadmapContent("SQL", 4),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Upsert(ctx, first))
	firstID := first.ID

	second := &domain.Roadmap{
		ID: uuid.New().String(), GoalID: g.ID,
		Content:   testutil.NewTestRoadmapContent("SQL", 6),
		CreatedAt: now.Add(time.Minute), UpdatedAt: now.Add(time.Minute),
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, firstID, second.ID)

	fetched, err := repo.GetByGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, firstID, fetched.ID)
	assert.Equal(t, 6, fetched.Content.TotalWeeks)
	require.Len(t, fetched.Content.Milestones, 1)
	assert.Equal(t, []string{"Read the introduction", "Do the first exercise"}, fetched.Content.Milestones[0].Tasks)
}

func TestRoadmapRepo_DeletedWithGoal(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, db)
	goals := NewSQLiteGoalRepo(db)
	repo := NewSQLiteRoadmapRepo(db)
	ctx := context.Background()

	g := testutil.NewTestGoal(u.ID, "SQL")
	require.NoError(t, goals.Create(ctx, g))
	now := time.Now().UTC()
	require.NoError(t, repo.Upsert(ctx, &domain.Roadmap{
		ID: uuid.New().String(), GoalID: g.ID,
		Content: testutil.NewTestRoadmapContent("SQL", 4), CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, goals.Delete(ctx, g.ID))
	_, err := repo.GetByGoal(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
