package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	fixedClock(e, now)

	_, err := e.roadmaps.CreateGoal(ctx, e.user.ID, "Go", domain.LevelBeginner, 4)
	require.NoError(t, err)
	done, err := e.schedule.Add(ctx, e.user.ID, "2026-03-02", "Done today", nil)
	require.NoError(t, err)
	_, err = e.schedule.Add(ctx, e.user.ID, "2026-03-02", "Still open", nil)
	require.NoError(t, err)
	_, err = e.schedule.Add(ctx, e.user.ID, "2026-03-03", "Tomorrow", nil)
	require.NoError(t, err)
	_, err = e.schedule.Toggle(ctx, e.user.ID, done.ID)
	require.NoError(t, err)

	sum, err := e.dashboard.Summary(ctx, e.user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CompletedTasks)
	assert.Equal(t, 1, sum.Streak)
	assert.Equal(t, 1, sum.GoalCount)
	assert.Equal(t, "2026-03-02", sum.Today)
	assert.Equal(t, []string{"Done today", "Still open"}, taskTexts(sum.TodayTasks))
}

func TestDashboardSummary_NewUser(t *testing.T) {
	e := newTestEnv(t)

	sum, err := e.dashboard.Summary(context.Background(), e.user.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, sum.CompletedTasks)
	assert.Zero(t, sum.Streak)
	assert.Empty(t, sum.TodayTasks)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	observe(ctx, obs, "toggle-task", "u1", time.Now(), map[string]any{"task_id": "t1"}, nil)
	assert.Contains(t, buf.String(), "use_case=toggle-task")
	assert.Contains(t, buf.String(), "task_id=t1")
	assert.Contains(t, buf.String(), "user_id=u1")

	buf.Reset()
	observe(ctx, obs, "chat-send", "", time.Now(), nil, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
