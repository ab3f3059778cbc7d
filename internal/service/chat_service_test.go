package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectDeltas(out *[]string) llm.DeltaFunc {
	return func(d string) error {
		*out = append(*out, d)
		return nil
	}
}

func TestChatSend_PersistsExchangeAndRenames(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)

	var deltas []string
	text := "How should I structure my revision for the chemistry exam next month?"
	res, err := e.chat.Send(ctx, e.user.ID, conv.ID, text, collectDeltas(&deltas))
	require.NoError(t, err)

	assert.Equal(t, []string{"Hello", " there"}, deltas)
	require.NotNil(t, res.AssistantMessage)
	assert.Equal(t, "Hello there", res.AssistantMessage.Text)
	assert.Equal(t, domain.SentimentNeutral, res.AssistantMessage.Sentiment)
	assert.True(t, res.Renamed)

	history, err := e.conversations.History(ctx, e.user.ID, conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)

	got, err := e.conversations.Get(ctx, e.user.ID, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TitleFromMessage(text), got.Title)
	assert.True(t, strings.HasSuffix(got.Title, "..."))
}

func TestChatSend_SecondMessageKeepsTitleAndSendsHistory(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)
	_, err = e.chat.Send(ctx, e.user.ID, conv.ID, "first question", nil)
	require.NoError(t, err)
	res, err := e.chat.Send(ctx, e.user.ID, conv.ID, "second question", nil)
	require.NoError(t, err)
	assert.False(t, res.Renamed)

	req := e.llm.lastRequest(t, llm.TaskChat)
	require.Len(t, req.History, 3)
	assert.Equal(t, llm.RoleUser, req.History[0].Role)
	assert.Equal(t, llm.RoleAssistant, req.History[1].Role)
	assert.Equal(t, "second question", req.History[2].Content)

	got, err := e.conversations.Get(ctx, e.user.ID, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "first question", got.Title)
}

func TestChatSend_LongConversationSendsNewestHistory(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	conv, err := e.conversations.Create(ctx, e.user.ID, "Long thread", "")
	require.NoError(t, err)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		m := testutil.NewTestMessage(e.user.ID, conv.ID, domain.RoleUser, fmt.Sprintf("msg %d", i))
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, e.messageRepo.Create(ctx, m))
	}

	_, err = e.chat.Send(ctx, e.user.ID, conv.ID, "latest", nil)
	require.NoError(t, err)

	req := e.llm.lastRequest(t, llm.TaskChat)
	require.GreaterOrEqual(t, len(req.History), 2)
	assert.Equal(t, "latest", req.History[len(req.History)-1].Content)
	assert.Equal(t, "msg 119", req.History[len(req.History)-2].Content)
	for _, m := range req.History {
		assert.NotEqual(t, "msg 0", m.Content)
		assert.NotEqual(t, "msg 19", m.Content)
	}
}

func TestChatSend_StoresSentimentAndToneHint(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	conv, err := e.conversations.Create(ctx, e.user.ID, "Exam", "Chemistry")
	require.NoError(t, err)
	res, err := e.chat.Send(ctx, e.user.ID, conv.ID, "I'm so stressed and overwhelmed", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentOverwhelmed, res.UserMessage.Sentiment)

	req := e.llm.lastRequest(t, llm.TaskChat)
	assert.Contains(t, req.SystemPrompt, `"Chemistry"`)
	assert.Contains(t, req.SystemPrompt, "overwhelmed")
}

func TestChatSend_InjectsRelevantVaultPrompts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, e.vault.Save(ctx, e.user.ID, &domain.VaultPrompt{
		Title: "Hooks", Content: "Prefer useReducer for complex state", Tags: []string{"react"},
	}))
	require.NoError(t, e.vault.Save(ctx, e.user.ID, &domain.VaultPrompt{
		Title: "Baking", Content: "Weigh the flour", Tags: []string{"bread"},
	}))

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)
	_, err = e.chat.Send(ctx, e.user.ID, conv.ID, "help me with react state", nil)
	require.NoError(t, err)

	req := e.llm.lastRequest(t, llm.TaskChat)
	assert.Contains(t, req.SystemPrompt, "[Vault Prompt 1]: Prefer useReducer for complex state")
	assert.NotContains(t, req.SystemPrompt, "Weigh the flour")
}

func TestChatSend_MasterRunsRoadmapIntent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	master, err := e.conversations.Master(ctx, e.user.ID)
	require.NoError(t, err)

	res, err := e.chat.Send(ctx, e.user.ID, master.ID, "create roadmap react 8 weeks", nil)
	require.NoError(t, err)
	require.NotNil(t, res.Action)
	assert.NoError(t, res.ActionErr)
	assert.Equal(t, "react", res.Action.Skill)
	assert.NotEmpty(t, res.Action.GoalID)

	gr, err := e.roadmaps.GetRoadmap(ctx, e.user.ID, res.Action.GoalID)
	require.NoError(t, err)
	assert.NotNil(t, gr.Roadmap)
	assert.Equal(t, 8, gr.Goal.DurationWeeks)

	req := e.llm.lastRequest(t, llm.TaskChat)
	assert.Contains(t, req.SystemPrompt, "Master Control")
	assert.Contains(t, req.SystemPrompt, "[Action]")
	assert.Contains(t, req.SystemPrompt, res.Action.GoalID)

	got, err := e.conversations.Get(ctx, e.user.ID, master.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MasterConversationTitle, got.Title, "master is never auto-renamed")
}

func TestChatSend_SkillConversationIgnoresIntent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)
	res, err := e.chat.Send(ctx, e.user.ID, conv.ID, "create roadmap react 8 weeks", nil)
	require.NoError(t, err)
	assert.Nil(t, res.Action)

	n, err := e.goalRepo.CountByUser(ctx, e.user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestChatSend_StreamFailureKeepsUserMessage(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.llm.chatErr = llm.ErrTimeout

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)
	_, err = e.chat.Send(ctx, e.user.ID, conv.ID, "hello", nil)
	assert.ErrorIs(t, err, llm.ErrTimeout)

	history, err := e.conversations.History(ctx, e.user.ID, conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleUser, history[0].Role)

	got, err := e.conversations.Get(ctx, e.user.ID, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConversationTitle, got.Title)
}

func TestChatSend_EmptyReplyNotStored(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.llm.chatDeltas = nil

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)
	res, err := e.chat.Send(ctx, e.user.ID, conv.ID, "hello", nil)
	require.NoError(t, err)
	assert.Nil(t, res.AssistantMessage)

	n, err := e.messageRepo.CountByConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestChatSend_Rejects(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	conv, err := e.conversations.Create(ctx, e.user.ID, "", "")
	require.NoError(t, err)
	_, err = e.chat.Send(ctx, e.user.ID, conv.ID, "   ", nil)
	assert.ErrorIs(t, err, ErrValidation)

	other := e.otherUser(t)
	_, err = e.chat.Send(ctx, other.ID, conv.ID, "hi", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChatComplete_Stateless(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	var deltas []string
	resp, err := e.chat.Complete(ctx, CompletionRequest{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "I give up"}},
		Sentiment: domain.SentimentDemotivated,
	}, collectDeltas(&deltas))
	require.NoError(t, err)
	assert.Equal(t, "Hello there", resp.Text)
	assert.Len(t, deltas, 2)

	req := e.llm.lastRequest(t, llm.TaskChat)
	assert.Contains(t, req.SystemPrompt, "NeuroPlan AI Mentor")
	assert.Contains(t, req.SystemPrompt, "demotivated")

	_, err = e.chat.Complete(ctx, CompletionRequest{}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
