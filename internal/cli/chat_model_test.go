package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatDriver(t *testing.T, e *cliEnv, conv *domain.Conversation) *teatest.Driver {
	t.Helper()
	history, err := e.app.Conversations.History(context.Background(), e.app.UserID, conv.ID, 0)
	require.NoError(t, err)
	m := newChatModel(context.Background(), e.app, conv, history)
	d := teatest.New(t, m, teatest.WithSize(100, 30), teatest.WithCmdTimeout(250*time.Millisecond))
	d.DrainInit()
	return d
}

func TestChatModel_SendShowsReplyAndRetitles(t *testing.T) {
	e := newCLIEnv(t)
	conv, err := e.app.Conversations.Create(context.Background(), e.app.UserID, "", "")
	require.NoError(t, err)
	d := newChatDriver(t, e, conv)

	assert.Contains(t, d.View(), domain.DefaultConversationTitle)

	d.Submit("how do I revise?")
	view := d.View()
	assert.Contains(t, view, "how do I revise?")
	assert.Contains(t, view, "Keep going")
	assert.NotContains(t, view, "Thinking...")

	m := d.Model.(*chatModel)
	assert.False(t, m.waiting)
	assert.Equal(t, "how do I revise?", m.conv.Title)
	assert.Empty(t, m.input.Value())
}

func TestChatModel_LoadsHistory(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "chat", "-m", "earlier question")

	master, err := e.app.Conversations.Master(context.Background(), e.app.UserID)
	require.NoError(t, err)
	d := newChatDriver(t, e, master)

	assert.Contains(t, d.View(), "earlier question")
}

func TestChatModel_MasterReportsRoadmapAction(t *testing.T) {
	e := newCLIEnv(t)
	master, err := e.app.Conversations.Master(context.Background(), e.app.UserID)
	require.NoError(t, err)
	d := newChatDriver(t, e, master)

	d.Submit("create roadmap react 8 weeks")
	assert.Contains(t, d.View(), "Roadmap created for react")
}

func TestChatModel_ErrorIsShownInline(t *testing.T) {
	e := newCLIEnv(t)
	e.llm.ChatErr = llm.ErrTimeout
	master, err := e.app.Conversations.Master(context.Background(), e.app.UserID)
	require.NoError(t, err)
	d := newChatDriver(t, e, master)

	d.Submit("hello")
	assert.Contains(t, d.View(), "Error:")
	assert.False(t, d.Quitting)
}

func TestChatModel_ClearCommand(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "chat", "-m", "earlier question")
	master, err := e.app.Conversations.Master(context.Background(), e.app.UserID)
	require.NoError(t, err)
	d := newChatDriver(t, e, master)

	d.Submit("/clear")
	view := d.View()
	assert.Contains(t, view, "History cleared.")
	assert.NotContains(t, view, "earlier question")

	history, err := e.app.Conversations.History(context.Background(), e.app.UserID, master.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatModel_BlankEnterDoesNothing(t *testing.T) {
	e := newCLIEnv(t)
	master, err := e.app.Conversations.Master(context.Background(), e.app.UserID)
	require.NoError(t, err)
	d := newChatDriver(t, e, master)

	d.Submit("   ")
	assert.Zero(t, e.llm.Calls)
}

func TestChatModel_Quit(t *testing.T) {
	e := newCLIEnv(t)
	master, err := e.app.Conversations.Master(context.Background(), e.app.UserID)
	require.NoError(t, err)

	for _, tc := range []struct {
		name  string
		press func(d *teatest.Driver)
	}{
		{"esc", func(d *teatest.Driver) { d.PressEsc() }},
		{"ctrl+c", func(d *teatest.Driver) { d.PressCtrlC() }},
		{"slash quit", func(d *teatest.Driver) { d.Submit("/quit") }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := newChatDriver(t, e, master)
			tc.press(d)
			assert.True(t, d.Quitting)
		})
	}
}
