package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chatDeltaMsg carries one streamed chunk of the mentor's reply.
type chatDeltaMsg string

// chatReplyMsg ends a turn.
type chatReplyMsg struct {
	res *service.ChatResult
	err error
}

// chatModel is the interactive chat TUI: a scrolling transcript above a
// single-line input.
type chatModel struct {
	ctx  context.Context
	app  *App
	conv *domain.Conversation

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	entries []string
	pending string
	waiting bool

	// notify delivers streamed deltas while a turn is in flight. Nil means
	// the reply only shows up when the turn ends.
	notify func(tea.Msg)
}

func newChatModel(ctx context.Context, app *App, conv *domain.Conversation, history []*domain.ChatMessage) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask your mentor..."
	ti.CharLimit = 2000

	m := &chatModel{
		ctx:      ctx,
		app:      app,
		conv:     conv,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
	}
	for _, msg := range history {
		m.entries = append(m.entries, formatter.FormatChatMessage(msg))
	}
	m.refresh()
	return m
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			return m.handleInput(text)
		}

	case chatDeltaMsg:
		m.pending += string(msg)
		m.refresh()
		return m, nil

	case chatReplyMsg:
		m.finishTurn(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.conv.Title))
	b.WriteString(formatter.Dim("  enter send · /clear · esc quit"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.waiting && m.pending == "" {
		b.WriteString(m.spinner.View() + formatter.Dim(" Thinking..."))
	}
	b.WriteString("\n")
	b.WriteString(formatter.StyleBlue.Render("you") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	return b.String()
}

// ── input handling ───────────────────────────────────────────────────────────

func (m *chatModel) handleInput(text string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(text) {
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	case "/clear":
		if err := m.app.Conversations.ClearHistory(m.ctx, m.app.UserID, m.conv.ID); err != nil {
			m.entries = append(m.entries, formatter.StyleRed.Render("Error: "+err.Error()))
		} else {
			m.entries = []string{formatter.Dim("History cleared.")}
		}
		m.refresh()
		return m, nil
	}

	m.entries = append(m.entries, formatter.FormatChatMessage(&domain.ChatMessage{
		Role:      domain.RoleUser,
		Text:      text,
		Sentiment: domain.SentimentNeutral,
	}))
	m.waiting = true
	m.pending = ""
	m.refresh()
	return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
}

func (m *chatModel) sendCmd(text string) tea.Cmd {
	ctx, app, convID, notify := m.ctx, m.app, m.conv.ID, m.notify
	return func() tea.Msg {
		res, err := app.Chat.Send(ctx, app.UserID, convID, text, func(delta string) error {
			if notify != nil {
				notify(chatDeltaMsg(delta))
			}
			return nil
		})
		return chatReplyMsg{res: res, err: err}
	}
}

func (m *chatModel) finishTurn(msg chatReplyMsg) {
	m.waiting = false
	m.pending = ""
	if msg.err != nil {
		m.entries = append(m.entries, formatter.StyleRed.Render("Error: "+msg.err.Error()))
		m.refresh()
		return
	}
	if msg.res.AssistantMessage != nil {
		m.entries = append(m.entries, formatter.FormatChatMessage(msg.res.AssistantMessage))
	}
	if line := actionLine(msg.res); line != "" {
		m.entries = append(m.entries, line)
	}
	if msg.res.Renamed {
		if c, err := m.app.Conversations.Get(m.ctx, m.app.UserID, m.conv.ID); err == nil {
			m.conv = c
		}
	}
	m.refresh()
}

func (m *chatModel) refresh() {
	parts := m.entries
	if m.pending != "" {
		parts = append(parts[:len(parts):len(parts)], formatter.StylePurple.Render("Mentor")+"\n"+m.pending)
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
	m.viewport.GotoBottom()
}

// actionLine reports a roadmap action triggered from the master
// conversation.
func actionLine(res *service.ChatResult) string {
	if res == nil || res.Action == nil {
		return ""
	}
	if res.ActionErr != nil {
		return formatter.StyleRed.Render("✖ Roadmap for "+res.Action.Skill+" failed: ") + res.ActionErr.Error()
	}
	return formatter.StyleGreen.Render("✔ Roadmap created for "+res.Action.Skill) +
		formatter.Dim(" (goal "+res.Action.GoalID+")")
}
