package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var message, skill, title string
	var newConv bool

	cmd := &cobra.Command{
		Use:   "chat [conversation-id]",
		Short: "Chat with your AI mentor",
		Long: `Chat with the AI mentor in a conversation.

Without a conversation ID the Master Control conversation is used, which
also understands roadmap requests such as "create roadmap react 8 weeks".

Examples:
  chat
  chat -m "How do I stay consistent with flashcards?"
  chat --new --skill Chemistry -m "Plan my revision"
  chat 3f2a1c -m "What should I do next?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conv, err := chatConversation(ctx, app, args, newConv, title, skill)
			if err != nil {
				return err
			}

			if message != "" {
				return runChatOnce(ctx, app, cmd.OutOrStdout(), conv, message)
			}
			if !app.interactive() {
				return fmt.Errorf("--message is required when not running in a terminal")
			}
			return runChatTUI(ctx, app, conv)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Send one message and print the reply")
	cmd.Flags().BoolVar(&newConv, "new", false, "Start a new conversation")
	cmd.Flags().StringVar(&title, "title", "", "Title for a new conversation")
	cmd.Flags().StringVar(&skill, "skill", "", "Skill focus for a new conversation")

	return cmd
}

func chatConversation(ctx context.Context, app *App, args []string, newConv bool, title, skill string) (*domain.Conversation, error) {
	switch {
	case newConv:
		return app.Conversations.Create(ctx, app.UserID, title, skill)
	case len(args) == 1:
		id, err := resolveConversationID(ctx, app, args[0])
		if err != nil {
			return nil, err
		}
		return app.Conversations.Get(ctx, app.UserID, id)
	default:
		return app.Conversations.Master(ctx, app.UserID)
	}
}

// runChatOnce sends a single message and streams the reply to w.
func runChatOnce(ctx context.Context, app *App, w io.Writer, conv *domain.Conversation, text string) error {
	res, err := app.Chat.Send(ctx, app.UserID, conv.ID, text, func(delta string) error {
		_, werr := io.WriteString(w, delta)
		return werr
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	printChatAction(w, res)
	return nil
}

func printChatAction(w io.Writer, res *service.ChatResult) {
	if line := actionLine(res); line != "" {
		fmt.Fprintln(w, line)
	}
}

func runChatTUI(ctx context.Context, app *App, conv *domain.Conversation) error {
	history, err := app.Conversations.History(ctx, app.UserID, conv.ID, service.DefaultHistoryLimit)
	if err != nil {
		return err
	}
	m := newChatModel(ctx, app, conv, history)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.notify = p.Send
	_, err = p.Run()
	return err
}
