package cli

import (
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConversationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversation",
		Aliases: []string{"conv"},
		Short:   "Manage mentor conversations",
	}

	cmd.AddCommand(
		newConversationListCmd(app),
		newConversationNewCmd(app),
		newConversationRenameCmd(app),
		newConversationPinCmd(app),
		newConversationDeleteCmd(app),
		newConversationHistoryCmd(app),
		newConversationClearCmd(app),
	)

	return cmd
}

func newConversationListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations, master and pinned first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Listing always materialises the master conversation.
			if _, err := app.Conversations.Master(ctx, app.UserID); err != nil {
				return err
			}
			convs, err := app.Conversations.List(ctx, app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatConversationList(convs, app.now()))
			return nil
		},
	}
}

func newConversationNewCmd(app *App) *cobra.Command {
	var title, skill string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new skill conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Conversations.Create(cmd.Context(), app.UserID, title, skill)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created conversation %s %s\n", formatter.Bold(c.Title), formatter.Dim(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Conversation title (default \"New Chat\")")
	cmd.Flags().StringVar(&skill, "skill", "", "Skill the conversation focuses on")

	return cmd
}

func newConversationRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <conversation-id> <title>",
		Short: "Rename a conversation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveConversationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Conversations.Rename(ctx, app.UserID, id, joinArgs(args[1:]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", formatter.Bold(c.Title))
			return nil
		},
	}
}

func newConversationPinCmd(app *App) *cobra.Command {
	var unpin bool

	cmd := &cobra.Command{
		Use:   "pin <conversation-id>",
		Short: "Pin a conversation to the top of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveConversationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Conversations.SetPinned(ctx, app.UserID, id, !unpin)
			if err != nil {
				return err
			}
			verb := "Pinned"
			if !c.Pinned {
				verb = "Unpinned"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, formatter.Bold(c.Title))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unpin, "off", false, "Unpin instead")

	return cmd
}

func newConversationDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <conversation-id>",
		Short: "Delete a conversation and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveConversationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Conversations.Delete(ctx, app.UserID, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted conversation", formatter.Dim(id))
			return nil
		},
	}
}

func newConversationHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [conversation-id]",
		Short: "Print a conversation transcript (master by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conv, err := chatConversation(ctx, app, args, false, "", "")
			if err != nil {
				return err
			}
			msgs, err := app.Conversations.History(ctx, app.UserID, conv.ID, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(conv, msgs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum messages to show (default 100)")

	return cmd
}

func newConversationClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [conversation-id]",
		Short: "Delete every message in a conversation (master by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conv, err := chatConversation(ctx, app, args, false, "", "")
			if err != nil {
				return err
			}
			if err := app.Conversations.ClearHistory(ctx, app.UserID, conv.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", formatter.Bold(conv.Title))
			return nil
		},
	}
}
