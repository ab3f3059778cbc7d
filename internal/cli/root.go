package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/neuroplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Users         service.UserService
	Conversations service.ConversationService
	Chat          service.ChatService
	Roadmaps      service.RoadmapService
	Schedule      service.ScheduleService
	Vault         service.VaultService
	Dashboard     service.DashboardService

	// UserID is the account every command acts as.
	UserID string

	// Serve runs the HTTP API on addr until ctx is cancelled. Nil disables
	// the serve command.
	Serve       func(ctx context.Context, addr string) error
	DefaultAddr string

	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "neuroplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "neuroplan",
		Short: "AI learning mentor, roadmap planner and study scheduler",
		Long: `NeuroPlan pairs an AI mentor chat with learning roadmaps, a task
calendar and a personal prompt vault.

Run without a subcommand to see today's dashboard.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDashboard(cmd, app)
		},
	}

	root.AddCommand(
		newChatCmd(app),
		newConversationCmd(app),
		newRoadmapCmd(app),
		newScheduleCmd(app),
		newVaultCmd(app),
		newDashboardCmd(app),
		newUserCmd(app),
		newIntentCmd(),
		newServeCmd(app),
	)

	return root
}
