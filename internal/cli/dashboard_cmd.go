package cli

import (
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"today"},
		Short:   "Show streak, completed tasks and today's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDashboard(cmd, app)
		},
	}
}

func printDashboard(cmd *cobra.Command, app *App) error {
	sum, err := app.Dashboard.Summary(cmd.Context(), app.UserID, app.now())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(formatter.DashboardData{
		CompletedTasks: sum.CompletedTasks,
		Streak:         sum.Streak,
		GoalCount:      sum.GoalCount,
		Today:          sum.Today,
		TodayTasks:     sum.TodayTasks,
	}))
	return nil
}
