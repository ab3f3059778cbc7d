package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"cal"},
		Short:   "Plan and tick off daily study tasks",
	}

	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleAddCmd(app),
		newScheduleToggleCmd(app),
		newScheduleMoveCmd(app),
		newScheduleDeleteCmd(app),
	)

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var view, date string
	var offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show tasks for a day, week or month",
		Long: `Show scheduled tasks.

Examples:
  schedule list
  schedule list --view week
  schedule list --view month --offset -1   # last month`,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor := app.now()
			if date != "" {
				t, err := scheduler.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				anchor = t
			}
			mode := scheduler.ParseViewMode(view)
			anchor = scheduler.ShiftAnchor(mode, anchor, offset)

			cal, err := app.Schedule.ListRange(cmd.Context(), app.UserID, mode, anchor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(cal.View, cal.Range, cal.Tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", string(scheduler.ViewDay), "day, week or month")
	cmd.Flags().StringVar(&date, "date", "", "Anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Shift the window by N days, weeks or months")

	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var date, note string

	cmd := &cobra.Command{
		Use:   "add <task>",
		Short: "Add a task to a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = app.now().Format(time.DateOnly)
			}
			var notePtr *string
			if cmd.Flags().Changed("note") {
				notePtr = &note
			}
			t, err := app.Schedule.Add(cmd.Context(), app.UserID, date, joinArgs(args), notePtr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s\n", formatter.Bold(t.Task), t.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")

	return cmd
}

func newScheduleToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <task-id>",
		Aliases: []string{"done"},
		Short:   "Mark a task done, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Schedule.Toggle(ctx, app.UserID, id)
			if err != nil {
				return err
			}
			if t.Status == domain.TaskDone {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔ Done:"), t.Task)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleBlue.Render("○ Pending:"), t.Task)
			}
			return nil
		},
	}
}

func newScheduleMoveCmd(app *App) *cobra.Command {
	var up, down bool

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task up or down within its day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if up == down {
				return fmt.Errorf("pass exactly one of --up or --down")
			}
			delta := 1
			if up {
				delta = -1
			}
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Move(ctx, app.UserID, id, delta); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Moved task", formatter.Dim(id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&up, "up", false, "Move one place earlier")
	cmd.Flags().BoolVar(&down, "down", false, "Move one place later")

	return cmd
}

func newScheduleDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Delete(ctx, app.UserID, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted task", formatter.Dim(id))
			return nil
		},
	}
}
