package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
	"github.com/alexanderramin/neuroplan/internal/service"
	"github.com/spf13/cobra"
)

const defaultGoalWeeks = 8

func newRoadmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roadmap",
		Aliases: []string{"goal"},
		Short:   "Manage learning goals and their AI roadmaps",
	}

	cmd.AddCommand(
		newRoadmapNewCmd(app),
		newRoadmapGenerateCmd(app),
		newRoadmapListCmd(app),
		newRoadmapShowCmd(app),
		newRoadmapDeleteCmd(app),
		newRoadmapScheduleCmd(app),
	)

	return cmd
}

func newRoadmapNewCmd(app *App) *cobra.Command {
	var skill, level string
	var weeks int
	var generate bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a learning goal, optionally generating its roadmap",
		Long: `Create a learning goal.

Run without --skill in a terminal to answer a short wizard instead.

Examples:
  roadmap new
  roadmap new --skill React --level beginner --weeks 8 --generate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if skill == "" {
				if !app.interactive() {
					return fmt.Errorf("--skill is required when not running in a terminal")
				}
				v := goalWizardValues{Level: level}
				if err := goalWizardForm(&v).Run(); err != nil {
					return err
				}
				w, err := weeksFromInput(v.Weeks, defaultGoalWeeks)
				if err != nil {
					return err
				}
				skill, level, weeks, generate = v.Skill, v.Level, w, v.Generate
			}
			return createGoal(cmd.Context(), app, cmd.OutOrStdout(), skill, domain.Level(strings.ToLower(level)), weeks, generate)
		},
	}

	cmd.Flags().StringVar(&skill, "skill", "", "Skill to learn")
	enumFlag(cmd.Flags(), &level, "level", string(domain.LevelBeginner), "level", "beginner, intermediate or advanced", levelNames())
	cmd.Flags().IntVar(&weeks, "weeks", defaultGoalWeeks, "Duration in weeks (1-52)")
	cmd.Flags().BoolVar(&generate, "generate", false, "Generate the roadmap immediately")

	return cmd
}

func createGoal(ctx context.Context, app *App, w io.Writer, skill string, level domain.Level, weeks int, generate bool) error {
	g, err := app.Roadmaps.CreateGoal(ctx, app.UserID, skill, level, weeks)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Created goal %s %s\n", formatter.Bold(g.Skill), formatter.Dim(g.ID))
	if !generate {
		return nil
	}
	rm, err := generateRoadmap(ctx, app, w, g)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, formatter.FormatRoadmap(domain.GoalWithRoadmap{Goal: g, Roadmap: rm}))
	return nil
}

// generateRoadmap drafts and stores a roadmap for g, showing a spinner in
// a terminal.
func generateRoadmap(ctx context.Context, app *App, w io.Writer, g *domain.Goal) (*domain.Roadmap, error) {
	if app.interactive() {
		stop := formatter.StartSpinner(w, "Generating roadmap for "+g.Skill+"...")
		defer stop()
	}
	return app.Roadmaps.Generate(ctx, app.UserID, service.GenerateRoadmapRequest{
		Skill:         g.Skill,
		Level:         g.Level,
		DurationWeeks: g.DurationWeeks,
		GoalID:        g.ID,
	})
}

func newRoadmapGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <goal-id>",
		Short: "Generate (or regenerate) the roadmap for a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			gr, err := app.Roadmaps.GetRoadmap(ctx, app.UserID, id)
			if err != nil {
				return err
			}
			rm, err := generateRoadmap(ctx, app, cmd.OutOrStdout(), gr.Goal)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoadmap(domain.GoalWithRoadmap{Goal: gr.Goal, Roadmap: rm}))
			return nil
		},
	}
}

func newRoadmapListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learning goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.Roadmaps.ListGoals(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGoalList(goals))
			return nil
		},
	}
}

func newRoadmapShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal's roadmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			gr, err := app.Roadmaps.GetRoadmap(ctx, app.UserID, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRoadmap(*gr))
			return nil
		},
	}
}

func newRoadmapDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal and its roadmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force && app.interactive() {
				confirmed := false
				if err := wizardConfirm("Delete this goal and its roadmap?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Roadmaps.DeleteGoal(ctx, app.UserID, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted goal", formatter.Dim(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func newRoadmapScheduleCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "schedule <goal-id>",
		Short: "Spread a roadmap's tasks across the calendar, one per day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if start == "" && app.interactive() {
				if err := startDateForm(&start).Run(); err != nil {
					return err
				}
			}
			startDay := app.now()
			if start != "" {
				if startDay, err = scheduler.ParseDate(start); err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			}

			tasks, err := app.Roadmaps.ScheduleRoadmap(ctx, app.UserID, id, startDay)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("The roadmap has no tasks to schedule."))
				return nil
			}
			r := scheduler.DateRange{Start: tasks[0].Date, End: tasks[len(tasks)-1].Date}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %d tasks\n", len(tasks))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar("roadmap", r, tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD, default today)")

	return cmd
}
