package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// DashboardData is what the dashboard box shows.
type DashboardData struct {
	CompletedTasks int
	Streak         int
	GoalCount      int
	Today          string
	TodayTasks     []*domain.ScheduleTask
}

// FormatDashboard renders streak, totals and today's tasks.
func FormatDashboard(d DashboardData) string {
	var b strings.Builder

	streak := fmt.Sprintf("%d day", d.Streak)
	if d.Streak != 1 {
		streak += "s"
	}
	streakStyle := StyleDim
	if d.Streak > 0 {
		streakStyle = StyleHeader
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Streak   "), streakStyle.Render("🔥 "+streak)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Completed"), Bold(fmt.Sprintf("%d tasks", d.CompletedTasks))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Goals    "), Bold(fmt.Sprintf("%d", d.GoalCount))))

	b.WriteString("\n" + StyleBold.Render("Today") + " " + Dim(d.Today) + "\n")
	if len(d.TodayTasks) == 0 {
		b.WriteString(Dim("  Nothing scheduled for today."))
		return RenderBox("Dashboard", b.String())
	}
	done := 0
	for _, t := range d.TodayTasks {
		b.WriteString("  " + FormatTask(t) + "\n")
		if t.IsDone() {
			done++
		}
	}
	b.WriteString("\n" + RenderProgress(Ratio(done, len(d.TodayTasks)), 16))
	return RenderBox("Dashboard", b.String())
}
