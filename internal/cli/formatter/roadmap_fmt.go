package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// FormatGoalList renders learning goals and whether each has a roadmap.
func FormatGoalList(goals []domain.GoalWithRoadmap) string {
	if len(goals) == 0 {
		return Dim("No goals yet. Create one with: neuroplan roadmap new")
	}

	headers := []string{"ID", "SKILL", "LEVEL", "WEEKS", "ROADMAP"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		roadmap := Dim("--")
		if g.Roadmap != nil {
			roadmap = StyleGreen.Render(fmt.Sprintf("✔ %d milestones", len(g.Roadmap.Content.Milestones)))
		}
		rows = append(rows, []string{
			TruncID(g.Goal.ID),
			Bold(g.Goal.Skill),
			LevelBadge(g.Goal.Level),
			fmt.Sprintf("%d", g.Goal.DurationWeeks),
			roadmap,
		})
	}
	return Header("Learning Goals") + "\n" + RenderTable(headers, rows)
}

// FormatRoadmap renders a goal with its milestone tree, risks and success
// outcome.
func FormatRoadmap(g domain.GoalWithRoadmap) string {
	var b strings.Builder
	b.WriteString(Header(g.Goal.Skill))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", LevelBadge(g.Goal.Level), Dim(fmt.Sprintf("%d weeks", g.Goal.DurationWeeks))))

	if g.Roadmap == nil {
		b.WriteString("\n")
		b.WriteString(Dim("No roadmap yet. Generate one with: neuroplan roadmap generate " + g.Goal.ID))
		return b.String()
	}

	c := g.Roadmap.Content
	if c.Goal != "" {
		b.WriteString("\n" + Bold(c.Goal) + "\n")
	}
	if c.Outcome != "" {
		b.WriteString(Dim("Outcome: ") + c.Outcome + "\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderTree(milestoneTree(c.Milestones)))

	if len(c.Risks) > 0 {
		b.WriteString("\n" + StyleYellowBold.Render("Risks") + "\n")
		for _, r := range c.Risks {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("▲"), r.Risk))
			if r.Mitigation != "" {
				b.WriteString("    " + Dim("→ "+r.Mitigation) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func milestoneTree(ms []domain.Milestone) []TreeItem {
	var items []TreeItem
	for _, m := range ms {
		items = append(items, TreeItem{Title: m.Title, Detail: weekLabel(m)})
		for i, task := range m.Tasks {
			items = append(items, TreeItem{Title: task, Level: 1, IsLast: i == len(m.Tasks)-1})
		}
	}
	return items
}

func weekLabel(m domain.Milestone) string {
	if m.WeekStart == m.WeekEnd {
		return fmt.Sprintf("Wk %d", m.WeekStart)
	}
	return fmt.Sprintf("Wk %d-%d", m.WeekStart, m.WeekEnd)
}
