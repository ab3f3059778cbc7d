package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
)

// FormatTask renders one schedule line: status, short id, text and note.
func FormatTask(t *domain.ScheduleTask) string {
	text := t.Task
	if t.IsDone() {
		text = Dim(text)
	}
	line := fmt.Sprintf("%s %s  %s", TaskStatusPill(t.Status), TruncID(t.ID), text)
	if t.Note != nil && *t.Note != "" {
		line += "  " + StylePurple.Render("· "+*t.Note)
	}
	return line
}

// FormatCalendar renders tasks grouped by day with a completion bar.
func FormatCalendar(view scheduler.ViewMode, r scheduler.DateRange, tasks []*domain.ScheduleTask, today time.Time) string {
	var b strings.Builder
	title := fmt.Sprintf("%s view  %s", view, r.Start)
	if r.End != r.Start {
		title += " → " + r.End
	}
	b.WriteString(Header(title))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(Dim("Nothing scheduled."))
		return b.String()
	}

	done := 0
	current := ""
	for _, t := range tasks {
		if t.Date != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = t.Date
			b.WriteString(StyleBold.Render(RelativeDayFrom(t.Date, today)) + " " + Dim(t.Date) + "\n")
		}
		b.WriteString("  " + FormatTask(t) + "\n")
		if t.IsDone() {
			done++
		}
	}
	b.WriteString("\n")
	b.WriteString(RenderProgress(Ratio(done, len(tasks)), 20))
	b.WriteString(Dim(fmt.Sprintf("  %d/%d done", done, len(tasks))))
	return b.String()
}
