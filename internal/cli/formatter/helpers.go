package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RelativeDayFrom describes a YYYY-MM-DD date relative to today's date.
// Unparseable input is returned unchanged.
func RelativeDayFrom(date string, today time.Time) string {
	t, err := time.ParseInLocation("2006-01-02", date, today.Location())
	if err != nil {
		return date
	}
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	days := int(math.Round(t.Sub(base).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 7:
		return t.Format("Monday")
	default:
		return t.Format("Mon Jan 2")
	}
}

// HumanTimestamp renders t relative to now: "Just now", "5m ago", "3h ago"
// or an absolute date.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TaskStatusPill returns a check box for a schedule task.
func TaskStatusPill(status domain.TaskStatus) string {
	if status == domain.TaskDone {
		return StyleGreen.Render("✔")
	}
	return StyleBlue.Render("○")
}

// CategoryBadge returns a capitalized, purple-styled vault category label.
func CategoryBadge(c string) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ToUpper(c[:1]) + c[1:])
}

// TagList renders tags as "#go #react".
func TagList(tags []string) string {
	if len(tags) == 0 {
		return StyleDim.Render("--")
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return StyleBlue.Render(strings.Join(parts, " "))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
