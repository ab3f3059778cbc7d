package scheduler

import (
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// ViewMode selects the window a schedule view covers.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// DateRange is an inclusive pair of ISO dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether the ISO date falls inside the range.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// ParseViewMode maps user input to a ViewMode. Anything unrecognised is
// treated as the day view.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewWeek:
		return ViewWeek
	case ViewMonth:
		return ViewMonth
	default:
		return ViewDay
	}
}

// CalendarRange returns the window of view around anchor. Weeks run Monday
// to Sunday; months run from the first to the last calendar day.
func CalendarRange(view ViewMode, anchor time.Time) DateRange {
	day := truncateDay(anchor)
	switch view {
	case ViewWeek:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return DateRange{Start: format(start), End: format(start.AddDate(0, 0, 6))}
	case ViewMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return DateRange{Start: format(start), End: format(start.AddDate(0, 1, -1))}
	default:
		return DateRange{Start: format(day), End: format(day)}
	}
}

// ShiftAnchor moves anchor by n windows of view; negative n goes back.
// Month shifts clamp to the first of the month so day overflow cannot skip
// a month.
func ShiftAnchor(view ViewMode, anchor time.Time, n int) time.Time {
	day := truncateDay(anchor)
	switch view {
	case ViewWeek:
		return day.AddDate(0, 0, 7*n)
	case ViewMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return first.AddDate(0, n, 0)
	default:
		return day.AddDate(0, 0, n)
	}
}

// ParseDate parses an ISO date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.Local)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func format(t time.Time) string {
	return t.Format(domain.DateLayout)
}
