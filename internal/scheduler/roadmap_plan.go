package scheduler

import (
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// PlannedTask is a roadmap task placed on a calendar date.
type PlannedTask struct {
	Date string
	Task string
	Note string // milestone title
}

// PlanRoadmap spreads milestone tasks over the calendar. Milestone week w
// starts 7*(w-1) days after start and its tasks fall one per day from there.
// Blank tasks are skipped.
func PlanRoadmap(content domain.RoadmapContent, start time.Time) []PlannedTask {
	start = truncateDay(start)
	var out []PlannedTask
	for _, m := range content.Milestones {
		week := m.WeekStart
		if week < 1 {
			week = 1
		}
		day := start.AddDate(0, 0, 7*(week-1))
		for _, task := range m.Tasks {
			task = strings.TrimSpace(task)
			if task == "" {
				continue
			}
			out = append(out, PlannedTask{Date: format(day), Task: task, Note: m.Title})
			day = day.AddDate(0, 0, 1)
		}
	}
	return out
}
