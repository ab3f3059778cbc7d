package domain

import (
	"fmt"
	"time"
)

type Roadmap struct {
	ID        string
	GoalID    string
	Content   RoadmapContent
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoadmapContent is the JSON document produced by the roadmap generator.
type RoadmapContent struct {
	Goal       string      `json:"goal" yaml:"goal"`
	Outcome    string      `json:"outcome" yaml:"outcome"`
	Milestones []Milestone `json:"milestones" yaml:"milestones"`
	Risks      []Risk      `json:"risks" yaml:"risks"`
	TotalWeeks int         `json:"total_weeks" yaml:"total_weeks"`
	Difficulty string      `json:"difficulty" yaml:"difficulty"`
}

type Milestone struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	WeekStart   int      `json:"week_start" yaml:"week_start"`
	WeekEnd     int      `json:"week_end" yaml:"week_end"`
	KPIs        []string `json:"kpis" yaml:"kpis"`
	Resources   []string `json:"resources" yaml:"resources"`
	Tasks       []string `json:"tasks" yaml:"tasks"`
}

type Risk struct {
	Risk       string `json:"risk" yaml:"risk"`
	Mitigation string `json:"mitigation" yaml:"mitigation"`
}

// Validate checks the structural minimum a generated roadmap must satisfy.
func (c RoadmapContent) Validate() error {
	if len(c.Milestones) == 0 {
		return fmt.Errorf("roadmap has no milestones")
	}
	for i, m := range c.Milestones {
		if m.Title == "" {
			return fmt.Errorf("milestone %d has no title", i+1)
		}
		if m.WeekStart < 1 || m.WeekEnd < m.WeekStart {
			return fmt.Errorf("milestone %q has invalid week range %d-%d", m.Title, m.WeekStart, m.WeekEnd)
		}
	}
	return nil
}

// WeekSpan returns the highest week covered by any milestone, falling back
// to TotalWeeks when milestones are empty.
func (c RoadmapContent) WeekSpan() int {
	span := 0
	for _, m := range c.Milestones {
		if m.WeekEnd > span {
			span = m.WeekEnd
		}
	}
	if span == 0 {
		return c.TotalWeeks
	}
	return span
}
