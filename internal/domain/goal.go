package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxGoalWeeks bounds roadmap durations.
const MaxGoalWeeks = 52

type Goal struct {
	ID            string
	UserID        string
	Skill         string
	Level         Level
	DurationWeeks int
	CreatedAt     time.Time
}

// Validate checks the goal's skill, level and duration.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Skill) == "" {
		return fmt.Errorf("skill is required")
	}
	if !ValidLevels[g.Level] {
		return fmt.Errorf("level %q must be one of beginner, intermediate, advanced", g.Level)
	}
	if g.DurationWeeks < 1 || g.DurationWeeks > MaxGoalWeeks {
		return fmt.Errorf("duration must be between 1 and %d weeks, got %d", MaxGoalWeeks, g.DurationWeeks)
	}
	return nil
}

// GoalWithRoadmap pairs a goal with its roadmap when one has been generated.
type GoalWithRoadmap struct {
	Goal    *Goal
	Roadmap *Roadmap
}
