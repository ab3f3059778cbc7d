package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for task dates.
const DateLayout = "2006-01-02"

type ScheduleTask struct {
	ID        string
	UserID    string
	Task      string
	Date      string
	Status    TaskStatus
	SortOrder int
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *ScheduleTask) IsDone() bool {
	return t.Status == TaskDone
}

// Toggle flips the task between pending and done and returns the new status.
func (t *ScheduleTask) Toggle(now time.Time) TaskStatus {
	if t.Status == TaskDone {
		t.Status = TaskPending
	} else {
		t.Status = TaskDone
	}
	t.UpdatedAt = now
	return t.Status
}

// Validate checks the task text and date.
func (t *ScheduleTask) Validate() error {
	if strings.TrimSpace(t.Task) == "" {
		return fmt.Errorf("task text is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("task date %q must use YYYY-MM-DD", t.Date)
	}
	return nil
}
