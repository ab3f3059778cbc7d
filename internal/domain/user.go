package domain

import "time"

// LocalUserID identifies the single user the CLI acts as.
const LocalUserID = "local"

type User struct {
	ID          string
	DisplayName string
	Language    string
	TokenHash   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Progress aggregates completed work for the dashboard.
type Progress struct {
	UserID         string
	CompletedTasks int
	Streak         int
	LastActiveDate string // YYYY-MM-DD, empty before the first completion
	UpdatedAt      time.Time
}

// RecordCompletion counts one completed task on day and advances the streak.
// A completion on the day after LastActiveDate extends the streak, a second
// completion on the same day leaves it unchanged, anything else restarts it.
func (p *Progress) RecordCompletion(day string, now time.Time) {
	p.CompletedTasks++
	switch {
	case p.LastActiveDate == day:
	case p.LastActiveDate != "" && nextDay(p.LastActiveDate) == day:
		p.Streak++
		p.LastActiveDate = day
	default:
		p.Streak = 1
		p.LastActiveDate = day
	}
	p.UpdatedAt = now
}

func nextDay(day string) string {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}
