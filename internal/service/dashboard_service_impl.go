package service

import (
	"context"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/repository"
)

type dashboardService struct {
	progress repository.ProgressRepo
	goals    repository.GoalRepo
	schedule repository.ScheduleRepo
}

func NewDashboardService(progress repository.ProgressRepo, goals repository.GoalRepo, schedule repository.ScheduleRepo) DashboardService {
	return &dashboardService{progress: progress, goals: goals, schedule: schedule}
}

func (s *dashboardService) Summary(ctx context.Context, userID string, now time.Time) (*DashboardSummary, error) {
	p, err := s.progress.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	goalCount, err := s.goals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := now.Format(domain.DateLayout)
	tasks, err := s.schedule.ListRange(ctx, userID, today, today)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{
		CompletedTasks: p.CompletedTasks,
		Streak:         p.Streak,
		GoalCount:      goalCount,
		Today:          today,
		TodayTasks:     tasks,
	}, nil
}
