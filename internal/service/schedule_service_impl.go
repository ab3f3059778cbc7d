package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
	"github.com/google/uuid"
)

type scheduleService struct {
	schedule repository.ScheduleRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewScheduleService(schedule repository.ScheduleRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		schedule: schedule,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *scheduleService) Add(ctx context.Context, userID, date, text string, note *string) (*domain.ScheduleTask, error) {
	now := s.now().UTC()
	t := &domain.ScheduleTask{
		ID:        uuid.New().String(),
		UserID:    userID,
		Task:      strings.TrimSpace(text),
		Date:      strings.TrimSpace(date),
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note != nil {
		if n := strings.TrimSpace(*note); n != "" {
			t.Note = &n
		}
	}
	if err := t.Validate(); err != nil {
		return nil, invalidErr(err)
	}

	if err := s.schedule.Append(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *scheduleService) Toggle(ctx context.Context, userID, taskID string) (task *domain.ScheduleTask, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID}
	defer func() {
		observe(ctx, s.observer, "toggle-task", userID, startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSchedule := repository.NewSQLiteScheduleRepo(tx)
		txProgress := repository.NewSQLiteProgressRepo(tx)

		t, err := ownedTask(ctx, txSchedule, userID, taskID)
		if err != nil {
			return err
		}
		now := s.now()
		status := t.Toggle(now.UTC())
		if err := txSchedule.Update(ctx, t); err != nil {
			return err
		}
		fields["status"] = string(status)

		if status == domain.TaskDone {
			p, err := txProgress.Get(ctx, userID)
			if err != nil {
				return err
			}
			p.RecordCompletion(now.Format(domain.DateLayout), now.UTC())
			if err := txProgress.Upsert(ctx, p); err != nil {
				return err
			}
			fields["streak"] = p.Streak
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *scheduleService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := ownedTask(ctx, s.schedule, userID, taskID); err != nil {
		return err
	}
	return s.schedule.Delete(ctx, taskID)
}

func (s *scheduleService) Move(ctx context.Context, userID, taskID string, delta int) error {
	if delta == 0 {
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSchedule := repository.NewSQLiteScheduleRepo(tx)

		t, err := ownedTask(ctx, txSchedule, userID, taskID)
		if err != nil {
			return err
		}
		sameDay, err := txSchedule.ListRange(ctx, userID, t.Date, t.Date)
		if err != nil {
			return err
		}
		idx := -1
		for i, other := range sameDay {
			if other.ID == t.ID {
				idx = i
				break
			}
		}
		target := idx + delta
		if idx < 0 || target < 0 || target >= len(sameDay) {
			return nil
		}
		return txSchedule.SwapOrder(ctx, sameDay[idx], sameDay[target])
	})
}

func (s *scheduleService) ListRange(ctx context.Context, userID string, view scheduler.ViewMode, anchor time.Time) (*CalendarView, error) {
	r := scheduler.CalendarRange(view, anchor)
	tasks, err := s.schedule.ListRange(ctx, userID, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	return &CalendarView{View: scheduler.ParseViewMode(string(view)), Range: r, Tasks: tasks}, nil
}

func ownedTask(ctx context.Context, repo repository.ScheduleRepo, userID, taskID string) (*domain.ScheduleTask, error) {
	t, err := repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("schedule task: %w", repository.ErrNotFound)
	}
	return t, nil
}
