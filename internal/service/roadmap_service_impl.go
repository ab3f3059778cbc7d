package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/intelligence"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
	"github.com/google/uuid"
)

type roadmapService struct {
	goals    repository.GoalRepo
	roadmaps repository.RoadmapRepo
	drafter  intelligence.RoadmapDraftService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRoadmapService(
	goals repository.GoalRepo,
	roadmaps repository.RoadmapRepo,
	drafter intelligence.RoadmapDraftService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) RoadmapService {
	return &roadmapService{
		goals:    goals,
		roadmaps: roadmaps,
		drafter:  drafter,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *roadmapService) CreateGoal(ctx context.Context, userID, skill string, level domain.Level, weeks int) (*domain.Goal, error) {
	g := &domain.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Skill:         strings.TrimSpace(skill),
		Level:         level,
		DurationWeeks: weeks,
		CreatedAt:     time.Now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return nil, invalidErr(err)
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *roadmapService) Generate(ctx context.Context, userID string, req GenerateRoadmapRequest) (rm *domain.Roadmap, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"goal_id": req.GoalID,
		"skill":   req.Skill,
		"level":   string(req.Level),
		"weeks":   req.DurationWeeks,
	}
	defer func() {
		observe(ctx, s.observer, "generate-roadmap", userID, startedAt, fields, err)
	}()

	if req.GoalID == "" {
		return nil, invalid("goal_id is required")
	}
	probe := domain.Goal{Skill: req.Skill, Level: req.Level, DurationWeeks: req.DurationWeeks}
	if err = probe.Validate(); err != nil {
		return nil, invalidErr(err)
	}
	if _, err = s.ownedGoal(ctx, userID, req.GoalID); err != nil {
		return nil, err
	}

	draft, err := s.drafter.Draft(ctx, strings.TrimSpace(req.Skill), req.Level, req.DurationWeeks)
	if err != nil {
		var de *intelligence.DraftError
		if errors.As(err, &de) && de.Stage == "parse" {
			fields["stage"] = de.Stage
			fields["raw_len"] = len(de.Raw)
			return nil, &GenerationError{Message: msgParseFailed, Err: err}
		}
		return nil, &GenerationError{Message: msgGenerationFailed, Err: err}
	}
	fields["milestones"] = len(draft.Content.Milestones)

	now := time.Now().UTC()
	rm = &domain.Roadmap{
		ID:        uuid.New().String(),
		GoalID:    req.GoalID,
		Content:   draft.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.roadmaps.Upsert(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *roadmapService) ExecuteRoadmapAction(ctx context.Context, userID string, action *intelligence.RoadmapAction) (string, error) {
	if action == nil || action.Type != intelligence.ActionCreateRoadmap {
		return "", invalid("unsupported action")
	}
	g, err := s.CreateGoal(ctx, userID, action.Skill, action.Level, action.Weeks)
	if err != nil {
		return "", err
	}
	action.GoalID = g.ID

	_, err = s.Generate(ctx, userID, GenerateRoadmapRequest{
		Skill:         g.Skill,
		Level:         g.Level,
		DurationWeeks: g.DurationWeeks,
		GoalID:        g.ID,
	})
	return g.ID, err
}

func (s *roadmapService) ListGoals(ctx context.Context, userID string) ([]domain.GoalWithRoadmap, error) {
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.GoalWithRoadmap, 0, len(goals))
	for _, g := range goals {
		rm, err := s.roadmaps.GetByGoal(ctx, g.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		out = append(out, domain.GoalWithRoadmap{Goal: g, Roadmap: rm})
	}
	return out, nil
}

func (s *roadmapService) GetRoadmap(ctx context.Context, userID, goalID string) (*domain.GoalWithRoadmap, error) {
	g, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	rm, err := s.roadmaps.GetByGoal(ctx, goalID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &domain.GoalWithRoadmap{Goal: g, Roadmap: rm}, nil
}

func (s *roadmapService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goals.Delete(ctx, goalID)
}

func (s *roadmapService) ScheduleRoadmap(ctx context.Context, userID, goalID string, start time.Time) (tasks []*domain.ScheduleTask, err error) {
	startedAt := time.Now()
	fields := map[string]any{"goal_id": goalID, "start": start.Format(domain.DateLayout)}
	defer func() {
		fields["tasks"] = len(tasks)
		observe(ctx, s.observer, "schedule-roadmap", userID, startedAt, fields, err)
	}()

	gr, err := s.GetRoadmap(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if gr.Roadmap == nil {
		return nil, invalid("goal %s has no roadmap yet", goalID)
	}
	planned := scheduler.PlanRoadmap(gr.Roadmap.Content, start)
	if len(planned) == 0 {
		return nil, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSchedule := repository.NewSQLiteScheduleRepo(tx)
		now := time.Now().UTC()
		for _, p := range planned {
			note := p.Note
			t := &domain.ScheduleTask{
				ID:        uuid.New().String(),
				UserID:    userID,
				Task:      p.Task,
				Date:      p.Date,
				Status:    domain.TaskPending,
				Note:      &note,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := txSchedule.Append(ctx, t); err != nil {
				return fmt.Errorf("scheduling %q on %s: %w", p.Task, p.Date, err)
			}
			tasks = append(tasks, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *roadmapService) ownedGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, fmt.Errorf("goal: %w", repository.ErrNotFound)
	}
	return g, nil
}
