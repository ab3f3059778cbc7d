package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/intelligence"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
)

type UserService interface {
	// EnsureLocalUser returns the single CLI user, creating it on first use.
	EnsureLocalUser(ctx context.Context) (*domain.User, error)
	// CreateUser registers a user and returns the bearer token. Only its
	// hash is stored, so the token cannot be recovered later.
	CreateUser(ctx context.Context, displayName string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type ConversationService interface {
	// List returns pinned conversations first, creating the master
	// conversation when the user has none.
	List(ctx context.Context, userID string) ([]*domain.Conversation, error)
	Get(ctx context.Context, userID, id string) (*domain.Conversation, error)
	Master(ctx context.Context, userID string) (*domain.Conversation, error)
	Create(ctx context.Context, userID, title, skill string) (*domain.Conversation, error)
	Rename(ctx context.Context, userID, id, title string) (*domain.Conversation, error)
	SetPinned(ctx context.Context, userID, id string, pinned bool) (*domain.Conversation, error)
	Delete(ctx context.Context, userID, id string) error
	History(ctx context.Context, userID, id string, limit int) ([]*domain.ChatMessage, error)
	ClearHistory(ctx context.Context, userID, id string) error
}

// ChatResult summarises one exchange in a stored conversation.
type ChatResult struct {
	UserMessage      *domain.ChatMessage
	AssistantMessage *domain.ChatMessage // nil when the model returned nothing
	Action           *intelligence.RoadmapAction
	ActionErr        error
	Renamed          bool
}

// CompletionRequest is a stateless chat turn: the caller supplies the whole
// transcript.
type CompletionRequest struct {
	Messages      []llm.Message
	Sentiment     domain.Sentiment
	SystemContext string
}

type ChatService interface {
	Send(ctx context.Context, userID, conversationID, text string, onDelta llm.DeltaFunc) (*ChatResult, error)
	Complete(ctx context.Context, req CompletionRequest, onDelta llm.DeltaFunc) (*llm.GenerateResponse, error)
}

// GenerateRoadmapRequest mirrors the generate-roadmap function payload.
type GenerateRoadmapRequest struct {
	Skill         string       `json:"skill"`
	Level         domain.Level `json:"level"`
	DurationWeeks int          `json:"duration_weeks"`
	GoalID        string       `json:"goal_id"`
}

type RoadmapService interface {
	CreateGoal(ctx context.Context, userID, skill string, level domain.Level, weeks int) (*domain.Goal, error)
	Generate(ctx context.Context, userID string, req GenerateRoadmapRequest) (*domain.Roadmap, error)
	// ExecuteRoadmapAction creates a goal and generates its roadmap. The
	// returned goal id is set whenever the goal was created, even if
	// generation then failed.
	ExecuteRoadmapAction(ctx context.Context, userID string, action *intelligence.RoadmapAction) (string, error)
	ListGoals(ctx context.Context, userID string) ([]domain.GoalWithRoadmap, error)
	GetRoadmap(ctx context.Context, userID, goalID string) (*domain.GoalWithRoadmap, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
	ScheduleRoadmap(ctx context.Context, userID, goalID string, start time.Time) ([]*domain.ScheduleTask, error)
}

// CalendarView is a resolved window and the tasks inside it.
type CalendarView struct {
	View  scheduler.ViewMode
	Range scheduler.DateRange
	Tasks []*domain.ScheduleTask
}

type ScheduleService interface {
	Add(ctx context.Context, userID, date, text string, note *string) (*domain.ScheduleTask, error)
	Toggle(ctx context.Context, userID, taskID string) (*domain.ScheduleTask, error)
	Delete(ctx context.Context, userID, taskID string) error
	// Move swaps the task with its neighbour delta positions away on the
	// same date. Moving past either end is a no-op.
	Move(ctx context.Context, userID, taskID string, delta int) error
	ListRange(ctx context.Context, userID string, view scheduler.ViewMode, anchor time.Time) (*CalendarView, error)
}

// VaultFilter narrows List results. Empty fields match everything.
type VaultFilter struct {
	Search   string
	Tag      string
	Category string
}

type VaultService interface {
	// Save creates p when its ID is empty and updates it otherwise.
	Save(ctx context.Context, userID string, p *domain.VaultPrompt) error
	Get(ctx context.Context, userID, id string) (*domain.VaultPrompt, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*domain.VaultPrompt, error)
	Filter(ctx context.Context, userID string, f VaultFilter) ([]*domain.VaultPrompt, error)
	Tags(ctx context.Context, userID string) ([]string, error)
	ImportYAML(ctx context.Context, userID string, r io.Reader) (int, error)
}

// DashboardSummary is the landing view: progress counters and today's plan.
type DashboardSummary struct {
	CompletedTasks int
	Streak         int
	GoalCount      int
	Today          string
	TodayTasks     []*domain.ScheduleTask
}

type DashboardService interface {
	Summary(ctx context.Context, userID string, now time.Time) (*DashboardSummary, error)
}
