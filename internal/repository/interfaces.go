package repository

import (
	"context"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByTokenHash(ctx context.Context, hash string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type ProgressRepo interface {
	Get(ctx context.Context, userID string) (*domain.Progress, error)
	Upsert(ctx context.Context, p *domain.Progress) error
}

type ConversationRepo interface {
	Create(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	GetMaster(ctx context.Context, userID string) (*domain.Conversation, error)
	// ListByUser orders pinned conversations first, then by most recent update.
	ListByUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
	Update(ctx context.Context, c *domain.Conversation) error
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type MessageRepo interface {
	Create(ctx context.Context, m *domain.ChatMessage) error
	// ListByConversation returns the newest limit messages in chronological order.
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.ChatMessage, error)
	CountByConversation(ctx context.Context, conversationID string) (int, error)
	DeleteByConversation(ctx context.Context, conversationID string) error
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	// ListByUser returns goals newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type RoadmapRepo interface {
	// Upsert inserts or replaces the roadmap keyed by GoalID.
	Upsert(ctx context.Context, r *domain.Roadmap) error
	GetByGoal(ctx context.Context, goalID string) (*domain.Roadmap, error)
}

type ScheduleRepo interface {
	Create(ctx context.Context, t *domain.ScheduleTask) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleTask, error)
	// ListRange returns tasks with from <= date <= to ordered by date then sort order.
	ListRange(ctx context.Context, userID, from, to string) ([]*domain.ScheduleTask, error)
	// Append inserts t with the next free sort order on its date and sets t.SortOrder.
	Append(ctx context.Context, t *domain.ScheduleTask) error
	Update(ctx context.Context, t *domain.ScheduleTask) error
	// SwapOrder exchanges the sort order of two tasks on the same date.
	SwapOrder(ctx context.Context, a, b *domain.ScheduleTask) error
	Delete(ctx context.Context, id string) error
}

type VaultRepo interface {
	Create(ctx context.Context, p *domain.VaultPrompt) error
	GetByID(ctx context.Context, id string) (*domain.VaultPrompt, error)
	// ListByUser returns prompts most recently updated first.
	ListByUser(ctx context.Context, userID string) ([]*domain.VaultPrompt, error)
	Update(ctx context.Context, p *domain.VaultPrompt) error
	Delete(ctx context.Context, id string) error
}
