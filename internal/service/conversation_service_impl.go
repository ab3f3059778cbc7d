package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/google/uuid"
)

// DefaultHistoryLimit bounds how many messages a conversation loads.
const DefaultHistoryLimit = 100

type conversationService struct {
	conversations repository.ConversationRepo
	messages      repository.MessageRepo
	observer      UseCaseObserver
}

func NewConversationService(
	conversations repository.ConversationRepo,
	messages repository.MessageRepo,
	observers ...UseCaseObserver,
) ConversationService {
	return &conversationService{
		conversations: conversations,
		messages:      messages,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *conversationService) List(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	if _, err := s.Master(ctx, userID); err != nil {
		return nil, err
	}
	return s.conversations.ListByUser(ctx, userID)
}

func (s *conversationService) Master(ctx context.Context, userID string) (*domain.Conversation, error) {
	c, err := s.conversations.GetMaster(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	c = &domain.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     domain.MasterConversationTitle,
		Type:      domain.ConversationMaster,
		Pinned:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.conversations.Create(ctx, c); err != nil {
		// A concurrent caller may have won the partial unique index.
		if existing, getErr := s.conversations.GetMaster(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("creating master conversation: %w", err)
	}
	return c, nil
}

func (s *conversationService) Get(ctx context.Context, userID, id string) (*domain.Conversation, error) {
	c, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("conversation: %w", repository.ErrNotFound)
	}
	return c, nil
}

func (s *conversationService) Create(ctx context.Context, userID, title, skill string) (*domain.Conversation, error) {
	now := time.Now().UTC()
	c := &domain.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     domain.CoalesceStr(strings.TrimSpace(title), domain.DefaultConversationTitle),
		Type:      domain.ConversationSkill,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if skill = strings.TrimSpace(skill); skill != "" {
		c.Skill = &skill
	}
	if err := s.conversations.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *conversationService) Rename(ctx context.Context, userID, id, title string) (*domain.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title is required")
	}
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c.Title = title
	c.UpdatedAt = time.Now().UTC()
	if err := s.conversations.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *conversationService) SetPinned(ctx context.Context, userID, id string, pinned bool) (*domain.Conversation, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c.Pinned = pinned
	c.UpdatedAt = time.Now().UTC()
	if err := s.conversations.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *conversationService) Delete(ctx context.Context, userID, id string) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "delete-conversation", userID, startedAt, map[string]any{"conversation_id": id}, err)
	}()

	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if c.IsMaster() {
		return ErrMasterConversation
	}
	return s.conversations.Delete(ctx, id)
}

func (s *conversationService) History(ctx context.Context, userID, id string, limit int) ([]*domain.ChatMessage, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.messages.ListByConversation(ctx, id, limit)
}

func (s *conversationService) ClearHistory(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.messages.DeleteByConversation(ctx, id)
}
