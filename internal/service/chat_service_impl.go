package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/intelligence"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/google/uuid"
)

type chatService struct {
	conversations repository.ConversationRepo
	messages      repository.MessageRepo
	vault         repository.VaultRepo
	roadmaps      RoadmapService
	client        llm.LLMClient
	tokens        *llm.TokenCounter
	historyTokens int
	observer      UseCaseObserver
}

// NewChatService wires the chat pipeline. historyTokens bounds the prompt
// sent to the model; zero disables trimming.
func NewChatService(
	conversations repository.ConversationRepo,
	messages repository.MessageRepo,
	vault repository.VaultRepo,
	roadmaps RoadmapService,
	client llm.LLMClient,
	tokens *llm.TokenCounter,
	historyTokens int,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		conversations: conversations,
		messages:      messages,
		vault:         vault,
		roadmaps:      roadmaps,
		client:        client,
		tokens:        tokens,
		historyTokens: historyTokens,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *chatService) Send(ctx context.Context, userID, conversationID, text string, onDelta llm.DeltaFunc) (res *ChatResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"conversation_id": conversationID}
	defer func() {
		observe(ctx, s.observer, "chat-send", userID, startedAt, fields, err)
	}()

	if strings.TrimSpace(text) == "" {
		return nil, invalid("message is empty")
	}
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("conversation: %w", repository.ErrNotFound)
	}
	prior, err := s.messages.ListByConversation(ctx, conv.ID, DefaultHistoryLimit)
	if err != nil {
		return nil, err
	}

	sentiment := intelligence.DetectSentiment(text)
	fields["sentiment"] = string(sentiment)
	userMsg := &domain.ChatMessage{
		ID:             uuid.New().String(),
		UserID:         userID,
		ConversationID: conv.ID,
		Role:           domain.RoleUser,
		Text:           text,
		Sentiment:      sentiment,
		CreatedAt:      time.Now().UTC(),
	}
	if err = s.messages.Create(ctx, userMsg); err != nil {
		return nil, err
	}
	res = &ChatResult{UserMessage: userMsg}

	var outcome string
	if conv.IsMaster() {
		if action := intelligence.ParseRoadmapIntent(text); action != nil {
			goalID, actErr := s.roadmaps.ExecuteRoadmapAction(ctx, userID, action)
			res.Action = action
			res.ActionErr = actErr
			outcome = intelligence.ActionOutcome(action, goalID, actErr)
			fields["action"] = action.Type
			fields["goal_id"] = goalID
		}
	}

	system, err := s.systemPrompt(ctx, conv, text, sentiment, outcome)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(prior)+1)
	for _, m := range prior {
		history = append(history, llm.Message{Role: llmRole(m.Role), Content: m.Text})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: text})
	history = s.tokens.TrimHistory(system, history, s.historyTokens)
	fields["history_messages"] = len(history)

	resp, err := s.client.Stream(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: system,
		History:      history,
	}, deltaOrNoop(onDelta))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if strings.TrimSpace(resp.Text) != "" {
		res.AssistantMessage = &domain.ChatMessage{
			ID:             uuid.New().String(),
			UserID:         userID,
			ConversationID: conv.ID,
			Role:           domain.RoleAssistant,
			Text:           resp.Text,
			Sentiment:      domain.SentimentNeutral,
			CreatedAt:      time.Now().UTC(),
		}
		if err = s.messages.Create(ctx, res.AssistantMessage); err != nil {
			return nil, err
		}
	}

	if conv.NeedsAutoTitle(len(prior)) {
		conv.Title = domain.TitleFromMessage(text)
		conv.UpdatedAt = time.Now().UTC()
		if err = s.conversations.Update(ctx, conv); err != nil {
			return nil, err
		}
		res.Renamed = true
	} else if err = s.conversations.Touch(ctx, conv.ID); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *chatService) Complete(ctx context.Context, req CompletionRequest, onDelta llm.DeltaFunc) (*llm.GenerateResponse, error) {
	if len(req.Messages) == 0 {
		return nil, invalid("messages are required")
	}
	system, err := intelligence.SystemContext(nil)
	if err != nil {
		return nil, err
	}
	system = domain.CoalesceStr(strings.TrimSpace(req.SystemContext), system)
	if hint := intelligence.ToneHint(req.Sentiment); hint != "" {
		system += "\n\n" + hint
	}
	history := s.tokens.TrimHistory(system, req.Messages, s.historyTokens)

	resp, err := s.client.Stream(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: system,
		History:      history,
	}, deltaOrNoop(onDelta))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	return resp, nil
}

// systemPrompt layers the conversation context, tone guidance, any action
// outcome and relevant vault prompts.
func (s *chatService) systemPrompt(ctx context.Context, conv *domain.Conversation, text string, sentiment domain.Sentiment, outcome string) (string, error) {
	base, err := intelligence.SystemContext(conv)
	if err != nil {
		return "", err
	}
	if hint := intelligence.ToneHint(sentiment); hint != "" {
		base += "\n\n" + hint
	}
	if outcome != "" {
		base += "\n\n" + outcome
	}
	prompts, err := s.vault.ListByUser(ctx, conv.UserID)
	if err != nil {
		return "", err
	}
	return intelligence.BuildEnhancedSystemPrompt(base, intelligence.RelevantPrompts(text, conv.SkillName(), prompts)), nil
}

func llmRole(r domain.Role) llm.Role {
	if r == domain.RoleAssistant {
		return llm.RoleAssistant
	}
	return llm.RoleUser
}

func deltaOrNoop(fn llm.DeltaFunc) llm.DeltaFunc {
	if fn != nil {
		return fn
	}
	return func(string) error { return nil }
}
