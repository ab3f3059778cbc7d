package server

import (
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
	"github.com/alexanderramin/neuroplan/internal/service"
)

type conversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"conversation_type"`
	Skill     *string   `json:"skill"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Message        string    `json:"message"`
	Sentiment      string    `json:"sentiment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type roadmapResponse struct {
	ID        string                `json:"id"`
	GoalID    string                `json:"goal_id"`
	Content   domain.RoadmapContent `json:"content"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type goalResponse struct {
	ID            string           `json:"id"`
	Skill         string           `json:"skill"`
	Level         string           `json:"level"`
	DurationWeeks int              `json:"duration_weeks"`
	CreatedAt     time.Time        `json:"created_at"`
	Roadmap       *roadmapResponse `json:"roadmap,omitempty"`
}

type taskResponse struct {
	ID        string  `json:"id"`
	Task      string  `json:"task"`
	Date      string  `json:"task_date"`
	Status    string  `json:"status"`
	SortOrder int     `json:"sort_order"`
	Note      *string `json:"note"`
}

type promptResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

type calendarResponse struct {
	View  scheduler.ViewMode  `json:"view"`
	Range scheduler.DateRange `json:"range"`
	Tasks []taskResponse      `json:"tasks"`
}

type dashboardResponse struct {
	CompletedTasks int            `json:"completed_tasks"`
	Streak         int            `json:"streak"`
	GoalCount      int            `json:"goal_count"`
	Today          string         `json:"today"`
	TodayTasks     []taskResponse `json:"today_tasks"`
}

type chatMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Messages      []chatMessageRequest `json:"messages"`
	Sentiment     string               `json:"sentiment"`
	SystemContext string               `json:"system_context"`
}

type createConversationRequest struct {
	Title string `json:"title"`
	Skill string `json:"skill"`
}

type updateConversationRequest struct {
	Title  *string `json:"title"`
	Pinned *bool   `json:"pinned"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type createGoalRequest struct {
	Skill         string `json:"skill"`
	Level         string `json:"level"`
	DurationWeeks int    `json:"duration_weeks"`
	Generate      bool   `json:"generate"`
}

type scheduleGoalRequest struct {
	Start string `json:"start"`
}

type addTaskRequest struct {
	Date string  `json:"task_date"`
	Task string  `json:"task"`
	Note *string `json:"note"`
}

type moveTaskRequest struct {
	Delta int `json:"delta"`
}

type promptRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

func toConversation(c *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:        c.ID,
		Title:     c.Title,
		Type:      string(c.Type),
		Skill:     c.Skill,
		Pinned:    c.Pinned,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMessages(msgs []*domain.ChatMessage) []messageResponse {
	out := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = messageResponse{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			Role:           string(m.Role),
			Message:        m.Text,
			Sentiment:      string(m.Sentiment),
			CreatedAt:      m.CreatedAt,
		}
	}
	return out
}

func toRoadmap(r *domain.Roadmap) *roadmapResponse {
	if r == nil {
		return nil
	}
	return &roadmapResponse{ID: r.ID, GoalID: r.GoalID, Content: r.Content, UpdatedAt: r.UpdatedAt}
}

func toGoal(g domain.GoalWithRoadmap) goalResponse {
	return goalResponse{
		ID:            g.Goal.ID,
		Skill:         g.Goal.Skill,
		Level:         string(g.Goal.Level),
		DurationWeeks: g.Goal.DurationWeeks,
		CreatedAt:     g.Goal.CreatedAt,
		Roadmap:       toRoadmap(g.Roadmap),
	}
}

func toTask(t *domain.ScheduleTask) taskResponse {
	return taskResponse{
		ID:        t.ID,
		Task:      t.Task,
		Date:      t.Date,
		Status:    string(t.Status),
		SortOrder: t.SortOrder,
		Note:      t.Note,
	}
}

func toTasks(tasks []*domain.ScheduleTask) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTask(t)
	}
	return out
}

func toPrompt(p *domain.VaultPrompt) promptResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return promptResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Tags:      tags,
		Category:  p.Category,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCompletionRequest(req chatCompletionRequest) service.CompletionRequest {
	msgs := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := llm.RoleUser
		if m.Role == string(llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	return service.CompletionRequest{
		Messages:      msgs,
		Sentiment:     domain.Sentiment(req.Sentiment),
		SystemContext: req.SystemContext,
	}
}
