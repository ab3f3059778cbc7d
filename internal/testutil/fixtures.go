package testutil

import (
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/google/uuid"
)

// User options
type UserOption func(*domain.User)

func WithTokenHash(h string) UserOption {
	return func(u *domain.User) {
		u.TokenHash = h
	}
}

func WithDisplayName(n string) UserOption {
	return func(u *domain.User) {
		u.DisplayName = n
	}
}

func NewTestUser(opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:          uuid.New().String(),
		DisplayName: "Test User",
		Language:    "vi",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Conversation options
type ConversationOption func(*domain.Conversation)

func AsMaster() ConversationOption {
	return func(c *domain.Conversation) {
		c.Type = domain.ConversationMaster
		c.Title = domain.MasterConversationTitle
		c.Pinned = true
	}
}

func WithSkill(s string) ConversationOption {
	return func(c *domain.Conversation) {
		c.Skill = &s
	}
}

func WithTitle(title string) ConversationOption {
	return func(c *domain.Conversation) {
		c.Title = title
	}
}

func WithPinned(p bool) ConversationOption {
	return func(c *domain.Conversation) {
		c.Pinned = p
	}
}

func WithConversationUpdatedAt(t time.Time) ConversationOption {
	return func(c *domain.Conversation) {
		c.UpdatedAt = t
	}
}

func NewTestConversation(userID string, opts ...ConversationOption) *domain.Conversation {
	now := time.Now().UTC()
	c := &domain.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     domain.DefaultConversationTitle,
		Type:      domain.ConversationSkill,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestMessage(userID, conversationID string, role domain.Role, text string) *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:             uuid.New().String(),
		UserID:         userID,
		ConversationID: conversationID,
		Role:           role,
		Text:           text,
		Sentiment:      domain.SentimentNeutral,
		CreatedAt:      time.Now().UTC(),
	}
}

// Goal options
type GoalOption func(*domain.Goal)

func WithLevel(l domain.Level) GoalOption {
	return func(g *domain.Goal) {
		g.Level = l
	}
}

func WithWeeks(w int) GoalOption {
	return func(g *domain.Goal) {
		g.DurationWeeks = w
	}
}

func NewTestGoal(userID, skill string, opts ...GoalOption) *domain.Goal {
	g := &domain.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Skill:         skill,
		Level:         domain.LevelBeginner,
		DurationWeeks: 4,
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewTestRoadmapContent returns a small valid roadmap spanning weeks weeks.
func NewTestRoadmapContent(skill string, weeks int) domain.RoadmapContent {
	return domain.RoadmapContent{
		Goal:    "Learn " + skill,
		Outcome: "Comfortable with " + skill,
		Milestones: []domain.Milestone{
			{
				ID:          "m1",
				Title:       "Foundations",
				Description: "Core concepts",
				WeekStart:   1,
				WeekEnd:     weeks,
				KPIs:        []string{"finish basics"},
				Resources:   []string{"official docs"},
				Tasks:       []string{"Read the introduction", "Do the first exercise"},
			},
		},
		Risks:      []domain.Risk{{Risk: "Losing focus", Mitigation: "Short daily sessions"}},
		TotalWeeks: weeks,
		Difficulty: string(domain.LevelBeginner),
	}
}

// Task options
type TaskOption func(*domain.ScheduleTask)

func WithSortOrder(n int) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.SortOrder = n
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.Status = s
	}
}

func WithNote(n string) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.Note = &n
	}
}

func NewTestTask(userID, date, text string, opts ...TaskOption) *domain.ScheduleTask {
	now := time.Now().UTC()
	t := &domain.ScheduleTask{
		ID:        uuid.New().String(),
		UserID:    userID,
		Task:      text,
		Date:      date,
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Vault prompt options
type PromptOption func(*domain.VaultPrompt)

func WithTags(tags ...string) PromptOption {
	return func(p *domain.VaultPrompt) {
		p.Tags = tags
	}
}

func WithCategory(c string) PromptOption {
	return func(p *domain.VaultPrompt) {
		p.Category = c
	}
}

func WithPromptUpdatedAt(t time.Time) PromptOption {
	return func(p *domain.VaultPrompt) {
		p.UpdatedAt = t
	}
}

func NewTestPrompt(userID, title, content string, opts ...PromptOption) *domain.VaultPrompt {
	now := time.Now().UTC()
	p := &domain.VaultPrompt{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      []string{},
		Category:  domain.DefaultVaultCategory,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
