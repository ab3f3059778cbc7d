package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MasterConversationTitle  = "Master Control"
	DefaultConversationTitle = "New Chat"

	// autoTitleRunes bounds titles derived from a first message.
	autoTitleRunes = 40
)

type Conversation struct {
	ID        string
	UserID    string
	Title     string
	Type      ConversationType
	Skill     *string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Conversation) IsMaster() bool {
	return c.Type == ConversationMaster
}

// SkillName returns the conversation's skill tag or "".
func (c *Conversation) SkillName() string {
	if c.Skill == nil {
		return ""
	}
	return *c.Skill
}

// NeedsAutoTitle reports whether the conversation still carries the
// placeholder title and has no history yet.
func (c *Conversation) NeedsAutoTitle(historyLen int) bool {
	return historyLen == 0 && c.Title == DefaultConversationTitle
}

// TitleFromMessage shortens a first message into a conversation title.
func TitleFromMessage(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= autoTitleRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:autoTitleRunes]) + "..."
}

type ChatMessage struct {
	ID             string
	UserID         string
	ConversationID string
	Role           Role
	Text           string
	Sentiment      Sentiment
	CreatedAt      time.Time
}
