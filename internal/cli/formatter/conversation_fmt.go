package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// FormatConversationList renders conversations with master and pinned
// markers.
func FormatConversationList(convs []*domain.Conversation, now time.Time) string {
	if len(convs) == 0 {
		return Dim("No conversations yet. Start one with: neuroplan conversation new")
	}

	headers := []string{"ID", "TITLE", "SKILL", "UPDATED"}
	rows := make([][]string, 0, len(convs))
	for _, c := range convs {
		title := Truncate(c.Title, 60)
		switch {
		case c.IsMaster():
			title = StyleHeader.Render("★ ") + Bold(title)
		case c.Pinned:
			title = StyleYellow.Render("📌 ") + title
		}
		skill := Dim("--")
		if c.Skill != nil && *c.Skill != "" {
			skill = StylePurple.Render(*c.Skill)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			title,
			skill,
			Dim(HumanTimestamp(c.UpdatedAt, now)),
		})
	}
	return Header("Conversations") + "\n" + RenderTable(headers, rows)
}

// FormatChatMessage renders one message with a speaker label.
func FormatChatMessage(m *domain.ChatMessage) string {
	var label string
	if m.Role == domain.RoleUser {
		label = StyleBlue.Render("You")
	} else {
		label = StylePurple.Render("Mentor")
	}
	if badge := SentimentBadge(m.Sentiment); badge != "" && m.Role == domain.RoleUser {
		label += " " + badge
	}
	return label + "\n" + m.Text
}

// FormatHistory renders a transcript oldest first.
func FormatHistory(conv *domain.Conversation, msgs []*domain.ChatMessage) string {
	var b strings.Builder
	b.WriteString(Header(conv.Title))
	b.WriteString("\n")
	if len(msgs) == 0 {
		b.WriteString(Dim("No messages yet."))
		return b.String()
	}
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatChatMessage(m))
	}
	b.WriteString("\n\n")
	b.WriteString(Dim(fmt.Sprintf("%d messages", len(msgs))))
	return b.String()
}
