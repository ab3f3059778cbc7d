package intelligence

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// MaxInjectedPrompts caps how many vault prompts reach the system prompt.
const MaxInjectedPrompts = 3

const maxContentScore = 3

// ScoredPrompt pairs a vault prompt with its relevance to a message.
type ScoredPrompt struct {
	Prompt *domain.VaultPrompt
	Score  int
}

// ScorePrompts rates each prompt against message and the conversation's
// skill, keeps positive scores and returns at most MaxInjectedPrompts,
// best first. Equal scores keep input order.
func ScorePrompts(message, skill string, prompts []*domain.VaultPrompt) []ScoredPrompt {
	msg := strings.ToLower(message)
	skill = strings.ToLower(skill)

	var scored []ScoredPrompt
	for _, p := range prompts {
		if s := scorePrompt(msg, skill, p); s > 0 {
			scored = append(scored, ScoredPrompt{Prompt: p, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > MaxInjectedPrompts {
		scored = scored[:MaxInjectedPrompts]
	}
	return scored
}

func scorePrompt(msg, skill string, p *domain.VaultPrompt) int {
	score := 0
	for _, tag := range p.Tags {
		tag = strings.ToLower(tag)
		if strings.Contains(msg, tag) {
			score += 3
		}
		if skill != "" && strings.Contains(tag, skill) {
			score += 2
		}
	}

	for _, w := range strings.Fields(strings.ToLower(p.Title)) {
		if utf8.RuneCountInString(w) > 2 && strings.Contains(msg, w) {
			score += 2
		}
	}

	if skill != "" && strings.Contains(strings.ToLower(p.Category), skill) {
		score++
	}

	matched := 0
	for _, w := range strings.Fields(strings.ToLower(p.Content)) {
		if utf8.RuneCountInString(w) > 3 && strings.Contains(msg, w) {
			matched++
		}
	}
	return score + min(matched, maxContentScore)
}

// RelevantPrompts returns the content of the best-scoring prompts.
func RelevantPrompts(message, skill string, prompts []*domain.VaultPrompt) []string {
	scored := ScorePrompts(message, skill, prompts)
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Prompt.Content
	}
	return out
}

// BuildEnhancedSystemPrompt appends saved vault snippets to base. With no
// snippets base is returned unchanged.
func BuildEnhancedSystemPrompt(base string, snippets []string) string {
	if len(snippets) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\n--- User's Saved Knowledge ---\n")
	for i, s := range snippets {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[Vault Prompt %d]: %s", i+1, s)
	}
	b.WriteString("\n--- End Saved Knowledge ---\n\nUse the above saved knowledge when relevant to the user's question.")
	return b.String()
}
