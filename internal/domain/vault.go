package domain

import (
	"fmt"
	"strings"
	"time"
)

type VaultPrompt struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Tags      []string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims title and content, drops empty tags and defaults the category.
func (p *VaultPrompt) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	p.Tags = tags
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultVaultCategory
	}
}

func (p *VaultPrompt) Validate() error {
	if p.Title == "" || p.Content == "" {
		return fmt.Errorf("title and content are required")
	}
	return nil
}

// HasTag reports whether the prompt carries tag exactly.
func (p *VaultPrompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SplitTags parses a comma separated tag list.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
