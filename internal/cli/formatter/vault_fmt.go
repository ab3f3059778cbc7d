package formatter

import (
	"strings"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// FormatVaultList renders saved prompts as a table.
func FormatVaultList(prompts []*domain.VaultPrompt) string {
	if len(prompts) == 0 {
		return Dim("The vault is empty. Save a prompt with: neuroplan vault add")
	}
	headers := []string{"ID", "TITLE", "CATEGORY", "TAGS"}
	rows := make([][]string, 0, len(prompts))
	for _, p := range prompts {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(Truncate(p.Title, 40)),
			CategoryBadge(p.Category),
			TagList(p.Tags),
		})
	}
	return Header("Prompt Vault") + "\n" + RenderTable(headers, rows)
}

// FormatPrompt renders a single prompt in a box.
func FormatPrompt(p *domain.VaultPrompt) string {
	meta := CategoryBadge(p.Category) + "  " + TagList(p.Tags)
	return RenderBox(p.Title, strings.TrimSpace(p.Content)+"\n\n"+meta)
}
