package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDayFrom(t *testing.T) {
	// Monday.
	today := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want string
	}{
		{"today", "2026-03-02", "Today"},
		{"tomorrow", "2026-03-03", "Tomorrow"},
		{"yesterday", "2026-03-01", "Yesterday"},
		{"later this week", "2026-03-05", "Thursday"},
		{"next month", "2026-04-10", "Fri Apr 10"},
		{"garbage passes through", "soon", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDayFrom(tt.date, today))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanTimestamp(now.Add(-30*time.Hour), now))
	assert.Equal(t, "Feb 20, 2026", HumanTimestamp(time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "a b", Truncate("a \n  b", 10))
}

func TestBadges(t *testing.T) {
	assert.Empty(t, SentimentBadge(domain.SentimentNeutral))
	assert.Contains(t, stripANSI(SentimentBadge(domain.SentimentStressed)), "stressed")
	assert.Equal(t, "Intermediate", stripANSI(LevelBadge(domain.LevelIntermediate)))
	assert.Equal(t, "Study", stripANSI(CategoryBadge("study")))
	assert.Equal(t, "--", stripANSI(CategoryBadge("")))
	assert.Equal(t, "#go #react", stripANSI(TagList([]string{"go", "react"})))
	assert.Equal(t, "abcdefgh", stripANSI(TruncID("abcdefghijkl")))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "NAME"}, [][]string{
		{"1", "alpha"},
		{"22", StyleGreen.Render("b")},
	}))
	assert.Equal(t, "ID  NAME\n──  ─────\n1   alpha\n22  b\n", out)
	assert.Empty(t, RenderTable(nil, nil))
}
