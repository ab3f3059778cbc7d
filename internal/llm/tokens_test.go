package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_ApproximateWithoutEncoder(t *testing.T) {
	c := &TokenCounter{}
	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 1, c.Count("abcd"))
	assert.Equal(t, 2, c.Count("abcde"))
}

func TestTrimHistory_KeepsNewestWithinBudget(t *testing.T) {
	c := &TokenCounter{}
	msg := strings.Repeat("x", 40) // 10 tokens + 4 overhead
	history := []Message{
		{Role: RoleUser, Content: msg + "1"},
		{Role: RoleAssistant, Content: msg},
		{Role: RoleUser, Content: msg},
	}

	// system: 0 + 4; each message 14 or 15.
	trimmed := c.TrimHistory("", history, 35)
	require.Len(t, trimmed, 2)
	assert.Equal(t, RoleAssistant, trimmed[0].Role)

	all := c.TrimHistory("", history, 1000)
	assert.Len(t, all, 3)
}

func TestTrimHistory_AlwaysKeepsLatestMessage(t *testing.T) {
	c := &TokenCounter{}
	history := []Message{
		{Role: RoleUser, Content: "old"},
		{Role: RoleUser, Content: strings.Repeat("y", 400)},
	}
	trimmed := c.TrimHistory("system", history, 5)
	require.Len(t, trimmed, 1)
	assert.Equal(t, history[1], trimmed[0])
}

func TestTrimHistory_NoBudgetMeansNoTrim(t *testing.T) {
	c := &TokenCounter{}
	history := []Message{{Role: RoleUser, Content: "a"}, {Role: RoleUser, Content: "b"}}
	assert.Equal(t, history, c.TrimHistory("", history, 0))
}
