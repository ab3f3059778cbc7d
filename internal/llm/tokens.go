package llm

import (
	"github.com/pkoukk/tiktoken-go"
)

// perMessageOverhead approximates the role and separator tokens the chat
// format adds around each message.
const perMessageOverhead = 4

// TokenCounter measures text in model tokens. Without an encoder it falls
// back to roughly four bytes per token.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter loads the named BPE encoding. The error is returned
// alongside a usable approximate counter so callers can log and continue.
func NewTokenCounter(encoding string) (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return &TokenCounter{}, err
	}
	return &TokenCounter{enc: enc}, nil
}

// Count returns the number of tokens in s.
func (c *TokenCounter) Count(s string) int {
	if c == nil || c.enc == nil {
		return (len(s) + 3) / 4
	}
	return len(c.enc.Encode(s, nil, nil))
}

// TrimHistory keeps the most recent messages whose combined size, together
// with the system prompt, fits within budget tokens. The newest message is
// always kept. A budget <= 0 disables trimming.
func (c *TokenCounter) TrimHistory(system string, history []Message, budget int) []Message {
	if budget <= 0 || len(history) == 0 {
		return history
	}
	used := c.Count(system) + perMessageOverhead
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		cost := c.Count(history[i].Content) + perMessageOverhead
		if used+cost > budget && i < len(history)-1 {
			break
		}
		used += cost
		start = i
	}
	return history[start:]
}
