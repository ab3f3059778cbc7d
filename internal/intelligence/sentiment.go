package intelligence

import (
	"strings"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

var overwhelmedWords = []string{
	"overwhelmed", "too much", "cant handle", "can't handle", "drowning", "impossible",
	"quá tải", "quá nhiều", "không thể", "chịu không nổi", "ngập đầu",
}

var stressedWords = []string{
	"stressed", "stress", "anxious", "anxiety", "nervous", "panic", "worried",
	"căng thẳng", "lo lắng", "áp lực", "sợ", "hoang mang", "bồn chồn",
}

var demotivatedWords = []string{
	"unmotivated", "lazy", "give up", "quit", "pointless", "boring", "don't care", "tired",
	"chán", "mệt mỏi", "bỏ cuộc", "vô nghĩa", "lười", "không muốn", "nản",
}

// DetectSentiment labels text by substring lookup. Lists are checked in
// priority order overwhelmed, stressed, demotivated; no hit is neutral.
func DetectSentiment(text string) domain.Sentiment {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, overwhelmedWords):
		return domain.SentimentOverwhelmed
	case containsAny(lower, stressedWords):
		return domain.SentimentStressed
	case containsAny(lower, demotivatedWords):
		return domain.SentimentDemotivated
	default:
		return domain.SentimentNeutral
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
