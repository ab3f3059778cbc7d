package intelligence

import (
	"testing"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectSentiment(t *testing.T) {
	tests := []struct {
		text string
		want domain.Sentiment
	}{
		{"I feel overwhelmed and stressed", domain.SentimentOverwhelmed},
		{"This is TOO MUCH", domain.SentimentOverwhelmed},
		{"Mình đang quá tải", domain.SentimentOverwhelmed},
		{"I'm so anxious about the exam", domain.SentimentStressed},
		{"áp lực thi cử", domain.SentimentStressed},
		{"I want to give up", domain.SentimentDemotivated},
		{"mình thấy chán quá", domain.SentimentDemotivated},
		{"stressed and tired", domain.SentimentStressed},
		{"Explain closures in Go", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSentiment(tt.text), "text %q", tt.text)
	}
}

func TestDetectSentiment_NeverPositive(t *testing.T) {
	for _, text := range []string{"I love this!", "great job", "tuyệt vời"} {
		assert.Equal(t, domain.SentimentNeutral, DetectSentiment(text))
	}
}
