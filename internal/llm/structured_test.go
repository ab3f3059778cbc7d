package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Goal       string `json:"goal"`
	TotalWeeks int    `json:"total_weeks"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	result, err := ExtractJSON[testPayload](`{"goal":"Learn Go","total_weeks":8}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", result.Goal)
	assert.Equal(t, 8, result.TotalWeeks)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"goal\":\"SQL\",\"total_weeks\":4}\n```"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "SQL", result.Goal)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here is your roadmap:\n{\"goal\":\"React\",\"total_weeks\":6}\nGood luck!"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, result.TotalWeeks)
}

func TestExtractJSON_BracesAndSlashesInsideStrings(t *testing.T) {
	raw := `{"goal":"Learn {braces} and http://links", // trailing note
	"total_weeks": 3 /* inline */}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Learn {braces} and http://links", result.Goal)
	assert.Equal(t, 3, result.TotalWeeks)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload]("I cannot help with that.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"goal":"x", broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(p testPayload) error {
		if p.TotalWeeks <= 0 {
			return fmt.Errorf("total_weeks must be positive")
		}
		return nil
	}
	_, err := ExtractJSON(`{"goal":"x","total_weeks":0}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```JSON {} ```", "{}"},
		{"```\n{\"a\":1}\n```  ", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFences(tt.in), "input %q", tt.in)
	}
}
