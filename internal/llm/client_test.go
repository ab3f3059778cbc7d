package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	cfg.Model = "test-model"
	return cfg
}

type recordingObserver struct {
	events []LLMCallEvent
}

func (o *recordingObserver) OnCallComplete(e LLMCallEvent) { o.events = append(o.events, e) }

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
	Messages    []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
}

func writeStream(w http.ResponseWriter, deltas ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	for _, d := range deltas {
		chunk, _ := json.Marshal(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion.chunk",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index": 0,
				"delta": map[string]any{"content": d},
			}},
		})
		fmt.Fprintf(w, "data: %s\n\n", chunk)
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
}

func TestGatewayClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 0.6, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, string(req.Messages[0].Content), "system prompt")
		assert.Equal(t, "user", req.Messages[1].Role)

		writeCompletion(w, `{"goal":"Go"}`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client, err := NewGatewayClient(testConfig(srv.URL), obs)
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskRoadmap,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"goal":"Go"}`, resp.Text)
	assert.Equal(t, "test-model", resp.Model)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, TaskRoadmap, obs.events[0].Task)
}

func TestGatewayClient_Generate_SendsHistoryInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 4)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "assistant", req.Messages[2].Role)
		assert.Contains(t, string(req.Messages[3].Content), "and now?")
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	client, err := NewGatewayClient(testConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{
		Task:         TaskChat,
		SystemPrompt: "mentor",
		History: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
			{Role: RoleUser, Content: "and now?"},
		},
	})
	require.NoError(t, err)
}

func TestGatewayClient_Stream_ForwardsDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		writeStream(w, "Xin ", "chào", "!")
	}))
	defer srv.Close()

	client, err := NewGatewayClient(testConfig(srv.URL), nil)
	require.NoError(t, err)

	var deltas []string
	resp, err := client.Stream(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "hello",
	}, func(d string) error {
		deltas = append(deltas, d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Xin ", "chào", "!"}, deltas)
	assert.Equal(t, "Xin chào!", resp.Text)
}

func TestGatewayClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		writeCompletion(w, "late")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskRoadmap: {Temperature: 0.6, MaxTokens: 2000, TimeoutMs: 50},
	}
	obs := &recordingObserver{}
	client, err := NewGatewayClient(cfg, obs)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrTimeout)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "TIMEOUT", obs.events[0].ErrorCode)
}

func TestGatewayClient_Generate_ServerErrorRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1
	client, err := NewGatewayClient(cfg, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestGatewayClient_Generate_SingleAttemptIsNotRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	obs := &recordingObserver{}
	client, err := NewGatewayClient(cfg, obs)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateway)
	assert.NotErrorIs(t, err, ErrRetryExhausted)
	assert.NotContains(t, err.Error(), "retry")
	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, obs.events, 1)
	assert.Equal(t, "GATEWAY_ERROR", obs.events[0].ErrorCode)
}

func TestGatewayClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/models") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewGatewayClient(testConfig(srv.URL), nil)
	require.NoError(t, err)
	assert.True(t, client.Available(context.Background()))
}

func TestDisabledClient(t *testing.T) {
	client := NewDisabledClient()
	_, err := client.Generate(context.Background(), GenerateRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = client.Stream(context.Background(), GenerateRequest{}, nil)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, client.Available(context.Background()))
}
