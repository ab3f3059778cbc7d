package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Role is the speaker of a chat turn sent to the model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation history.
type Message struct {
	Role    Role
	Content string
}

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	History      []Message
	UserPrompt   string   // appended after History when non-empty
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// DeltaFunc receives each streamed chunk of assistant text. Returning an
// error aborts the stream.
type DeltaFunc func(delta string) error

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Stream sends a prompt and forwards deltas as they arrive. The returned
	// response carries the full concatenated text.
	Stream(ctx context.Context, req GenerateRequest, onDelta DeltaFunc) (*GenerateResponse, error)

	// Available checks whether the gateway is reachable.
	Available(ctx context.Context) bool
}

// gatewayClient implements LLMClient against an OpenAI-compatible gateway.
type gatewayClient struct {
	cfg      LLMConfig
	model    llms.Model
	http     *http.Client
	observer Observer
}

// NewGatewayClient creates an LLMClient that talks to an OpenAI-compatible
// chat completions endpoint at cfg.BaseURL.
func NewGatewayClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway client: %w", err)
	}
	return &gatewayClient{
		cfg:      cfg,
		model:    model,
		http:     httpClient,
		observer: observer,
	}, nil
}

func (c *gatewayClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.call(ctx, req, nil)
}

func (c *gatewayClient) Stream(ctx context.Context, req GenerateRequest, onDelta DeltaFunc) (*GenerateResponse, error) {
	if onDelta == nil {
		onDelta = func(string) error { return nil }
	}
	return c.call(ctx, req, onDelta)
}

func (c *gatewayClient) call(ctx context.Context, req GenerateRequest, onDelta DeltaFunc) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	opts := []llms.CallOption{llms.WithTemperature(temp)}
	if maxTok > 0 {
		opts = append(opts, llms.WithMaxTokens(maxTok))
	}
	streamed := false
	if onDelta != nil {
		opts = append(opts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			streamed = true
			return onDelta(string(chunk))
		}))
	}

	messages := toMessageContent(req)

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	tried := 0

	for i := 0; i < attempts; i++ {
		tried++
		resp, err := c.model.GenerateContent(ctx, messages, opts...)
		if err == nil && len(resp.Choices) == 0 {
			err = fmt.Errorf("%w: response has no choices", ErrInvalidOutput)
		}
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Streamed:  onDelta != nil,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      resp.Choices[0].Content,
				Model:     c.cfg.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Deltas already forwarded cannot be taken back.
		if ctx.Err() != nil || streamed || errors.Is(err, ErrInvalidOutput) {
			break
		}
	}

	err := classify(ctx, lastErr, tried)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Streamed:  onDelta != nil,
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

// classify maps a failed call to a sentinel. Only a call that was actually
// retried reports ErrRetryExhausted.
func classify(ctx context.Context, err error, tried int) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, ErrInvalidOutput):
		return err
	case isConnectionError(err):
		return ErrUnavailable
	case tried > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	default:
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
}

func toMessageContent(req GenerateRequest) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt))
	}
	for _, m := range req.History {
		out = append(out, llms.TextParts(messageType(m.Role), m.Content))
	}
	if req.UserPrompt != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, req.UserPrompt))
	}
	return out
}

func messageType(r Role) llms.ChatMessageType {
	switch r {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func (c *gatewayClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// disabledClient is wired when the LLM is switched off or misconfigured.
type disabledClient struct{}

// NewDisabledClient returns an LLMClient whose calls all fail with ErrDisabled.
func NewDisabledClient() LLMClient {
	return disabledClient{}
}

func (disabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (disabledClient) Stream(context.Context, GenerateRequest, DeltaFunc) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (disabledClient) Available(context.Context) bool { return false }

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.Is(err, ErrGateway):
		return "GATEWAY_ERROR"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
