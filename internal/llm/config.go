package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskRoadmap TaskType = "roadmap"
	TaskChat    TaskType = "chat"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	BaseURL    string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	// HistoryTokens bounds the chat history sent with each request.
	HistoryTokens int
	Encoding      string
	Tasks         map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:       false,
		LogCalls:      false,
		BaseURL:       "https://ai.gateway.lovable.dev/v1",
		Model:         "google/gemini-2.5-flash",
		TimeoutMs:     30000,
		MaxRetries:    0,
		HistoryTokens: 6000,
		Encoding:      "cl100k_base",
		Tasks: map[TaskType]TaskConfig{
			TaskRoadmap: {Temperature: 0.6, MaxTokens: 2000, TimeoutMs: 60000},
			TaskChat:    {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 120000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays NEUROPLAN_LLM_* environment variables onto cfg.
// Unset or malformed values leave the existing field untouched.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("NEUROPLAN_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NEUROPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NEUROPLAN_LLM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("NEUROPLAN_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("NEUROPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NEUROPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("NEUROPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("NEUROPLAN_LLM_HISTORY_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryTokens = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskRoadmap, "NEUROPLAN_LLM_ROADMAP_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskChat, "NEUROPLAN_LLM_CHAT_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
