package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/neuroplan/internal/llm"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration for the CLI and the HTTP server.
type Config struct {
	DBPath     string
	ServerAddr string
	LogLevel   string
	LogFormat  string
	LLM        llm.LLMConfig
}

// fileConfig mirrors Config in the YAML file. Pointer fields distinguish
// "absent" from a zero value.
type fileConfig struct {
	DBPath     *string `yaml:"db_path"`
	ServerAddr *string `yaml:"server_addr"`
	Log        struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
	LLM struct {
		Enabled          *bool   `yaml:"enabled"`
		LogCalls         *bool   `yaml:"log_calls"`
		BaseURL          *string `yaml:"base_url"`
		APIKey           *string `yaml:"api_key"`
		Model            *string `yaml:"model"`
		TimeoutMs        *int    `yaml:"timeout_ms"`
		MaxRetries       *int    `yaml:"max_retries"`
		HistoryTokens    *int    `yaml:"history_tokens"`
		RoadmapTimeoutMs *int    `yaml:"roadmap_timeout_ms"`
		ChatTimeoutMs    *int    `yaml:"chat_timeout_ms"`
	} `yaml:"llm"`
}

// HomeDir returns ~/.neuroplan.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".neuroplan"), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		DBPath:     filepath.Join(dir, "neuroplan.db"),
		ServerAddr: "127.0.0.1:8787",
		LogLevel:   "info",
		LogFormat:  "text",
		LLM:        llm.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, the YAML file named by
// NEUROPLAN_CONFIG (or ~/.neuroplan/config.yaml when present) and finally
// the environment. Environment variables win over the file.
func Load() (Config, error) {
	dir, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	path, explicit := os.LookupEnv("NEUROPLAN_CONFIG")
	if !explicit || path == "" {
		path = filepath.Join(dir, "config.yaml")
		explicit = false
	}
	if err := ApplyFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return Config{}, err
		}
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyFile overlays the YAML file at path onto cfg.
func ApplyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.ServerAddr, fc.ServerAddr)
	setString(&cfg.LogLevel, fc.Log.Level)
	setString(&cfg.LogFormat, fc.Log.Format)

	l := &cfg.LLM
	if fc.LLM.Enabled != nil {
		l.Enabled = *fc.LLM.Enabled
	}
	if fc.LLM.LogCalls != nil {
		l.LogCalls = *fc.LLM.LogCalls
	}
	setString(&l.BaseURL, fc.LLM.BaseURL)
	setString(&l.APIKey, fc.LLM.APIKey)
	setString(&l.Model, fc.LLM.Model)
	setPositive(&l.TimeoutMs, fc.LLM.TimeoutMs)
	setPositive(&l.HistoryTokens, fc.LLM.HistoryTokens)
	if fc.LLM.MaxRetries != nil && *fc.LLM.MaxRetries >= 0 {
		l.MaxRetries = *fc.LLM.MaxRetries
	}
	setTaskTimeout(l, llm.TaskRoadmap, fc.LLM.RoadmapTimeoutMs)
	setTaskTimeout(l, llm.TaskChat, fc.LLM.ChatTimeoutMs)
	return nil
}

// ApplyEnv overlays NEUROPLAN_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("NEUROPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NEUROPLAN_ADDR"); v != "" {
		cfg.ServerAddr = v
	}
	if v := os.Getenv("NEUROPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NEUROPLAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	llm.ApplyEnv(&cfg.LLM)
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setPositive(dst *int, v *int) {
	if v != nil && *v > 0 {
		*dst = *v
	}
}

func setTaskTimeout(cfg *llm.LLMConfig, task llm.TaskType, v *int) {
	if v == nil || *v <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[llm.TaskType]llm.TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = *v
	cfg.Tasks[task] = tc
}
