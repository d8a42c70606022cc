package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultModel is used when neither the environment nor the config file
// selects one.
const DefaultModel = "openai/gpt-oss-20b"

var validReasoningEfforts = []string{"low", "medium", "high"}

// Config holds all runtime settings. Resolution order is defaults, then
// environment variables, then the JSON config file; later sources win.
type Config struct {
	APIKey           string  `json:"-"` // never persisted
	DefaultModel     string  `json:"default_model"`
	MaxTokens        int     `json:"max_tokens"`
	Temperature      float64 `json:"temperature"`
	SaveHistory      bool    `json:"save_history"`
	HistoryFile      string  `json:"history_file"`
	RetryAttempts    int     `json:"retry_attempts"`
	TimeoutSeconds   int     `json:"timeout"`
	ReasoningEffort  string  `json:"reasoning_effort"`
	IncludeReasoning bool    `json:"include_reasoning"`
	ClearOnStart     bool    `json:"clear_on_start"`
	EscTimeoutMS     int     `json:"esc_timeout_ms"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		DefaultModel:     DefaultModel,
		MaxTokens:        8192,
		Temperature:      1.0,
		SaveHistory:      true,
		HistoryFile:      "conversation_history.json",
		RetryAttempts:    3,
		TimeoutSeconds:   30,
		ReasoningEffort:  "medium",
		IncludeReasoning: true,
		ClearOnStart:     true,
		EscTimeoutMS:     50,
	}
}

// Load builds the effective configuration: defaults, environment, then the
// config file under the state dir. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := New()
	cfg.applyEnv()

	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("GPT_DEFAULT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v, ok := envInt("GPT_MAX_TOKENS"); ok {
		c.MaxTokens = v
	}
	if v := os.Getenv("GPT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := os.Getenv("GPT_SAVE_HISTORY"); v != "" {
		c.SaveHistory = v == "true" || v == "1"
	}
	if v := os.Getenv("GPT_HISTORY_FILE"); v != "" {
		c.HistoryFile = v
	}
	if v, ok := envInt("GPT_RETRY_ATTEMPTS"); ok {
		c.RetryAttempts = v
	}
	if v, ok := envInt("GPT_TIMEOUT"); ok {
		c.TimeoutSeconds = v
	}
	if v := os.Getenv("GPT_REASONING_EFFORT"); v != "" {
		c.ReasoningEffort = v
	}
	if v := os.Getenv("GPT_INCLUDE_REASONING"); v != "" {
		c.IncludeReasoning = v == "true" || v == "1"
	}
	if v := os.Getenv("GPT_CLEAR_ON_START"); v != "" {
		c.ClearOnStart = v == "true" || v == "1"
	}
	if v, ok := envInt("GPT_ESC_TIMEOUT_MS"); ok {
		c.EscTimeoutMS = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the rest of the program cannot handle.
func (c *Config) Validate() error {
	valid := false
	for _, e := range validReasoningEfforts {
		if c.ReasoningEffort == e {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid reasoning effort %q (valid: low, medium, high)", c.ReasoningEffort)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must not be negative, got %d", c.RetryAttempts)
	}
	return nil
}

// Save writes the configuration to the state dir, creating it if needed.
func (c *Config) Save() error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EscTimeout returns the escape disambiguation wait as a duration.
func (c *Config) EscTimeout() time.Duration {
	return time.Duration(c.EscTimeoutMS) * time.Millisecond
}

// Timeout returns the HTTP request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StateDir returns ~/.gpt-cli, where the log, config, and saved
// conversations live.
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".gpt-cli"), nil
}

// FilePath returns the config file location inside the state dir.
func FilePath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
