package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultModel, cfg.DefaultModel)
	assert.Equal(t, 8192, cfg.MaxTokens)
	assert.Equal(t, 1.0, cfg.Temperature)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, "medium", cfg.ReasoningEffort)
	assert.Equal(t, 50*time.Millisecond, cfg.EscTimeout())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GPT_DEFAULT_MODEL", "compound-beta")
	t.Setenv("GPT_MAX_TOKENS", "1024")
	t.Setenv("GPT_TEMPERATURE", "0.5")
	t.Setenv("GPT_REASONING_EFFORT", "high")
	t.Setenv("GPT_ESC_TIMEOUT_MS", "120")
	t.Setenv("GPT_SAVE_HISTORY", "false")

	cfg := New()
	cfg.applyEnv()
	assert.Equal(t, "gsk_test", cfg.APIKey)
	assert.Equal(t, "compound-beta", cfg.DefaultModel)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, "high", cfg.ReasoningEffort)
	assert.Equal(t, 120*time.Millisecond, cfg.EscTimeout())
	assert.False(t, cfg.SaveHistory)
}

func TestEnvIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("GPT_MAX_TOKENS", "lots")
	cfg := New()
	cfg.applyEnv()
	assert.Equal(t, 8192, cfg.MaxTokens)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := New()
	cfg.ReasoningEffort = "extreme"
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.MaxTokens = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Temperature = 3.5
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.RetryAttempts = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadMergesConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg := New()
	cfg.DefaultModel = "openai/gpt-oss-120b"
	cfg.EscTimeoutMS = 75
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-oss-120b", loaded.DefaultModel)
	assert.Equal(t, 75, loaded.EscTimeoutMS)
	// The API key comes from the environment, never the file.
	assert.Equal(t, "gsk_test", loaded.APIKey)
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.DefaultModel)
}

func TestSavedFileOmitsAPIKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := New()
	cfg.APIKey = "gsk_secret"
	require.NoError(t, cfg.Save())

	path, err := FilePath()
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gsk_secret")
}
