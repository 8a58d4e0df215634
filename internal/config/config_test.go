package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 512, cfg.LLMMaxTokens)
	assert.Equal(t, 20, cfg.HistoryMaxMessages)
	assert.Equal(t, 24*time.Hour, cfg.HistoryTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_TIMEOUT", "10s")
	t.Setenv("HISTORY_MAX_MESSAGES", "8")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.org, https://staging.example.org")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, 10*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 8, cfg.HistoryMaxMessages)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://app.example.org", "https://staging.example.org"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "lots")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("REDIS_TLS", "yes please")

	cfg := Load()

	assert.Equal(t, 512, cfg.LLMMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.RedisTLS)
}
