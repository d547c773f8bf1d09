package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "LLM_PROVIDER",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_MODEL",
		"ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS",
		"STORE_PATH", "CHAT_RECORD_MOODS", "SUGGESTIONS_FILE",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.AI.GeminiTimeout)
	assert.Equal(t, "", cfg.Store.Path)
	assert.False(t, cfg.Store.RecordChatMoods)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Gemini API key not set.", cfg.AI.MissingCredential())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8081, https://app.example")
	t.Setenv("GEMINI_API_KEY", " key ")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("CHAT_RECORD_MOODS", "true")
	t.Setenv("STORE_PATH", "/tmp/mindmirror.db")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:8081", "https://app.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "key", cfg.AI.GeminiAPIKey)
	assert.Equal(t, 5*time.Second, cfg.AI.GeminiTimeout)
	assert.True(t, cfg.Store.RecordChatMoods)
	assert.Equal(t, "/tmp/mindmirror.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "", cfg.AI.MissingCredential())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":              "abc",
		"LLM_PROVIDER":      "openai",
		"GEMINI_TIMEOUT":    "soon",
		"CHAT_RECORD_MOODS": "maybe",
		"ARK_MAX_TOKENS":    "lots",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestArkMissingCredential(t *testing.T) {
	cfg := AIConfig{Provider: ProviderArk, ArkModel: "doubao"}
	assert.Equal(t, "Ark credentials not set.", cfg.MissingCredential())

	cfg.ArkAccessKey = "ak"
	assert.Equal(t, "Ark credentials not set.", cfg.MissingCredential())

	cfg.ArkSecretKey = "sk"
	assert.Equal(t, "", cfg.MissingCredential())
}

func TestNewChatModelGemini(t *testing.T) {
	cfg := AIConfig{Provider: ProviderGemini, GeminiAPIKey: "k"}

	m, err := cfg.NewChatModel(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNewChatModelWithoutCredential(t *testing.T) {
	cfg := AIConfig{Provider: ProviderGemini}

	_, err := cfg.NewChatModel(context.Background())
	assert.EqualError(t, err, "Gemini API key not set.")
}
