package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "LLM_PROVIDER",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_MODEL",
		"ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS",
		"STORE_PATH", "CHAT_RECORD_MOODS", "SUGGESTIONS_FILE",
		"LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func TestRunReturnsConfigurationError(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "abc")

	err := run(context.Background())
	assert.ErrorContains(t, err, "load configuration")
}

// SQLite removes the -wal file when the last connection closes, so its
// absence shows the store was closed.
func TestRunClosesStoreWhenStartupFails(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mindmirror.db")
	t.Setenv("STORE_PATH", dbPath)
	t.Setenv("SUGGESTIONS_FILE", filepath.Join(dir, "missing.yaml"))

	err := run(context.Background())
	require.ErrorContains(t, err, "load suggestions")

	assert.FileExists(t, dbPath)
	assert.NoFileExists(t, dbPath+"-wal")
}

func TestRunShutsDownWhenContextEnds(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "mindmirror.db")
	t.Setenv("STORE_PATH", dbPath)
	t.Setenv("PORT", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx))
	assert.NoFileExists(t, dbPath+"-wal")
}
