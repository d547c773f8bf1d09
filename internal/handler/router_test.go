package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaminghawk1207/mindmirror/backend/internal/config"
	"github.com/flaminghawk1207/mindmirror/backend/internal/logging"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/suggestion"
	aiService "github.com/flaminghawk1207/mindmirror/backend/internal/service/ai"
	journalService "github.com/flaminghawk1207/mindmirror/backend/internal/service/journal"
	moodService "github.com/flaminghawk1207/mindmirror/backend/internal/service/mood"
	"github.com/flaminghawk1207/mindmirror/backend/internal/store"
)

func newUnconfiguredRouter(t *testing.T) http.Handler {
	t.Helper()
	aiSvc, err := aiService.NewService(context.Background(), config.AIConfig{Provider: config.ProviderGemini}, logging.Discard())
	require.NoError(t, err)

	repo := store.NewMemory()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewRouter(Services{
		AI:             aiSvc,
		Moods:          moodService.NewService(repo),
		Journal:        journalService.NewService(repo),
		Suggestions:    suggestion.NewMemoryStore(suggestion.Seed()),
		AllowedOrigins: []string{"*"},
	}, logger)
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestChatRouteRequiresMessage(t *testing.T) {
	resp := serve(newUnconfiguredRouter(t), http.MethodPost, "/api/chat", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Message is required."}`, resp.Body.String())
}

func TestChatRouteWithoutCredential(t *testing.T) {
	resp := serve(newUnconfiguredRouter(t), http.MethodPost, "/api/chat", `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Gemini API key not set."}`, resp.Body.String())
}

func TestHealthz(t *testing.T) {
	resp := serve(newUnconfiguredRouter(t), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"gemini","configured":false}`, resp.Body.String())
}

func TestRoutesAreMounted(t *testing.T) {
	r := newUnconfiguredRouter(t)

	for _, target := range []string{"/api/moods", "/api/moods/summary", "/api/journal", "/api/suggestions?mood=Sad", "/api/suggestions/all"} {
		resp := serve(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, resp.Code, target)
	}
}

func TestPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	resp := httptest.NewRecorder()
	newUnconfiguredRouter(t).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "http://localhost:8081", resp.Header().Get("Access-Control-Allow-Origin"))
}
