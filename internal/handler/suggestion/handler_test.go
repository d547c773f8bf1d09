package suggestion

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/suggestion"
)

func TestSuggestionsForMood(t *testing.T) {
	r := chi.NewRouter()
	New(suggestion.NewMemoryStore(suggestion.Seed())).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/suggestions?mood=anxious", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"mood":"Anxious","prompts":["A 2-minute grounding exercise","Plan the next tiny step","Reframe a worry"]}`, resp.Body.String())
}

func TestSuggestionsDefault(t *testing.T) {
	r := chi.NewRouter()
	New(suggestion.NewMemoryStore(suggestion.Seed())).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/suggestions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"mood":"default"`)
}

func TestListAllSuggestions(t *testing.T) {
	r := chi.NewRouter()
	New(suggestion.NewMemoryStore([]suggestion.Set{
		{Mood: "Sad", Prompts: []string{"Call a friend"}},
		{Mood: suggestion.DefaultMood, Prompts: []string{"Take a walk"}},
	})).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/suggestions/all", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"suggestions":[{"mood":"Sad","prompts":["Call a friend"]},{"mood":"default","prompts":["Take a walk"]}]}`, resp.Body.String())
}
