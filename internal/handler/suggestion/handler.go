package suggestion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/suggestion"
	"github.com/flaminghawk1207/mindmirror/backend/pkg/utils"
)

// Handler serves the quick prompt catalogue.
type Handler struct {
	store suggestion.Store
}

// New creates the suggestion handler.
func New(store suggestion.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the suggestion routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/suggestions", h.handleSuggestions)
	r.Get("/suggestions/all", h.handleListSuggestions)
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.ForMood(r.URL.Query().Get("mood")))
}

func (h *Handler) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"suggestions": h.store.List()})
}
