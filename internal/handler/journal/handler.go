package journal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
	journalService "github.com/flaminghawk1207/mindmirror/backend/internal/service/journal"
	"github.com/flaminghawk1207/mindmirror/backend/pkg/utils"
)

// Handler exposes journal entries over HTTP.
type Handler struct {
	journalSvc *journalService.Service
	log        *logrus.Entry
}

// New creates the journal handler.
func New(journalSvc *journalService.Service, log *logrus.Entry) *Handler {
	return &Handler{journalSvc: journalSvc, log: log}
}

// RegisterRoutes registers the journal routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/journal", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleAdd)
		r.Delete("/", h.handleClear)
		r.Delete("/{entryID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journalSvc.List(r.Context())
	if err != nil {
		h.internalError(w, err, "list journal")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Timestamp int64    `json:"timestamp"`
		Mood      *string  `json:"mood"`
		Intensity *float64 `json:"intensity"`
		Note      string   `json:"note"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.journalSvc.Add(r.Context(), mood.JournalEntry{
		Timestamp: payload.Timestamp,
		Mood:      payload.Mood,
		Intensity: payload.Intensity,
		Note:      payload.Note,
	})
	switch {
	case errors.Is(err, journalService.ErrNoteRequired), errors.Is(err, journalService.ErrIntensityOutOfRange):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.internalError(w, err, "add journal entry")
	default:
		utils.RespondJSON(w, http.StatusCreated, entry)
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.journalSvc.Delete(r.Context(), chi.URLParam(r, "entryID"))
	switch {
	case errors.Is(err, journalService.ErrEntryNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.internalError(w, err, "delete journal entry")
	default:
		utils.RespondNoContent(w)
	}
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.journalSvc.Clear(r.Context()); err != nil {
		h.internalError(w, err, "clear journal")
		return
	}
	utils.RespondNoContent(w)
}

func (h *Handler) internalError(w http.ResponseWriter, err error, op string) {
	h.log.WithError(err).Error(op)
	utils.RespondError(w, http.StatusInternalServerError, "storage unavailable")
}
