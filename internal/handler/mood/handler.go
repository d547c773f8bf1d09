package mood

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/mood"
	moodService "github.com/flaminghawk1207/mindmirror/backend/internal/service/mood"
	"github.com/flaminghawk1207/mindmirror/backend/pkg/utils"
)

// Handler exposes the mood history and its trend summary.
type Handler struct {
	moodSvc *moodService.Service
	log     *logrus.Entry
}

// New creates the mood handler.
func New(moodSvc *moodService.Service, log *logrus.Entry) *Handler {
	return &Handler{moodSvc: moodSvc, log: log}
}

// RegisterRoutes registers the mood routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/moods", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleRecord)
		r.Delete("/", h.handleClear)
		r.Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.moodSvc.History(r.Context())
	if err != nil {
		h.internalError(w, err, "list mood history")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Timestamp int64    `json:"timestamp"`
		Mood      string   `json:"mood"`
		Intensity *float64 `json:"intensity"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Intensity == nil {
		utils.RespondError(w, http.StatusBadRequest, moodService.ErrIntensityOutOfRange.Error())
		return
	}

	entry, err := h.moodSvc.Record(r.Context(), mood.Entry{
		Timestamp: payload.Timestamp,
		Mood:      payload.Mood,
		Intensity: *payload.Intensity,
	})
	switch {
	case errors.Is(err, moodService.ErrMoodRequired), errors.Is(err, moodService.ErrIntensityOutOfRange):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.internalError(w, err, "record mood")
	default:
		utils.RespondJSON(w, http.StatusCreated, entry)
	}
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.moodSvc.Clear(r.Context()); err != nil {
		h.internalError(w, err, "clear mood history")
		return
	}
	utils.RespondNoContent(w)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	days := moodService.DefaultSummaryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > moodService.MaxSummaryDays {
			utils.RespondError(w, http.StatusBadRequest, "days must be between 1 and 90")
			return
		}
		days = n
	}

	summary, err := h.moodSvc.Summary(r.Context(), days)
	if err != nil {
		h.internalError(w, err, "summarize mood history")
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) internalError(w http.ResponseWriter, err error, op string) {
	h.log.WithError(err).Error(op)
	utils.RespondError(w, http.StatusInternalServerError, "storage unavailable")
}
