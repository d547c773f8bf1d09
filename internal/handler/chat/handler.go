package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
	aiService "github.com/flaminghawk1207/mindmirror/backend/internal/service/ai"
	moodService "github.com/flaminghawk1207/mindmirror/backend/internal/service/mood"
	"github.com/flaminghawk1207/mindmirror/backend/pkg/utils"
)

// Caller-visible error messages. Upstream detail is only logged.
const (
	msgMessageRequired = "Message is required."
	msgUpstreamFailed  = "Failed to get response from Gemini."
	msgInvalidBody     = "invalid request body"
)

// Handler serves the coaching chat proxy.
type Handler struct {
	aiSvc       *aiService.Service
	moodSvc     *moodService.Service
	recordMoods bool
	log         *logrus.Entry
}

// New creates the chat handler. moodSvc may be nil; inferred moods are only
// recorded when recordMoods is set and a mood service is available.
func New(aiSvc *aiService.Service, moodSvc *moodService.Service, recordMoods bool, log *logrus.Entry) *Handler {
	return &Handler{
		aiSvc:       aiSvc,
		moodSvc:     moodSvc,
		recordMoods: recordMoods && moodSvc != nil,
		log:         log,
	}
}

// RegisterRoutes registers the chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// chatPayload keeps loosely typed fields raw so a wrong type degrades to
// "absent" instead of rejecting the request.
type chatPayload struct {
	Message   json.RawMessage `json:"message"`
	History   json.RawMessage `json:"history"`
	Mood      json.RawMessage `json:"mood"`
	Intensity json.RawMessage `json:"intensity"`
}

func (p chatPayload) toRequest() aiService.ChatRequest {
	var req aiService.ChatRequest
	_ = json.Unmarshal(p.Message, &req.Message)

	req.History = decodeHistory(p.History)

	var mood string
	if err := json.Unmarshal(p.Mood, &mood); err == nil && mood != "" {
		req.Prior.Mood = &mood
	}
	var intensity float64
	if err := json.Unmarshal(p.Intensity, &intensity); err == nil && string(p.Intensity) != "null" {
		req.Prior.Intensity = &intensity
	}
	return req
}

// decodeHistory keeps every turn whose text is a string. A role that is not
// a string counts as the assistant, matching how any non-user role is sent.
func decodeHistory(raw json.RawMessage) []chat.Turn {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	history := make([]chat.Turn, 0, len(items))
	for _, item := range items {
		var fields struct {
			Role json.RawMessage `json:"role"`
			Text json.RawMessage `json:"text"`
		}
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}

		var turn chat.Turn
		if err := json.Unmarshal(fields.Text, &turn.Text); err != nil || string(fields.Text) == "null" {
			continue
		}
		if err := json.Unmarshal(fields.Role, &turn.Role); err != nil {
			turn.Role = chat.RoleAssistant
		}
		history = append(history, turn)
	}
	return history
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req := payload.toRequest()

	reply, err := h.aiSvc.Chat(r.Context(), req)
	if err != nil {
		h.respondChatError(w, r, err)
		return
	}

	if h.recordMoods {
		if _, err := h.moodSvc.RecordReply(r.Context(), reply, req.Prior); err != nil {
			h.log.WithError(err).WithField("request_id", middleware.GetReqID(r.Context())).
				Warn("failed to record inferred mood")
		}
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) respondChatError(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *aiService.ConfigError
	switch {
	case errors.Is(err, aiService.ErrMessageRequired):
		utils.RespondError(w, http.StatusBadRequest, msgMessageRequired)
	case errors.As(err, &cfgErr):
		utils.RespondError(w, http.StatusInternalServerError, cfgErr.Message)
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"provider":   h.aiSvc.Provider(),
		}).Error("chat request failed")
		utils.RespondError(w, http.StatusInternalServerError, msgUpstreamFailed)
	}
}
