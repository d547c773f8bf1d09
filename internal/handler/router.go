package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/flaminghawk1207/mindmirror/backend/internal/handler/chat"
	"github.com/flaminghawk1207/mindmirror/backend/internal/handler/journal"
	"github.com/flaminghawk1207/mindmirror/backend/internal/handler/mood"
	"github.com/flaminghawk1207/mindmirror/backend/internal/handler/suggestion"
	"github.com/flaminghawk1207/mindmirror/backend/internal/logging"
	middlewarePkg "github.com/flaminghawk1207/mindmirror/backend/internal/middleware"
	suggestionModel "github.com/flaminghawk1207/mindmirror/backend/internal/model/suggestion"
	aiService "github.com/flaminghawk1207/mindmirror/backend/internal/service/ai"
	journalService "github.com/flaminghawk1207/mindmirror/backend/internal/service/journal"
	moodService "github.com/flaminghawk1207/mindmirror/backend/internal/service/mood"
	"github.com/flaminghawk1207/mindmirror/backend/pkg/utils"
)

// Services bundles what the router wires into handlers.
type Services struct {
	AI              *aiService.Service
	Moods           *moodService.Service
	Journal         *journalService.Service
	Suggestions     suggestionModel.Store
	RecordChatMoods bool
	AllowedOrigins  []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svc Services, logger *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(svc.AllowedOrigins))

	chatHandler := chat.New(svc.AI, svc.Moods, svc.RecordChatMoods, logging.Component(logger, "chat"))
	moodHandler := mood.New(svc.Moods, logging.Component(logger, "mood"))
	journalHandler := journal.New(svc.Journal, logging.Component(logger, "journal"))
	suggestionHandler := suggestion.New(svc.Suggestions)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"provider":   svc.AI.Provider(),
			"configured": svc.AI.Configured(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		moodHandler.RegisterRoutes(api)
		journalHandler.RegisterRoutes(api)
		suggestionHandler.RegisterRoutes(api)
	})

	return r
}
